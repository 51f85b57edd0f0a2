package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/tui/styles"
)

// RenderTranscript renders interview lines as chat bubbles: interviewer
// lines on the left, candidate lines on the right.
func RenderTranscript(styleSet styles.Styles, lines []demos.Line, width int) string {
	if width < minCardWidth {
		width = minCardWidth
	}
	if len(lines) == 0 {
		return EmptyTranscript().RenderCompact(styleSet)
	}

	bubbleWidth := width * 3 / 4
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		speaker := "Candidate"
		style := styleSet.Card
		align := lipgloss.Right
		if line.Speaker == demos.SpeakerAI {
			speaker = "AI Interviewer"
			style = styleSet.FocusCard
			align = lipgloss.Left
		}

		body := styleSet.Muted.Render(speaker) + "\n" + styleSet.Text.Render(line.Text)
		bubble := style.Width(bubbleWidth - 2).Render(body)
		out = append(out, lipgloss.PlaceHorizontal(width, align, bubble))
	}
	return strings.Join(out, "\n")
}
