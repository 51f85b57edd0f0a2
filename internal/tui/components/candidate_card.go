package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/tui/styles"
)

const minCardWidth = 24

// CandidateCard contains data needed to render a screening card.
type CandidateCard struct {
	Card     demos.Card
	Scanning bool

	// Spinner is the current spinner frame shown while scanning.
	Spinner string
	Width   int
}

// RenderCandidateCard renders one resume row of the screening demo.
func RenderCandidateCard(styleSet styles.Styles, card CandidateCard) string {
	width := card.Width
	if width < minCardWidth {
		width = minCardWidth
	}
	inner := width - 4
	c := card.Card.Candidate

	avatar := styleSet.Badge.Render(c.Initial())
	name := styleSet.Title.Render(truncate(defaultIfEmpty(c.Name, "Candidate"), inner/2))
	header := lipgloss.JoinHorizontal(lipgloss.Top, avatar, " ", name, "  ", renderScore(styleSet, card))

	role := styleSet.Muted.Render(truncate(defaultIfEmpty(c.Role, "--"), inner))
	lines := []string{header, role}
	if len(c.Skills) > 0 {
		lines = append(lines, styleSet.Info.Render(truncate(strings.Join(c.Skills, " · "), inner)))
	}

	style := styleSet.Card
	if card.Scanning {
		style = styleSet.FocusCard
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderScore(styleSet styles.Styles, card CandidateCard) string {
	if card.Scanning && !card.Card.Scored() {
		return styleSet.Info.Render(strings.TrimSpace(card.Spinner + " Analyzing..."))
	}
	if !card.Card.Scored() {
		return ""
	}

	score := card.Card.Score
	label := fmt.Sprintf("%d%%", score)
	switch demos.ScoreTier(score) {
	case demos.TierTop:
		label = styleSet.Success.Bold(true).Render(label)
		if !card.Scanning {
			label += " " + styleSet.Badge.Render("Top Match")
		}
	case demos.TierStrong:
		label = styleSet.Success.Render(label)
	default:
		label = styleSet.Warning.Render(label)
	}
	return label
}
