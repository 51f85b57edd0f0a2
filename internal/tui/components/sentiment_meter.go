package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/tui/styles"
)

// SentimentMeter renders the real-time analysis panel of the interview.
type SentimentMeter struct {
	bar progress.Model
}

// NewSentimentMeter creates a meter whose bar spans width columns.
func NewSentimentMeter(styleSet styles.Styles, width int) SentimentMeter {
	if width < 10 {
		width = 10
	}
	bar := progress.New(
		progress.WithSolidFill(styleSet.Theme.Tokens.Accent),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	return SentimentMeter{bar: bar}
}

// Render draws the meter for sentiment (0-100) and, once a reading is
// showing, the analysis tags.
func (m SentimentMeter) Render(styleSet styles.Styles, sentiment int, tags []string) string {
	if sentiment <= 0 {
		return styleSet.Muted.Render("Real-time analysis: waiting for an answer")
	}
	if sentiment > 100 {
		sentiment = 100
	}

	value := fmt.Sprintf("%d%%", sentiment)
	if demos.ScoreTier(sentiment) == demos.TierTop {
		value = styleSet.Success.Bold(true).Render(value)
	} else {
		value = styleSet.Success.Render(value)
	}

	lines := []string{
		styleSet.Title.Render("REAL-TIME ANALYSIS") + "  " + value,
		m.bar.ViewAs(float64(sentiment) / 100),
	}
	if len(tags) > 0 {
		rendered := make([]string, 0, len(tags))
		for _, tag := range tags {
			rendered = append(rendered, styleSet.Success.Render("✓ "+tag))
		}
		lines = append(lines, strings.Join(rendered, "  "))
	}
	return strings.Join(lines, "\n")
}
