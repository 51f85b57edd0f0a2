package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Panel     lipgloss.Style
	Card      lipgloss.Style
	FocusCard lipgloss.Style
	Border    lipgloss.Style
	Focus     lipgloss.Style
	Highlight lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Badge     lipgloss.Style
	PhaseIdle lipgloss.Style
	PhaseBusy lipgloss.Style
	PhaseDone lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens
	color := func(c string) lipgloss.Color { return lipgloss.Color(c) }

	return Styles{
		Theme:     theme,
		Title:     lipgloss.NewStyle().Foreground(color(tokens.Text)).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(color(tokens.Text)),
		Muted:     lipgloss.NewStyle().Foreground(color(tokens.TextMuted)),
		Accent:    lipgloss.NewStyle().Foreground(color(tokens.Accent)),
		Panel:     lipgloss.NewStyle().Foreground(color(tokens.Text)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(color(tokens.Border)).Padding(0, 1),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(color(tokens.Border)).Padding(0, 1),
		FocusCard: lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(color(tokens.Focus)).Padding(0, 1),
		Border:    lipgloss.NewStyle().Foreground(color(tokens.Border)),
		Focus:     lipgloss.NewStyle().Foreground(color(tokens.Focus)).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(color(tokens.Text)).Background(color(tokens.Highlight)),
		Success:   lipgloss.NewStyle().Foreground(color(tokens.Success)),
		Warning:   lipgloss.NewStyle().Foreground(color(tokens.Warning)),
		Error:     lipgloss.NewStyle().Foreground(color(tokens.Error)),
		Info:      lipgloss.NewStyle().Foreground(color(tokens.Info)),
		Badge:     lipgloss.NewStyle().Foreground(color(tokens.Background)).Background(color(tokens.Accent)).Bold(true).Padding(0, 1),
		PhaseIdle: lipgloss.NewStyle().Foreground(color(tokens.TextMuted)),
		PhaseBusy: lipgloss.NewStyle().Foreground(color(tokens.Info)),
		PhaseDone: lipgloss.NewStyle().Foreground(color(tokens.Success)),
	}
}
