package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	theme, ok := Lookup(" High-Contrast ")
	assert.True(t, ok)
	assert.Equal(t, "high-contrast", theme.Name)

	theme, ok = Lookup("neon")
	assert.False(t, ok)
	assert.Equal(t, DefaultTheme.Name, theme.Name)
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"default", "high-contrast"}, Names())
}

func TestThemesDefineEveryToken(t *testing.T) {
	for name, theme := range Themes {
		tokens := theme.Tokens
		for role, value := range map[string]string{
			"background": tokens.Background,
			"panel":      tokens.Panel,
			"text":       tokens.Text,
			"muted":      tokens.TextMuted,
			"border":     tokens.Border,
			"accent":     tokens.Accent,
			"focus":      tokens.Focus,
			"highlight":  tokens.Highlight,
			"success":    tokens.Success,
			"warning":    tokens.Warning,
			"error":      tokens.Error,
			"info":       tokens.Info,
		} {
			assert.NotEmpty(t, value, "%s: %s", name, role)
		}
	}
}
