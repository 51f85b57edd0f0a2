package components

import (
	"fmt"
	"strings"

	"github.com/hirepath/showcase/internal/tui/styles"
)

// QuickAction represents a keyboard-triggered action.
type QuickAction struct {
	Key     string // Keyboard key (e.g., "g", "s")
	Label   string // Display label (e.g., "Next view")
	Enabled bool   // Whether the action is available
}

// RenderQuickActionBar renders a horizontal bar of available quick actions.
// Format: "1:Demos  2:Dashboard  g:Next  q:Quit"
func RenderQuickActionBar(styleSet styles.Styles, actions []QuickAction) string {
	if len(actions) == 0 {
		return ""
	}

	var parts []string
	for _, action := range actions {
		if !action.Enabled {
			continue
		}
		keyStyle := styleSet.Accent.Bold(true)
		part := fmt.Sprintf("%s:%s", keyStyle.Render(action.Key), styleSet.Muted.Render(action.Label))
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, "  ")
}

// ShowcaseQuickActions returns the key hints for the current view.
func ShowcaseQuickActions(dashboard, signedIn bool) []QuickAction {
	signIn := "Sign in"
	if signedIn {
		signIn = "Sign out"
	}
	return []QuickAction{
		{Key: "1", Label: "Demos", Enabled: true},
		{Key: "2", Label: "Dashboard", Enabled: true},
		{Key: "g", Label: "Next view", Enabled: true},
		{Key: "tab", Label: "Focus demo", Enabled: !dashboard},
		{Key: "s", Label: "Sidebar", Enabled: dashboard},
		{Key: "j/k", Label: "Navigate", Enabled: dashboard},
		{Key: "a", Label: signIn, Enabled: true},
		{Key: "q", Label: "Quit", Enabled: true},
	}
}
