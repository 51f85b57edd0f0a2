package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/tui/styles"
)

// RenderPhaseBadge renders a demo phase with icon and color.
func RenderPhaseBadge(styleSet styles.Styles, phase string) string {
	icon, label, style := phaseDescriptor(styleSet, phase)
	return style.Render(fmt.Sprintf("%s %s", icon, label))
}

func phaseDescriptor(styleSet styles.Styles, phase string) (string, string, lipgloss.Style) {
	switch phase {
	case demos.PhaseIdle:
		return "-", "Idle", styleSet.PhaseIdle
	case demos.PhaseAppearing:
		return "+", "Receiving", styleSet.PhaseBusy
	case demos.PhaseScanning:
		return "~", "Scanning", styleSet.PhaseBusy
	case demos.PhaseRanked:
		return "OK", "Ranked", styleSet.PhaseDone
	case demos.PhaseListening:
		return "..", "Listening", styleSet.Info
	case demos.PhaseSpeaking:
		return ">", "Speaking", styleSet.Accent
	case demos.PhaseComplete:
		return "OK", "Complete", styleSet.PhaseDone
	default:
		return "-", normalizePhaseLabel(phase), styleSet.Muted
	}
}

func normalizePhaseLabel(phase string) string {
	value := strings.TrimSpace(strings.ReplaceAll(phase, "_", " "))
	if value == "" {
		return "Unknown"
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
