package cli

import (
	"fmt"
	"strings"

	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/sequencer"
)

func formatPhase(phase string) string {
	label, color := statusLabelForPhase(phase)
	return colorize(formatStatusLabel(label, phase), color)
}

func statusLabelForPhase(phase string) (string, string) {
	switch phase {
	case demos.PhaseIdle, demos.PhaseListening:
		return "WAIT", colorYellow
	case demos.PhaseAppearing, demos.PhaseScanning, demos.PhaseSpeaking:
		return "BUSY", colorCyan
	case demos.PhaseRanked, demos.PhaseComplete:
		return "OK", colorGreen
	default:
		return "WARN", colorMagenta
	}
}

func formatKind(kind sequencer.Kind) string {
	switch kind {
	case sequencer.KindReset:
		return colorize(string(kind), colorMagenta)
	case sequencer.KindRamp:
		return colorize(string(kind), colorCyan)
	default:
		return string(kind)
	}
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}
