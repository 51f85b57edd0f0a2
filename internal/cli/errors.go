package cli

import (
	"errors"
	"fmt"
	"strings"
)

// PreflightError is a user-facing error with guidance on how to recover.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	lines := []string{e.Message}
	if e.Hint != "" {
		lines = append(lines, fmt.Sprintf("Hint: %s", e.Hint))
	}
	if e.NextStep != "" {
		lines = append(lines, fmt.Sprintf("Next: %s", e.NextStep))
	}
	return strings.Join(lines, "\n")
}

// FormatError renders err for the terminal, highlighting preflight errors.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var preflight *PreflightError
	if errors.As(err, &preflight) {
		return colorize("Error: ", colorRed) + preflight.Error()
	}
	return colorize("Error: ", colorRed) + err.Error()
}
