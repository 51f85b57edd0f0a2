package components

import (
	"fmt"
	"strings"

	"github.com/hirepath/showcase/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display (e.g., "📭", "🔍", "🚀").
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	// Command is the command or key to use (e.g., "showcase play all").
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	// Icon + Title
	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	// Subtitle
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	// Suggestions
	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// Common empty states for reuse across views.

// EmptyCandidates returns the empty state shown before any resume arrives.
func EmptyCandidates() EmptyState {
	return EmptyState{
		Icon:     "📭",
		Title:    "Waiting for candidates",
		Subtitle: "Resumes appear here as they are received.",
	}
}

// EmptyTranscript returns the empty state of a fresh interview round.
func EmptyTranscript() EmptyState {
	return EmptyState{
		Icon:     "🎙️",
		Title:    "Interview starting",
		Subtitle: "The AI interviewer is about to ask the first question.",
	}
}

// EmptyTimeline returns the empty state for a carousel with no steps.
func EmptyTimeline() EmptyState {
	return EmptyState{
		Icon:     "🔍",
		Title:    "No workflow steps loaded",
		Subtitle: "Add a timeline content file to populate the carousel.",
		Suggestions: []Suggestion{
			{Command: "showcase scripts list", Description: "list available demo content"},
		},
	}
}

// EmptyDashboard returns the dashboard placeholder before sign-in.
func EmptyDashboard() EmptyState {
	return EmptyState{
		Icon:     "🚀",
		Title:    "Welcome to the recruiter dashboard",
		Subtitle: "Sign in to see your hiring rounds.",
		Suggestions: []Suggestion{
			{Command: "a", Description: "simulate a sign-in"},
			{Command: "1", Description: "back to the live demos"},
		},
	}
}
