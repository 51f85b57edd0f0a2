package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// progressStep reports one slow step as a single stderr line once it ends,
// e.g. "Loading demo content: 4 builtin, 1 from .showcase/demos ok (3ms)".
type progressStep struct {
	out     io.Writer
	label   string
	notes   []string
	started time.Time
	now     func() time.Time
}

func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	return newProgressStep(os.Stderr, label, time.Now)
}

func newProgressStep(out io.Writer, label string, now func() time.Time) *progressStep {
	return &progressStep{out: out, label: label, started: now(), now: now}
}

// Note adds a detail shown after the label.
func (p *progressStep) Note(format string, args ...any) {
	if p == nil {
		return
	}
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *progressStep) Done() {
	if p == nil {
		return
	}
	fmt.Fprintf(p.out, "%s %s (%s)\n", p.heading(), colorize("ok", colorGreen), formatDuration(p.now().Sub(p.started)))
}

func (p *progressStep) Fail(err error) {
	if p == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(p.out, "%s %s: %v\n", p.heading(), colorize("failed", colorRed), err)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.heading(), colorize("failed", colorRed))
}

func (p *progressStep) heading() string {
	if len(p.notes) == 0 {
		return p.label + ":"
	}
	return p.label + ": " + strings.Join(p.notes, ", ")
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if noProgress {
		return false
	}
	if _, ok := os.LookupEnv("SHOWCASE_NO_PROGRESS"); ok {
		return false
	}
	return true
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
