package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hirepath/showcase/internal/demos"
)

func steppedClock(steps ...time.Duration) func() time.Time {
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	i := 0
	return func() time.Time {
		var d time.Duration
		if i < len(steps) {
			d = steps[i]
		}
		i++
		return base.Add(d)
	}
}

func TestProgressStepLines(t *testing.T) {
	noColor = true
	t.Cleanup(func() { noColor = false })

	var buf bytes.Buffer
	step := newProgressStep(&buf, "Loading demo content", steppedClock(0, 3*time.Millisecond))
	step.Note("%d builtin", 4)
	step.Note("1 from %s", ".showcase/demos")
	step.Done()
	assert.Equal(t, "Loading demo content: 4 builtin, 1 from .showcase/demos ok (3ms)\n", buf.String())

	buf.Reset()
	failed := newProgressStep(&buf, "Loading demo content", steppedClock(0))
	failed.Fail(errors.New("bad yaml"))
	assert.Equal(t, "Loading demo content: failed: bad yaml\n", buf.String())
}

func TestProgressStepNilIsSilent(t *testing.T) {
	var step *progressStep
	step.Note("ignored")
	step.Done()
	step.Fail(nil)
}

func TestProgressDisabledForJSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
	assert.Nil(t, startProgress("Loading demo content"))
}

func TestSourceNotes(t *testing.T) {
	items := []*demos.Content{
		{Name: "interview", Source: "/work/app/.showcase/demos/interview.yaml"},
		{Name: "marquee", Source: demos.SourceBuiltin},
		{Name: "screening", Source: "/home/me/.config/showcase/demos/screening.yaml"},
		{Name: "timeline", Source: demos.SourceBuiltin},
		{Name: "extra", Source: "/work/app/.showcase/demos/extra.yaml"},
	}

	got := sourceNotes(items, "/work/app")
	assert.Equal(t, []string{
		"2 builtin",
		"2 from .showcase/demos",
		"1 from /home/me/.config/showcase/demos",
	}, got)
	assert.Equal(t, []string{"1 builtin"}, sourceNotes(items[1:2], ""))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "12ms", formatDuration(12300*time.Microsecond))
	assert.Equal(t, "1.5s", formatDuration(1520*time.Millisecond))
}
