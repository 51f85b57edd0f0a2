package sequencer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clockRequest struct {
	d    time.Duration
	fire chan time.Time
}

// gatedNow is the fixed wall time reported by gatedClock.
var gatedNow = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

// gatedClock hands every suspension to the test, which decides when it ends.
type gatedClock struct {
	requests chan clockRequest
}

func newGatedClock() *gatedClock {
	return &gatedClock{requests: make(chan clockRequest, 64)}
}

func (c *gatedClock) Now() time.Time {
	return gatedNow
}

func (c *gatedClock) After(d time.Duration) <-chan time.Time {
	req := clockRequest{d: d, fire: make(chan time.Time, 1)}
	c.requests <- req
	return req.fire
}

func (c *gatedClock) next(t *testing.T) clockRequest {
	t.Helper()
	select {
	case req := <-c.requests:
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("sequencer never suspended")
		return clockRequest{}
	}
}

func (c *gatedClock) advance(t *testing.T) time.Duration {
	t.Helper()
	req := c.next(t)
	req.fire <- time.Now()
	return req.d
}

type board struct {
	Items []string
	Score int
}

func add(name string) func(board) board {
	return func(b board) board {
		items := make([]string, 0, len(b.Items)+1)
		items = append(items, b.Items...)
		b.Items = append(items, name)
		return b
	}
}

func scoreRamp(target float64) *Ramp[board] {
	return &Ramp[board]{
		Get:    func(b board) float64 { return float64(b.Score) },
		Set:    func(b board, v int) board { b.Score = v; return b },
		Target: target,
	}
}

func testScript(t *testing.T, steps ...Step[board]) *Script[board] {
	t.Helper()
	script, err := NewScript(Definition[board]{
		Name:       "test",
		ResetPhase: "idle",
		LoopPause:  500 * time.Millisecond,
		Steps:      steps,
	})
	require.NoError(t, err)
	return script
}

func newTestSequencer(clock Clock, opts ...Option) *Sequencer[board] {
	opts = append([]Option{WithClock(clock), WithLogger(zerolog.Nop())}, opts...)
	return New[board]("test", opts...)
}

func collect(s *Sequencer[board]) <-chan Snapshot[board] {
	ch := make(chan Snapshot[board], 256)
	s.Subscribe(func(snap Snapshot[board]) {
		ch <- snap
	})
	return ch
}

func receive(t *testing.T, ch <-chan Snapshot[board]) Snapshot[board] {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot published")
		return Snapshot[board]{}
	}
}

func TestRampValues(t *testing.T) {
	got := RampValues(0, 92, 10)
	want := []int{9, 18, 28, 37, 46, 55, 64, 74, 83, 92}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RampValues mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(got); i++ {
		require.Greater(t, got[i], got[i-1])
	}

	down := RampValues(92, 88, 10)
	require.Len(t, down, 10)
	require.Equal(t, 88, down[len(down)-1])
	for i := 1; i < len(down); i++ {
		require.LessOrEqual(t, down[i], down[i-1])
	}

	require.Len(t, RampValues(0, 10, 0), DefaultRampIncrements)
}

func TestNewScriptValidation(t *testing.T) {
	tests := []struct {
		name string
		def  Definition[board]
	}{
		{"missing name", Definition[board]{Steps: []Step[board]{{Hold: time.Second}}}},
		{"no steps", Definition[board]{Name: "x"}},
		{"negative hold", Definition[board]{Name: "x", Steps: []Step[board]{{Hold: -1}}}},
		{"negative loop pause", Definition[board]{Name: "x", LoopPause: -1, Steps: []Step[board]{{}}}},
		{"ramp without accessors", Definition[board]{Name: "x", Steps: []Step[board]{{Ramp: &Ramp[board]{Target: 1}}}}},
		{"negative increments", Definition[board]{Name: "x", Steps: []Step[board]{{Ramp: &Ramp[board]{
			Get: func(board) float64 { return 0 }, Set: func(b board, _ int) board { return b }, Increments: -2,
		}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScript(tt.def)
			require.Error(t, err)
		})
	}
}

func TestNewScriptIsImmutableAndDefaultsRamp(t *testing.T) {
	steps := []Step[board]{
		{Phase: "a", Hold: 100 * time.Millisecond, Apply: add("a")},
		{Phase: "b", Hold: 200 * time.Millisecond, Ramp: scoreRamp(50)},
	}
	script := testScript(t, steps...)

	steps[0].Phase = "mutated"
	require.Equal(t, "a", script.Steps()[0].Phase)

	ramp := script.Steps()[1].Ramp
	require.Equal(t, DefaultRampIncrements, ramp.Increments)
	require.Equal(t, DefaultRampInterval, ramp.Interval)
	require.Equal(t, 500*time.Millisecond+300*time.Millisecond+200*time.Millisecond, script.CycleDuration())
}

func TestStepsCannotChangeScriptRamps(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()
	snaps := collect(seq)

	ramp := scoreRamp(20)
	ramp.Increments = 2
	script := testScript(t, Step[board]{Hold: 100 * time.Millisecond, Ramp: ramp})
	before := script.CycleDuration()

	leaked := script.Steps()[0].Ramp
	leaked.Target = 5
	leaked.Increments = 1000
	leaked.Interval = time.Hour

	ramp.Target = 7
	ramp.Increments = 500

	require.Equal(t, before, script.CycleDuration())
	require.Equal(t, 20.0, script.Steps()[0].Ramp.Target)
	require.Equal(t, 2, script.Steps()[0].Ramp.Increments)

	_, err := seq.Start(context.Background(), script, board{})
	require.NoError(t, err)
	receive(t, snaps) // reset
	clock.advance(t)
	receive(t, snaps) // step

	var values []int
	for i := 0; i < 2; i++ {
		values = append(values, receive(t, snaps).State.Score)
		require.Equal(t, DefaultRampInterval, clock.advance(t))
	}
	require.Equal(t, []int{10, 20}, values)
}

func TestSnapshotsAreStampedByClock(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()
	snaps := collect(seq)

	_, err := seq.Start(context.Background(), testScript(t, Step[board]{Hold: time.Second, Apply: add("a")}), board{})
	require.NoError(t, err)
	require.Equal(t, gatedNow, receive(t, snaps).At)

	clock.advance(t)
	require.Equal(t, gatedNow, receive(t, snaps).At)
}

func TestStartPublishesStepsInOrder(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()
	snaps := collect(seq)

	script := testScript(t,
		Step[board]{Phase: "appearing", Hold: 100 * time.Millisecond, Apply: add("a")},
		Step[board]{Hold: 200 * time.Millisecond, Apply: add("b")},
		Step[board]{Phase: "done", Hold: 300 * time.Millisecond},
	)

	handle, err := seq.Start(context.Background(), script, board{})
	require.NoError(t, err)
	require.NotEmpty(t, handle.ID)
	require.Equal(t, "test", handle.Script)

	reset := receive(t, snaps)
	assert.Equal(t, KindReset, reset.Kind)
	assert.Equal(t, -1, reset.Step)
	assert.Equal(t, "idle", reset.Phase)
	assert.Equal(t, uint64(1), reset.Generation)
	assert.Equal(t, handle.ID, reset.RunID)

	require.Equal(t, 100*time.Millisecond, clock.advance(t))
	first := receive(t, snaps)
	assert.Equal(t, "appearing", first.Phase)
	assert.Equal(t, []string{"a"}, first.State.Items)

	require.Equal(t, 200*time.Millisecond, clock.advance(t))
	second := receive(t, snaps)
	assert.Equal(t, "appearing", second.Phase, "empty phase keeps the previous one")
	assert.Equal(t, []string{"a", "b"}, second.State.Items)
	assert.Equal(t, []string{"a"}, first.State.Items, "published snapshots are not mutated later")

	require.Equal(t, 300*time.Millisecond, clock.advance(t))
	third := receive(t, snaps)
	assert.Equal(t, "done", third.Phase)
	assert.Equal(t, 2, third.Step)

	state := seq.State()
	assert.True(t, state.Live)
	assert.Equal(t, "done", state.Phase)
	assert.Equal(t, uint64(1), state.Generation)
}

func TestRampPublishesEachIncrement(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()
	snaps := collect(seq)

	script := testScript(t,
		Step[board]{Phase: "scoring", Hold: 800 * time.Millisecond, Apply: add("x"), Ramp: scoreRamp(92)},
		Step[board]{Phase: "ranked", Hold: 400 * time.Millisecond},
	)
	_, err := seq.Start(context.Background(), script, board{})
	require.NoError(t, err)
	receive(t, snaps)

	require.Equal(t, 800*time.Millisecond, clock.advance(t))
	step := receive(t, snaps)
	require.Equal(t, KindStep, step.Kind)
	require.Equal(t, 0, step.State.Score)

	var values []int
	for i := 1; i <= DefaultRampIncrements; i++ {
		snap := receive(t, snaps)
		require.Equal(t, KindRamp, snap.Kind)
		require.Equal(t, i, snap.RampTick)
		require.Equal(t, "scoring", snap.Phase)
		values = append(values, snap.State.Score)
		require.Equal(t, DefaultRampInterval, clock.advance(t))
	}
	require.Equal(t, RampValues(0, 92, 10), values)

	require.Equal(t, 400*time.Millisecond, clock.advance(t))
	ranked := receive(t, snaps)
	require.Equal(t, "ranked", ranked.Phase)
	require.Equal(t, 92, ranked.State.Score)
}

func TestCancelStopsPublicationAtEverySuspension(t *testing.T) {
	steps := []Step[board]{
		{Phase: "a", Hold: 100 * time.Millisecond, Apply: add("a")},
		{Phase: "b", Hold: 100 * time.Millisecond, Apply: add("b"), Ramp: &Ramp[board]{
			Get:        func(b board) float64 { return float64(b.Score) },
			Set:        func(b board, v int) board { b.Score = v; return b },
			Target:     30,
			Increments: 3,
		}},
		{Phase: "c", Hold: 100 * time.Millisecond},
	}
	// 3 holds + 3 ramp intervals + loop pause + first hold of the next cycle.
	const suspensions = 8

	for cancelAfter := 0; cancelAfter < suspensions; cancelAfter++ {
		clock := newGatedClock()
		seq := newTestSequencer(clock)

		var cancelled atomic.Bool
		var late atomic.Int32
		seq.Subscribe(func(Snapshot[board]) {
			if cancelled.Load() {
				late.Add(1)
			}
		})

		handle, err := seq.Start(context.Background(), testScript(t, steps...), board{})
		require.NoError(t, err)

		for i := 0; i < cancelAfter; i++ {
			clock.advance(t)
		}
		pending := clock.next(t)

		require.True(t, seq.Cancel(handle))
		cancelled.Store(true)
		pending.fire <- time.Now()

		seq.Stop()
		require.Zero(t, late.Load(), "late write after cancel at suspension %d", cancelAfter)
		require.False(t, seq.State().Live)
		require.False(t, seq.Cancel(handle), "second cancel is a no-op")
	}
}

func TestRestartBeginsFromInitialState(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock, WithHistory(16))
	defer seq.Stop()
	snaps := collect(seq)

	script := testScript(t,
		Step[board]{Phase: "a", Hold: 100 * time.Millisecond, Apply: add("a")},
		Step[board]{Phase: "b", Hold: 100 * time.Millisecond, Apply: add("b")},
	)
	initial := board{Items: []string{"seed"}}
	_, err := seq.Start(context.Background(), script, initial)
	require.NoError(t, err)

	receive(t, snaps)
	clock.advance(t)
	receive(t, snaps)
	clock.advance(t)
	last := receive(t, snaps)
	require.Equal(t, []string{"seed", "a", "b"}, last.State.Items)

	require.Equal(t, 500*time.Millisecond, clock.advance(t), "loop pause")
	restart := receive(t, snaps)
	require.Equal(t, KindReset, restart.Kind)
	require.Equal(t, uint64(2), restart.Generation)
	require.Equal(t, []string{"seed"}, restart.State.Items)
	require.Equal(t, "idle", restart.Phase)

	clock.advance(t)
	again := receive(t, snaps)
	require.Equal(t, []string{"seed", "a"}, again.State.Items)
	require.Equal(t, uint64(2), again.Generation)

	stats := seq.Stats()
	require.Equal(t, int64(1), stats.Cycles)
	require.Equal(t, uint64(2), stats.Generations)
	require.Len(t, seq.History(), 5)
}

func TestStartSupersedesLiveRun(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()
	snaps := collect(seq)

	script := testScript(t, Step[board]{Phase: "a", Hold: time.Second, Apply: add("a")})

	first, err := seq.Start(context.Background(), script, board{})
	require.NoError(t, err)
	require.Equal(t, uint64(1), receive(t, snaps).Generation)
	stale := clock.next(t)

	second, err := seq.Start(context.Background(), script, board{})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	reset := receive(t, snaps)
	require.Equal(t, second.ID, reset.RunID)
	require.Equal(t, uint64(2), reset.Generation)

	// Waking the superseded run must not publish.
	stale.fire <- time.Now()
	clock.advance(t)
	snap := receive(t, snaps)
	require.Equal(t, second.ID, snap.RunID)
	require.Equal(t, uint64(2), snap.Generation)

	require.False(t, seq.Cancel(first))
	require.Equal(t, int64(1), seq.Stats().Cancelled)
}

func TestStopRejectsStart(t *testing.T) {
	seq := newTestSequencer(newGatedClock())
	seq.Stop()
	seq.Stop()

	_, err := seq.Start(context.Background(), testScript(t, Step[board]{Hold: time.Second}), board{})
	require.ErrorIs(t, err, ErrStopped)

	_, err = seq.Start(context.Background(), nil, board{})
	require.ErrorIs(t, err, ErrNilScript)
	_, err = seq.Start(context.Background(), &Script[board]{name: "empty"}, board{})
	require.ErrorIs(t, err, ErrEmptyScript)
}

func TestParentContextCancelEndsRun(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()
	snaps := collect(seq)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := seq.Start(ctx, testScript(t, Step[board]{Hold: time.Second, Apply: add("a")}), board{})
	require.NoError(t, err)
	receive(t, snaps)
	clock.next(t)

	cancel()
	require.Eventually(t, func() bool { return !seq.State().Live }, 2*time.Second, 5*time.Millisecond)
}

func TestTimeScaleShortensHolds(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock, WithTimeScale(4))
	defer seq.Stop()

	_, err := seq.Start(context.Background(), testScript(t, Step[board]{Hold: 100 * time.Millisecond}), board{})
	require.NoError(t, err)
	require.Equal(t, 25*time.Millisecond, clock.advance(t))
}

func TestRealClockLoops(t *testing.T) {
	seq := New[board]("real", WithLogger(zerolog.Nop()))
	defer seq.Stop()

	generations := make(chan uint64, 64)
	seq.Subscribe(func(snap Snapshot[board]) {
		if snap.Kind == KindReset {
			select {
			case generations <- snap.Generation:
			default:
			}
		}
	})

	script, err := NewScript(Definition[board]{
		Name:      "fast",
		LoopPause: time.Millisecond,
		Steps:     []Step[board]{{Hold: time.Millisecond, Apply: add("a")}},
	})
	require.NoError(t, err)

	_, err = seq.Start(context.Background(), script, board{})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case gen := <-generations:
			if gen >= 3 {
				return
			}
		case <-deadline:
			t.Fatal("sequencer did not loop")
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()

	var count atomic.Int32
	unsubscribe := seq.Subscribe(func(Snapshot[board]) { count.Add(1) })
	snaps := collect(seq)

	_, err := seq.Start(context.Background(), testScript(t, Step[board]{Hold: time.Second}), board{})
	require.NoError(t, err)
	receive(t, snaps)
	unsubscribe()

	clock.advance(t)
	receive(t, snaps)
	require.Equal(t, int32(1), count.Load())
}

func TestRampDelayPrecedesFirstIncrement(t *testing.T) {
	clock := newGatedClock()
	seq := newTestSequencer(clock)
	defer seq.Stop()
	snaps := collect(seq)

	ramp := scoreRamp(20)
	ramp.Increments = 2
	ramp.Delay = 800 * time.Millisecond
	script := testScript(t, Step[board]{Phase: "scan", Hold: 100 * time.Millisecond, Ramp: ramp})

	_, err := seq.Start(context.Background(), script, board{})
	require.NoError(t, err)
	receive(t, snaps) // reset

	require.Equal(t, 100*time.Millisecond, clock.advance(t))
	step := receive(t, snaps)
	assert.Equal(t, KindStep, step.Kind)
	assert.Zero(t, step.State.Score)

	require.Equal(t, 800*time.Millisecond, clock.advance(t))
	tick := receive(t, snaps)
	assert.Equal(t, KindRamp, tick.Kind)
	assert.Equal(t, 1, tick.RampTick)
	assert.Equal(t, 10, tick.State.Score)

	require.Equal(t, DefaultRampInterval, clock.advance(t))
	tick = receive(t, snaps)
	assert.Equal(t, 20, tick.State.Score)
	assert.Equal(t, 2, tick.RampTick)
}
