package sequencer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hirepath/showcase/internal/logging"
)

// ErrStopped is returned by Start after Stop has been called.
var ErrStopped = errors.New("sequencer stopped")

// Kind identifies what produced a snapshot.
type Kind string

const (
	KindReset Kind = "reset"
	KindStep  Kind = "step"
	KindRamp  Kind = "ramp"
)

// Snapshot is one published state.
type Snapshot[T any] struct {
	RunID      string
	Generation uint64

	// Step is the script step index, -1 for the reset snapshot.
	Step int

	Phase string
	Kind  Kind

	// RampTick is the 1-based ramp increment, 0 outside ramps.
	RampTick int

	State T
	At    time.Time
}

// RunState is the latest published state of a sequencer.
type RunState[T any] struct {
	Phase      string
	Snapshot   T
	Generation uint64
	Live       bool
}

// RunHandle identifies a started run.
type RunHandle struct {
	ID     string
	Script string
}

// Stats contains sequencer counters.
type Stats struct {
	// Runs is the number of Start calls that began a run.
	Runs int64

	// Generations is the current generation number.
	Generations uint64

	// Cycles counts fully completed script passes.
	Cycles int64

	// Published counts delivered snapshots.
	Published int64

	// Discarded counts continuations dropped by the generation guard.
	Discarded int64

	// Cancelled counts runs ended by Cancel, Stop or a superseding Start.
	Cancelled int64
}

// Option configures a Sequencer.
type Option func(*options)

type options struct {
	clock   Clock
	scale   float64
	logger  *zerolog.Logger
	history int
}

// WithClock replaces the runtime clock.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithTimeScale speeds playback up (>1) or down (<1). Non-positive values
// are ignored.
func WithTimeScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithHistory keeps the last n snapshots, readable through History.
func WithHistory(n int) Option {
	return func(o *options) {
		o.history = n
	}
}

type run struct {
	id     string
	script string
	ctx    context.Context
	cancel context.CancelFunc

	// gen is the generation this run currently owns; guarded by Sequencer.mu.
	gen uint64
}

// Sequencer drives one script at a time and publishes its snapshots.
//
// Subscribers are invoked synchronously on the run goroutine while the
// sequencer lock is held; they must not block on, or call back into, the
// sequencer. Holding the lock across delivery is what guarantees that once
// Cancel returns no further snapshot of the cancelled run is delivered.
type Sequencer[T any] struct {
	name    string
	clock   Clock
	scale   float64
	logger  zerolog.Logger
	history *History[T]

	mu          sync.Mutex
	generation  uint64
	live        *run
	state       RunState[T]
	subscribers map[int]func(Snapshot[T])
	nextSubID   int
	stopped     bool
	stats       Stats

	wg sync.WaitGroup
}

// New creates an idle sequencer.
func New[T any](name string, opts ...Option) *Sequencer[T] {
	o := options{
		clock: RealClock(),
		scale: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.Component("sequencer")
	if o.logger != nil {
		logger = *o.logger
	}

	s := &Sequencer[T]{
		name:        name,
		clock:       o.clock,
		scale:       o.scale,
		logger:      logger.With().Str("sequencer", name).Logger(),
		subscribers: make(map[int]func(Snapshot[T])),
	}
	if o.history > 0 {
		s.history = NewHistory[T](o.history)
	}
	return s
}

// Name returns the sequencer name.
func (s *Sequencer[T]) Name() string {
	return s.name
}

// Subscribe registers fn to receive every published snapshot. The returned
// function removes the subscription.
func (s *Sequencer[T]) Subscribe(fn func(Snapshot[T])) func() {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Start begins looping script from initial. A run that is already live is
// cancelled first. The run ends when ctx is done, on Cancel or on Stop.
func (s *Sequencer[T]) Start(ctx context.Context, script *Script[T], initial T) (RunHandle, error) {
	if script == nil {
		return RunHandle{}, ErrNilScript
	}
	if script.Len() == 0 {
		return RunHandle{}, ErrEmptyScript
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return RunHandle{}, ErrStopped
	}
	if s.live != nil {
		s.logger.Debug().Str("run_id", s.live.id).Msg("superseding live run")
		s.cancelLocked()
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{
		id:     uuid.NewString(),
		script: script.Name(),
		ctx:    runCtx,
		cancel: cancel,
	}
	s.live = r
	s.stats.Runs++

	s.logger.Debug().
		Str("run_id", r.id).
		Str("script", r.script).
		Int("steps", script.Len()).
		Dur("loop_pause", script.LoopPause()).
		Msg("run starting")

	s.wg.Add(1)
	go s.loop(r, script, initial)

	return RunHandle{ID: r.id, Script: r.script}, nil
}

// Cancel invalidates the handle's run. It reports whether the handle was
// live. No snapshot of the run is delivered after Cancel returns.
func (s *Sequencer[T]) Cancel(handle RunHandle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil || s.live.id != handle.ID {
		return false
	}
	s.logger.Debug().Str("run_id", handle.ID).Msg("run cancelled")
	s.cancelLocked()
	return true
}

// Stop cancels the live run, waits for its goroutine to exit and rejects
// further Starts. It is safe to call more than once.
func (s *Sequencer[T]) Stop() {
	s.mu.Lock()
	s.stopped = true
	if s.live != nil {
		s.cancelLocked()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// State returns the latest published state.
func (s *Sequencer[T]) State() RunState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stats returns a copy of the counters.
func (s *Sequencer[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	stats.Generations = s.generation
	return stats
}

// History returns the retained snapshots, oldest first. It is empty unless
// the sequencer was built WithHistory.
func (s *Sequencer[T]) History() []Snapshot[T] {
	return s.history.Entries()
}

func (s *Sequencer[T]) cancelLocked() {
	s.live.cancel()
	s.live = nil
	s.state.Live = false
	s.stats.Cancelled++
}

// loop runs script until r is no longer live. Restarts happen in this loop,
// never by re-entering Start.
func (s *Sequencer[T]) loop(r *run, script *Script[T], initial T) {
	defer s.wg.Done()
	defer s.release(r)

	steps := script.steps
	for {
		gen, ok := s.begin(r, script.resetPhase, initial)
		if !ok {
			return
		}

		current := initial
		phase := script.resetPhase
		for i, step := range steps {
			if !s.wait(r, step.Hold) {
				return
			}
			if step.Phase != "" {
				phase = step.Phase
			}
			if step.Apply != nil {
				current = step.Apply(current)
			}
			if !s.publish(r, gen, Snapshot[T]{Step: i, Phase: phase, Kind: KindStep, State: current}) {
				return
			}
			if step.Ramp != nil {
				if current, ok = s.ramp(r, gen, i, phase, step.Ramp, current); !ok {
					return
				}
			}
		}

		s.mu.Lock()
		s.stats.Cycles++
		s.mu.Unlock()
		s.logger.Debug().Str("run_id", r.id).Uint64("generation", gen).Msg("cycle complete")

		if !s.wait(r, script.loopPause) {
			return
		}
	}
}

func (s *Sequencer[T]) ramp(r *run, gen uint64, index int, phase string, ramp *Ramp[T], current T) (T, bool) {
	if !s.wait(r, ramp.Delay) {
		return current, false
	}
	values := RampValues(ramp.Get(current), ramp.Target, ramp.Increments)
	for i, value := range values {
		if r.ctx.Err() != nil {
			return current, false
		}
		current = ramp.Set(current, value)
		snap := Snapshot[T]{Step: index, Phase: phase, Kind: KindRamp, RampTick: i + 1, State: current}
		if !s.publish(r, gen, snap) {
			return current, false
		}
		if !s.wait(r, ramp.Interval) {
			return current, false
		}
	}
	return current, true
}

// begin claims a new generation for r and publishes the reset snapshot.
func (s *Sequencer[T]) begin(r *run, phase string, initial T) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != r || r.ctx.Err() != nil {
		s.stats.Discarded++
		return 0, false
	}
	s.generation++
	r.gen = s.generation

	s.deliverLocked(r, Snapshot[T]{Step: -1, Phase: phase, Kind: KindReset, State: initial})
	return r.gen, true
}

// publish delivers snap if gen is still the live generation of r.
func (s *Sequencer[T]) publish(r *run, gen uint64, snap Snapshot[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != r || r.gen != gen || r.ctx.Err() != nil {
		s.stats.Discarded++
		return false
	}
	s.deliverLocked(r, snap)
	return true
}

func (s *Sequencer[T]) deliverLocked(r *run, snap Snapshot[T]) {
	snap.RunID = r.id
	snap.Generation = r.gen
	snap.At = s.clock.Now()

	s.state = RunState[T]{
		Phase:      snap.Phase,
		Snapshot:   snap.State,
		Generation: r.gen,
		Live:       true,
	}
	s.stats.Published++
	s.history.Add(snap)

	for _, fn := range s.subscribers {
		fn(snap)
	}
}

// wait suspends for d (scaled) and reports whether r is still running.
func (s *Sequencer[T]) wait(r *run, d time.Duration) bool {
	if d = s.scaled(d); d > 0 {
		select {
		case <-r.ctx.Done():
			return false
		case <-s.clock.After(d):
		}
	}
	return r.ctx.Err() == nil
}

func (s *Sequencer[T]) scaled(d time.Duration) time.Duration {
	if s.scale == 1 || d <= 0 {
		return d
	}
	return time.Duration(float64(d) / s.scale)
}

// release clears r if it ended on its own, e.g. when the parent context was
// cancelled.
func (s *Sequencer[T]) release(r *run) {
	r.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == r {
		s.live = nil
		s.state.Live = false
	}
}
