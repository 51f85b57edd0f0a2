// Package sequencer runs scripted, looping, cancellable step sequences.
//
// A Sequencer executes one Script at a time. Each step waits its hold
// duration, applies a pure transform to the current state and publishes the
// result to subscribers. When the last step completes the sequencer waits the
// script's loop pause and starts over from the initial state under a new
// generation. Any continuation whose generation is no longer live is
// discarded, so a cancelled or superseded run never publishes again.
package sequencer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Script errors.
var (
	ErrNilScript   = errors.New("script is required")
	ErrEmptyScript = errors.New("script has no steps")
)

// Step is a single scripted transition.
type Step[T any] struct {
	// Phase tags the snapshot published by this step. Empty keeps the
	// previous phase.
	Phase string

	// Hold is how long to wait before applying the step.
	Hold time.Duration

	// Apply produces the next state from the previous one. It must be
	// total and must not mutate its input. Nil only changes the phase.
	Apply func(T) T

	// Ramp optionally animates a scalar after Apply has been published.
	Ramp *Ramp[T]
}

// Definition describes a script before validation.
type Definition[T any] struct {
	Name string

	// ResetPhase tags the initial snapshot published at the start of
	// every generation.
	ResetPhase string

	// LoopPause is the wait between the last step and the restart.
	LoopPause time.Duration

	Steps []Step[T]
}

// Script is a validated, immutable step sequence.
type Script[T any] struct {
	name       string
	resetPhase string
	loopPause  time.Duration
	steps      []Step[T]
}

// NewScript validates def and returns an immutable script.
func NewScript[T any](def Definition[T]) (*Script[T], error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, fmt.Errorf("script name is required")
	}
	if len(def.Steps) == 0 {
		return nil, fmt.Errorf("script %q: %w", name, ErrEmptyScript)
	}
	if def.LoopPause < 0 {
		return nil, fmt.Errorf("script %q: loop pause must not be negative", name)
	}

	steps := make([]Step[T], len(def.Steps))
	for i, step := range def.Steps {
		if err := normalizeStep(&step); err != nil {
			return nil, fmt.Errorf("script %q step %d: %w", name, i+1, err)
		}
		steps[i] = step
	}

	return &Script[T]{
		name:       name,
		resetPhase: strings.TrimSpace(def.ResetPhase),
		loopPause:  def.LoopPause,
		steps:      steps,
	}, nil
}

// MustScript is like NewScript but panics on error. Intended for scripts
// built from compiled-in data.
func MustScript[T any](def Definition[T]) *Script[T] {
	script, err := NewScript(def)
	if err != nil {
		panic(err)
	}
	return script
}

func normalizeStep[T any](step *Step[T]) error {
	step.Phase = strings.TrimSpace(step.Phase)
	if step.Hold < 0 {
		return fmt.Errorf("hold must not be negative")
	}
	if step.Ramp == nil {
		return nil
	}

	ramp := *step.Ramp
	if ramp.Get == nil || ramp.Set == nil {
		return fmt.Errorf("ramp requires Get and Set")
	}
	if ramp.Increments < 0 {
		return fmt.Errorf("ramp increments must not be negative")
	}
	if ramp.Increments == 0 {
		ramp.Increments = DefaultRampIncrements
	}
	if ramp.Interval < 0 {
		return fmt.Errorf("ramp interval must not be negative")
	}
	if ramp.Interval == 0 {
		ramp.Interval = DefaultRampInterval
	}
	if ramp.Delay < 0 {
		return fmt.Errorf("ramp delay must not be negative")
	}
	step.Ramp = &ramp
	return nil
}

// Name returns the script name.
func (s *Script[T]) Name() string { return s.name }

// ResetPhase returns the phase of the initial snapshot.
func (s *Script[T]) ResetPhase() string { return s.resetPhase }

// LoopPause returns the wait before each restart.
func (s *Script[T]) LoopPause() time.Duration { return s.loopPause }

// Len returns the number of steps.
func (s *Script[T]) Len() int { return len(s.steps) }

// Steps returns a copy of the steps. Ramps are copied too, so callers
// cannot reach the script's own.
func (s *Script[T]) Steps() []Step[T] {
	out := make([]Step[T], len(s.steps))
	copy(out, s.steps)
	for i := range out {
		if out[i].Ramp != nil {
			ramp := *out[i].Ramp
			out[i].Ramp = &ramp
		}
	}
	return out
}

// CycleDuration is the unscaled wall time of one full cycle, loop pause
// included.
func (s *Script[T]) CycleDuration() time.Duration {
	total := s.loopPause
	for _, step := range s.steps {
		total += step.Hold
		if step.Ramp != nil {
			total += step.Ramp.Delay + time.Duration(step.Ramp.Increments)*step.Ramp.Interval
		}
	}
	return total
}
