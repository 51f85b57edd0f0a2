package sequencer

import "time"

// Clock abstracts timers and the wall clock so playback can be driven by
// tests.
type Clock interface {
	After(d time.Duration) <-chan time.Time

	// Now stamps published snapshots.
	Now() time.Time
}

// ClockFunc adapts a timer function to Clock. Now reads the wall clock.
type ClockFunc func(d time.Duration) <-chan time.Time

// After implements Clock.
func (f ClockFunc) After(d time.Duration) <-chan time.Time {
	return f(d)
}

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return time.Now()
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (realClock) Now() time.Time {
	return time.Now()
}

// RealClock returns a Clock backed by the runtime timers.
func RealClock() Clock {
	return realClock{}
}
