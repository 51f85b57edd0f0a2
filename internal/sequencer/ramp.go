package sequencer

import (
	"math"
	"time"
)

// Ramp defaults.
const (
	DefaultRampIncrements = 10
	DefaultRampInterval   = 20 * time.Millisecond
)

// Ramp animates a scalar field from its current value to Target in equal
// increments, publishing after each one.
type Ramp[T any] struct {
	// Get reads the starting value from the state.
	Get func(T) float64

	// Set returns a copy of the state with the value replaced.
	Set func(T, int) T

	Target     float64
	Increments int
	Interval   time.Duration

	// Delay is waited once before the first increment.
	Delay time.Duration
}

// RampValues returns the rounded values a ramp publishes, one per increment.
// The last value is always the rounded target.
func RampValues(start, target float64, increments int) []int {
	if increments <= 0 {
		increments = DefaultRampIncrements
	}

	delta := (target - start) / float64(increments)
	values := make([]int, increments)
	for i := 1; i <= increments; i++ {
		values[i-1] = int(math.Round(start + delta*float64(i)))
	}
	values[increments-1] = int(math.Round(target))
	return values
}
