package carousel

import "sync/atomic"

// Ring holds the rotation counter. It only moves forward.
type Ring struct {
	ticks atomic.Uint64
}

// Advance moves the ring forward by exactly one item and returns the new
// tick count.
func (r *Ring) Advance() uint64 {
	return r.ticks.Add(1)
}

// Ticks returns the number of advances so far.
func (r *Ring) Ticks() uint64 {
	return r.ticks.Load()
}

// ActiveIndex returns the tick count reduced to an item index.
func (r *Ring) ActiveIndex(itemCount int) int {
	if itemCount < 1 {
		return 0
	}
	return int(r.ticks.Load() % uint64(itemCount))
}
