package sequencer

import "sync"

// History stores the last N published snapshots.
type History[T any] struct {
	mu      sync.Mutex
	size    int
	entries []Snapshot[T]
	next    int
	full    bool
}

// NewHistory returns a ring buffer sized for the provided snapshot count.
func NewHistory[T any](size int) *History[T] {
	if size <= 0 {
		size = 1
	}
	return &History[T]{
		size:    size,
		entries: make([]Snapshot[T], size),
	}
}

// Add stores a snapshot in the ring buffer.
func (h *History[T]) Add(snap Snapshot[T]) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.next] = snap
	h.next++
	if h.next >= h.size {
		h.next = 0
		h.full = true
	}
}

// Entries returns the buffered snapshots in publication order.
func (h *History[T]) Entries() []Snapshot[T] {
	if h == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.full {
		out := make([]Snapshot[T], h.next)
		copy(out, h.entries[:h.next])
		return out
	}

	out := make([]Snapshot[T], h.size)
	copy(out, h.entries[h.next:])
	copy(out[h.size-h.next:], h.entries[:h.next])
	return out
}
