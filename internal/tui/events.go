package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/sequencer"
)

// ScreeningSnapshotMsg carries a resume screening snapshot.
type ScreeningSnapshotMsg struct {
	Snapshot sequencer.Snapshot[demos.ScreeningState]
}

// InterviewSnapshotMsg carries an interview snapshot.
type InterviewSnapshotMsg struct {
	Snapshot sequencer.Snapshot[demos.InterviewState]
}

// feedBatchMsg delivers every message queued since the last read.
type feedBatchMsg []tea.Msg

// feed bridges sequencer subscriptions to the program. Sequencer callbacks
// run under the sequencer lock, so push never blocks.
type feed struct {
	mu      sync.Mutex
	pending []tea.Msg
	signal  chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newFeed() *feed {
	return &feed{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (f *feed) push(msg tea.Msg) {
	f.mu.Lock()
	f.pending = append(f.pending, msg)
	f.mu.Unlock()

	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *feed) drain() []tea.Msg {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.pending
	f.pending = nil
	return msgs
}

// next returns a command that waits for queued messages.
func (f *feed) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.signal:
			return feedBatchMsg(f.drain())
		case <-f.done:
			return nil
		}
	}
}

func (f *feed) close() {
	f.once.Do(func() { close(f.done) })
}

// subscribe forwards both demos into the feed and returns the combined
// unsubscribe.
func (f *feed) subscribe(screening *sequencer.Sequencer[demos.ScreeningState], interview *sequencer.Sequencer[demos.InterviewState]) func() {
	stopScreening := screening.Subscribe(func(s sequencer.Snapshot[demos.ScreeningState]) {
		f.push(ScreeningSnapshotMsg{Snapshot: s})
	})
	stopInterview := interview.Subscribe(func(s sequencer.Snapshot[demos.InterviewState]) {
		f.push(InterviewSnapshotMsg{Snapshot: s})
	})
	return func() {
		stopScreening()
		stopInterview()
	}
}
