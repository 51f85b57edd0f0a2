package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/identity"
	"github.com/hirepath/showcase/internal/sequencer"
)

func testModel(t *testing.T) model {
	t.Helper()
	catalog, err := demos.BuiltinCatalog()
	require.NoError(t, err)
	m, err := newModel(Options{Catalog: catalog})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func screeningSnap(gen uint64, phase string, state demos.ScreeningState) ScreeningSnapshotMsg {
	return ScreeningSnapshotMsg{Snapshot: sequencer.Snapshot[demos.ScreeningState]{
		Generation: gen,
		Phase:      phase,
		Kind:       sequencer.KindStep,
		State:      state,
		At:         time.Now(),
	}}
}

func TestNewModelRequiresCatalog(t *testing.T) {
	_, err := newModel(Options{})
	require.Error(t, err)
}

func TestViewSwitching(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, viewHome, m.view)

	m = update(t, m, key("2"))
	assert.Equal(t, viewDashboard, m.view)
	m = update(t, m, key("g"))
	assert.Equal(t, viewHome, m.view)
	m = update(t, m, key("g"))
	assert.Equal(t, viewDashboard, m.view)
	m = update(t, m, key("1"))
	assert.Equal(t, viewHome, m.view)
}

func TestTabCyclesFocus(t *testing.T) {
	m := testModel(t)
	start := m.focus
	for i := 0; i < int(demoCount); i++ {
		m = update(t, m, key("tab"))
	}
	assert.Equal(t, start, m.focus)

	m = update(t, m, key("tab"))
	assert.NotEqual(t, start, m.focus)
}

func TestSidebarKeys(t *testing.T) {
	m := testModel(t)
	require.True(t, m.sidebar.Open)

	m = update(t, m, key("s"))
	assert.False(t, m.sidebar.Open)

	m = update(t, m, key("j"))
	assert.Equal(t, 0, m.sidebar.Active, "navigation only applies on the dashboard")

	m = update(t, m, key("2"))
	m = update(t, m, key("j"))
	assert.Equal(t, 1, m.sidebar.Active)
	m = update(t, m, key("k"))
	m = update(t, m, key("k"))
	assert.Equal(t, len(m.sidebar.Items)-1, m.sidebar.Active)
}

func TestStaleGenerationDropped(t *testing.T) {
	m := testModel(t)
	sarah := demos.Card{Candidate: demos.Candidate{ID: 1, Name: "Sarah Chen"}}

	m = update(t, m, screeningSnap(2, demos.PhaseAppearing, demos.ScreeningState{Cards: []demos.Card{sarah}}))
	require.Len(t, m.screening.Cards, 1)

	m = update(t, m, screeningSnap(1, demos.PhaseRanked, demos.ScreeningState{}))
	assert.Len(t, m.screening.Cards, 1)
	assert.Equal(t, demos.PhaseAppearing, m.screeningPhase)
	assert.Equal(t, uint64(2), m.screeningGen)

	m = update(t, m, screeningSnap(3, demos.PhaseIdle, demos.ScreeningState{}))
	assert.Empty(t, m.screening.Cards)
}

func TestFeedBatchApplied(t *testing.T) {
	m := testModel(t)
	m = update(t, m, feedBatchMsg{
		InterviewSnapshotMsg{Snapshot: sequencer.Snapshot[demos.InterviewState]{
			Generation: 1,
			Phase:      demos.PhaseSpeaking,
			State:      demos.InterviewState{Speaker: demos.SpeakerAI},
		}},
		InterviewSnapshotMsg{Snapshot: sequencer.Snapshot[demos.InterviewState]{
			Generation: 1,
			Phase:      demos.PhaseSpeaking,
			State: demos.InterviewState{
				Speaker:  demos.SpeakerAI,
				Messages: []demos.Line{{ID: 1, Speaker: demos.SpeakerAI, Text: "Hello"}},
			},
		}},
	})

	assert.Equal(t, demos.PhaseSpeaking, m.interviewPhase)
	require.Len(t, m.interview.Messages, 1)
	assert.Contains(t, m.View(), "Hello")
}

// settleSession runs the identity watcher until every published user has
// been observed, then applies whatever it queued on the feed.
func settleSession(t *testing.T, m model) model {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = m.session.watch(ctx, m.feed)
	}()
	require.Eventually(t, func() bool { return len(m.session.users) == 0 }, 2*time.Second, time.Millisecond)
	cancel()
	<-done

	for _, msg := range m.feed.drain() {
		m = update(t, m, msg)
	}
	return m
}

func TestSignInRedirectsOnce(t *testing.T) {
	m := testModel(t)

	m = update(t, m, key("a"))
	require.NotNil(t, m.user)
	assert.Equal(t, viewHome, m.view, "the redirect comes from the watcher")

	m = settleSession(t, m)
	assert.Equal(t, viewDashboard, m.view)
	assert.Contains(t, m.notice, "/dashboard")

	m = update(t, m, key("1"))
	m = update(t, m, key("a"))
	assert.Nil(t, m.user)
	m = settleSession(t, m)
	assert.Equal(t, viewHome, m.view)

	m = update(t, m, key("a"))
	m = settleSession(t, m)
	assert.Equal(t, viewDashboard, m.view, "a fresh sign-in redirects again")
	assert.Contains(t, m.View(), "Signed in as Demo Recruiter")
}

func TestSignInFromDashboardDoesNotRedirect(t *testing.T) {
	m := testModel(t)
	m = update(t, m, key("2"))
	m = update(t, m, key("a"))
	m = settleSession(t, m)

	assert.Equal(t, viewDashboard, m.view)
	assert.NotContains(t, m.notice, "Redirected")
}

func TestRedirectForEndedSessionIgnored(t *testing.T) {
	m := testModel(t)
	m = update(t, m, RedirectMsg{User: &identity.User{ID: demoRecruiterID}, Path: identity.DashboardPath})
	assert.Equal(t, viewHome, m.view)
	assert.Empty(t, m.notice)
}

func TestSignUpMode(t *testing.T) {
	catalog, err := demos.BuiltinCatalog()
	require.NoError(t, err)
	m, err := newModel(Options{Catalog: catalog, AuthMode: identity.ModeSignUp})
	require.NoError(t, err)

	m = update(t, m, key("a"))
	assert.Equal(t, "Signed up as Demo Recruiter.", m.notice)
	m = settleSession(t, m)
	assert.Equal(t, viewDashboard, m.view)
}

func TestCarouselTickRotatesFocus(t *testing.T) {
	m := testModel(t)
	assert.Contains(t, m.View(), "Step 1 of 5")

	m = update(t, m, carouselTickMsg(time.Now()))
	assert.Equal(t, uint64(1), m.ring.Ticks())
	assert.Contains(t, m.View(), "Step 2 of 5")

	for i := 0; i < 4; i++ {
		m = update(t, m, carouselTickMsg(time.Now()))
	}
	assert.Contains(t, m.View(), "Step 1 of 5")
}

func TestMarqueeTickAdvances(t *testing.T) {
	m := testModel(t)
	m = update(t, m, marqueeTickMsg(time.Now()))
	assert.Equal(t, 1, m.marquee.Offset)
}

func TestHomeViewRendersDemos(t *testing.T) {
	m := testModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Waiting for candidates")
	assert.Contains(t, view, "Interview starting")
	assert.Contains(t, view, "Upload JD")

	state := demos.ScreeningState{
		Cards: []demos.Card{
			{Candidate: demos.Candidate{ID: 1, Name: "Sarah Chen", Score: 95}, Score: 95},
			{Candidate: demos.Candidate{ID: 2, Name: "Michael Rodriguez", Score: 88}},
		},
		Highlight: 2,
	}
	m = update(t, m, screeningSnap(1, demos.PhaseScanning, state))
	view = m.View()
	assert.Contains(t, view, "Sarah Chen")
	assert.Contains(t, view, "95%")
	assert.Contains(t, view, "Analyzing...")
}

func TestSmallTerminal(t *testing.T) {
	m := testModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.True(t, strings.Contains(m.View(), "Terminal too small"))
}

func TestQuitKey(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFeedDeliversWithoutBlocking(t *testing.T) {
	f := newFeed()
	defer f.close()

	for i := 0; i < 100; i++ {
		f.push(ScreeningSnapshotMsg{})
	}

	msg := f.next()()
	batch, ok := msg.(feedBatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 100)
}

func TestFeedCloseReleasesReader(t *testing.T) {
	f := newFeed()
	f.close()
	f.close()
	assert.Nil(t, f.next()())
}
