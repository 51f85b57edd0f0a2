// Package tui implements the showcase terminal user interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hirepath/showcase/internal/carousel"
	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/identity"
	"github.com/hirepath/showcase/internal/logging"
	"github.com/hirepath/showcase/internal/sequencer"
	"github.com/hirepath/showcase/internal/tui/components"
	"github.com/hirepath/showcase/internal/tui/styles"
)

// Options configures the TUI.
type Options struct {
	Catalog  *demos.Catalog
	Theme    string
	Speed    float64
	Radius   float64
	Interval time.Duration
	AuthMode identity.Mode
}

// Run launches the showcase TUI and blocks until it exits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	logger := logging.Component("tui")

	m, err := newModel(opts)
	if err != nil {
		return err
	}
	screeningScript, err := demos.ScreeningScript(m.candidates, demos.DefaultScreeningTiming())
	if err != nil {
		return err
	}
	interviewScript, err := demos.InterviewScript(m.lines, demos.DefaultInterviewTiming())
	if err != nil {
		return err
	}

	screening := sequencer.New[demos.ScreeningState]("screening", sequencer.WithTimeScale(opts.Speed))
	interview := sequencer.New[demos.InterviewState]("interview", sequencer.WithTimeScale(opts.Speed))
	defer screening.Stop()
	defer interview.Stop()

	defer m.feed.close()
	unsubscribe := m.feed.subscribe(screening, interview)
	defer unsubscribe()

	watchCtx, stopWatch := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		_ = m.session.watch(watchCtx, m.feed)
	}()
	defer func() {
		stopWatch()
		<-watchDone
	}()

	if _, err := screening.Start(ctx, screeningScript, demos.ScreeningState{}); err != nil {
		return fmt.Errorf("start screening: %w", err)
	}
	if _, err := interview.Start(ctx, interviewScript, demos.InterviewState{}); err != nil {
		return fmt.Errorf("start interview: %w", err)
	}
	logger.Info().
		Float64("speed", opts.Speed).
		Str("theme", m.styles.Theme.Name).
		Str("auth_mode", string(m.session.mode)).
		Msg("tui starting")

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	logger.Info().Err(err).Msg("tui stopped")
	return err
}

type viewID int

const (
	viewHome viewID = iota
	viewDashboard
)

func nextView(current viewID) viewID {
	if current == viewHome {
		return viewDashboard
	}
	return viewHome
}

type demoID int

const (
	demoTimeline demoID = iota
	demoScreening
	demoInterview
	demoCount
)

type model struct {
	width       int
	height      int
	styles      styles.Styles
	view        viewID
	focus       demoID
	lastUpdated time.Time
	now         time.Time

	feed *feed

	candidates     []demos.Candidate
	screeningTitle string
	screening      demos.ScreeningState
	screeningPhase string
	screeningGen   uint64

	lines          []demos.Line
	analysis       []string
	interviewTitle string
	interview      demos.InterviewState
	interviewPhase string
	interviewGen   uint64

	steps   []demos.TimelineStep
	ring    *carousel.Ring
	ringCfg carousel.RingConfig

	marquee components.Marquee
	sidebar components.Sidebar
	spinner spinner.Model
	meter   components.SentimentMeter

	session *session
	user    *identity.User
	notice  string
}

const (
	minWidth        = 60
	minHeight       = 15
	defaultWidth    = 100
	wideLayout      = 110
	staleAfter      = 30 * time.Second
	marqueeEvery    = 150 * time.Millisecond
	defaultSpeed    = 1.0
	demoRecruiter   = "Demo Recruiter"
	demoRecruiterID = "demo-recruiter"
)

func newModel(opts Options) (model, error) {
	if opts.Catalog == nil {
		return model{}, errors.New("demo catalog is required")
	}
	if opts.Speed <= 0 {
		opts.Speed = defaultSpeed
	}

	screening, err := opts.Catalog.Kind(demos.KindScreening)
	if err != nil {
		return model{}, err
	}
	interview, err := opts.Catalog.Kind(demos.KindInterview)
	if err != nil {
		return model{}, err
	}
	steps, err := opts.Catalog.Timeline()
	if err != nil {
		return model{}, err
	}
	features, err := opts.Catalog.Features()
	if err != nil {
		return model{}, err
	}

	ringCfg := carousel.DefaultRingConfig(len(steps))
	if opts.Radius > 0 {
		ringCfg.Radius = opts.Radius
	}
	if opts.Interval > 0 {
		ringCfg.Interval = opts.Interval
	}
	if err := ringCfg.Validate(); err != nil {
		return model{}, err
	}

	theme, _ := styles.Lookup(opts.Theme)
	styleSet := styles.BuildStyles(theme)

	now := time.Now()
	return model{
		styles:         styleSet,
		view:           viewHome,
		focus:          demoScreening,
		now:            now,
		candidates:     append([]demos.Candidate(nil), screening.Candidates...),
		screeningTitle: screening.Title,
		screeningPhase: demos.PhaseIdle,
		lines:          append([]demos.Line(nil), interview.Lines...),
		analysis:       append([]string(nil), interview.Analysis...),
		interviewTitle: interview.Title,
		interviewPhase: demos.PhaseListening,
		steps:          steps,
		ring:           &carousel.Ring{},
		ringCfg:        ringCfg,
		marquee:        components.NewMarquee(features),
		sidebar:        components.NewSidebar(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styleSet.Info)),
		meter:          components.NewSentimentMeter(styleSet, defaultWidth/2-8),
		feed:           newFeed(),
		session:        newSession(opts.AuthMode),
	}, nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(),
		carouselTickCmd(m.ringCfg.Interval),
		marqueeTickCmd(),
		m.spinner.Tick,
	}
	if m.feed != nil {
		cmds = append(cmds, m.feed.next())
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.meter = components.NewSentimentMeter(m.styles, m.panelWidth()-8)
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case carouselTickMsg:
		m.ring.Advance()
		return m, carouselTickCmd(m.ringCfg.Interval)
	case marqueeTickMsg:
		m.marquee.Advance()
		return m, marqueeTickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case feedBatchMsg:
		for _, queued := range msg {
			m = m.applySnapshot(queued)
		}
		if m.feed != nil {
			return m, m.feed.next()
		}
	case ScreeningSnapshotMsg, InterviewSnapshotMsg, RedirectMsg:
		m = m.applySnapshot(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m = m.setView(viewHome)
	case "2":
		m = m.setView(viewDashboard)
	case "g":
		m = m.setView(nextView(m.view))
	case "tab":
		m.focus = (m.focus + 1) % demoCount
	case "s":
		m.sidebar.Toggle()
	case "j", "down":
		if m.view == viewDashboard {
			m.sidebar.Move(1)
		}
	case "k", "up":
		if m.view == viewDashboard {
			m.sidebar.Move(-1)
		}
	case "a":
		m = m.toggleSignIn()
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) setView(view viewID) model {
	m.view = view
	m.session.setModalOpen(view == viewHome)
	return m
}

// applySnapshot keeps the newest generation per demo and drops older ones.
// It also applies redirects queued on the same feed.
func (m model) applySnapshot(msg tea.Msg) model {
	switch msg := msg.(type) {
	case RedirectMsg:
		// A redirect for a session that has since ended is stale.
		if m.user == nil || msg.User == nil || m.user.ID != msg.User.ID {
			return m
		}
		m = m.setView(viewDashboard)
		m.notice += fmt.Sprintf(" Redirected to %s.", msg.Path)
	case ScreeningSnapshotMsg:
		snap := msg.Snapshot
		if snap.Generation < m.screeningGen {
			return m
		}
		m.screeningGen = snap.Generation
		m.screening = snap.State
		m.screeningPhase = snap.Phase
		m.lastUpdated = snap.At
	case InterviewSnapshotMsg:
		snap := msg.Snapshot
		if snap.Generation < m.interviewGen {
			return m
		}
		m.interviewGen = snap.Generation
		m.interview = snap.State
		m.interviewPhase = snap.Phase
		m.lastUpdated = snap.At
	}
	return m
}

// toggleSignIn signs the demo recruiter in or out and publishes the change.
// Any redirect arrives later as a RedirectMsg.
func (m model) toggleSignIn() model {
	if m.user != nil {
		m.notice = fmt.Sprintf("Signed out %s.", m.user.Name)
		m.user = nil
		m.session.publish(nil)
		return m
	}

	user := &identity.User{ID: demoRecruiterID, Name: demoRecruiter}
	m.user = user
	m.notice = fmt.Sprintf("%s as %s.", m.session.verb(), user.Name)
	m.session.publish(user)
	return m
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", joinLines(m.smallViewLines()))
		}
	}

	lines := []string{
		m.styles.Title.Render("HirePath Showcase") + "  " + m.styles.Muted.Render(m.viewTitle()),
		"",
	}
	lines = append(lines, m.viewLines()...)

	if m.notice != "" {
		lines = append(lines, "", m.styles.Info.Render(m.notice))
	}
	lines = append(lines, "", m.styles.Muted.Render(m.lastUpdatedLine()))
	lines = append(lines, m.styles.Muted.Render(components.RenderQuickActionBar(m.styles, components.ShowcaseQuickActions(m.view == viewDashboard, m.user != nil))))

	return fmt.Sprintf("%s\n", joinLines(lines))
}

func (m model) viewTitle() string {
	if m.view == viewDashboard {
		return "Dashboard"
	}
	return "Live demos"
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

func (m model) viewLines() []string {
	if m.view == viewDashboard {
		return []string{m.dashboardView()}
	}
	return m.homeLines()
}

func (m model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m model) panelWidth() int {
	width := m.contentWidth()
	if width >= wideLayout {
		return (width - 2) / 2
	}
	return width - 2
}

func (m model) homeLines() []string {
	width := m.contentWidth()
	lines := []string{
		m.panel(demoTimeline, "Hiring Workflow", m.trackView(width-4), width-2),
	}

	screening := m.panel(demoScreening, m.screeningTitle+"  "+components.RenderPhaseBadge(m.styles, m.screeningPhase), m.screeningView(), m.panelWidth())
	interview := m.panel(demoInterview, m.interviewTitle+"  "+components.RenderPhaseBadge(m.styles, m.interviewPhase), m.interviewView(), m.panelWidth())
	if width >= wideLayout {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, screening, interview))
	} else {
		lines = append(lines, screening, interview)
	}

	lines = append(lines, m.marquee.Render(m.styles, width-2))
	return lines
}

func (m model) panel(id demoID, title, body string, width int) string {
	style := m.styles.Panel.Width(width - 2)
	if m.focus == id {
		style = style.BorderForeground(lipgloss.Color(m.styles.Theme.Tokens.Focus))
	}
	return style.Render(m.styles.Title.Render(title) + "\n" + body)
}

func (m model) projections() []carousel.Projection {
	active := m.ring.ActiveIndex(m.ringCfg.ItemCount)
	projections, err := carousel.ProjectAll(active, m.ringCfg)
	if err != nil {
		return nil
	}
	return projections
}

func (m model) trackView(width int) string {
	projections := m.projections()
	track := components.RenderTrack(m.styles, projections, m.steps, width)
	if focused, ok := carousel.Focused(projections); ok && focused.Index < len(m.steps) {
		step := m.steps[focused.Index]
		track += "\n" + m.styles.Muted.Render(fmt.Sprintf("Step %d of %d: %s", step.Step, len(m.steps), step.Desc))
	}
	return track
}

func (m model) screeningView() string {
	if len(m.screening.Cards) == 0 {
		return components.EmptyCandidates().Render(m.styles)
	}

	cards := m.screening.Cards
	if m.screeningPhase == demos.PhaseRanked {
		cards = m.screening.Ranked()
	}
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, components.RenderCandidateCard(m.styles, components.CandidateCard{
			Card:     card,
			Scanning: m.screening.Scanning(card.Candidate.ID),
			Spinner:  m.spinner.View(),
			Width:    m.panelWidth() - 4,
		}))
	}
	return strings.Join(rendered, "\n")
}

func (m model) interviewView() string {
	return components.RenderTranscript(m.styles, m.interview.Messages, m.panelWidth()-4) +
		"\n\n" + m.meter.Render(m.styles, m.interview.Sentiment, m.analysis)
}

func (m model) dashboardView() string {
	height := 0
	if m.height > 0 {
		height = m.height - 8
	}
	sidebar := m.sidebar.Render(m.styles, height)

	var body []string
	if m.user == nil {
		body = append(body, components.EmptyDashboard().Render(m.styles))
	} else {
		item, _ := m.sidebar.Selected()
		body = append(body,
			m.styles.Accent.Render(item.Label),
			m.styles.Muted.Render(item.Path),
			"",
			m.styles.Text.Render(fmt.Sprintf("%s as %s", m.session.verb(), m.user.Name)),
			m.styles.Text.Render(m.screeningSummary()),
		)
	}
	content := lipgloss.NewStyle().PaddingLeft(2).Render(joinLines(body))
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
}

func (m model) screeningSummary() string {
	ranked := m.screening.Ranked()
	if len(ranked) == 0 || !ranked[0].Scored() {
		return "No candidates screened yet."
	}
	top := ranked[0]
	return fmt.Sprintf("Candidates screened: %d  Top match: %s (%d%%)", len(ranked), top.Candidate.Name, top.Score)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type carouselTickMsg time.Time

func carouselTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return carouselTickMsg(t)
	})
}

type marqueeTickMsg time.Time

func marqueeTickCmd() tea.Cmd {
	return tea.Tick(marqueeEvery, func(t time.Time) tea.Msg {
		return marqueeTickMsg(t)
	})
}

func (m model) lastUpdatedLine() string {
	if m.lastUpdated.IsZero() {
		return "Last snapshot: --"
	}
	label := m.lastUpdated.Format("15:04:05")
	if m.isStale() {
		label += " (stale)"
	}
	return fmt.Sprintf("Last snapshot: %s", label)
}

func (m model) isStale() bool {
	if m.lastUpdated.IsZero() || m.now.IsZero() {
		return false
	}
	return m.now.Sub(m.lastUpdated) > staleAfter
}
