package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hirepath/showcase/internal/config"
	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/logging"
	"github.com/hirepath/showcase/internal/sequencer"
)

var (
	playCycles int
	playSpeed  float64
	playRamps  bool
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntVar(&playCycles, "cycles", 1, "number of full cycles to play (0 = until interrupted)")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 0, "playback speed multiplier (default from config)")
	playCmd.Flags().BoolVar(&playRamps, "ramps", false, "also print every ramp increment")
}

var playCmd = &cobra.Command{
	Use:       "play <screening|interview|all>",
	Short:     "Play demos headless",
	Long:      "Run demo scripts without the TUI and print each published snapshot.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"screening", "interview", "all"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			cfg = config.DefaultConfig()
		}
		if playCycles < 0 {
			return fmt.Errorf("--cycles must not be negative")
		}
		speed := cfg.Demo.Speed
		if cmd.Flags().Changed("speed") {
			if playSpeed <= 0 {
				return fmt.Errorf("--speed must be greater than 0")
			}
			speed = playSpeed
		}

		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		opts := playOptions{
			cycles: playCycles,
			ramps:  playRamps,
			json:   IsJSONOutput() || IsJSONLOutput(),
			out:    newLineWriter(cmd.OutOrStdout()),
			seqOpts: []sequencer.Option{
				sequencer.WithTimeScale(speed),
			},
		}
		return playDemos(cmd.Context(), catalog, strings.ToLower(args[0]), opts)
	},
}

type playOptions struct {
	cycles  int
	ramps   bool
	json    bool
	out     *lineWriter
	seqOpts []sequencer.Option
}

// playEvent is the JSON shape of a printed snapshot.
type playEvent struct {
	Demo       string         `json:"demo"`
	RunID      string         `json:"run_id"`
	Generation uint64         `json:"generation"`
	Step       int            `json:"step"`
	Phase      string         `json:"phase"`
	Kind       sequencer.Kind `json:"kind"`
	RampTick   int            `json:"ramp_tick,omitempty"`
	At         time.Time      `json:"at"`
	State      any            `json:"state"`
}

func playDemos(ctx context.Context, catalog *demos.Catalog, which string, opts playOptions) error {
	players := make([]func(context.Context) error, 0, 2)

	if which == "screening" || which == "all" {
		candidates, err := catalog.Candidates()
		if err != nil {
			return err
		}
		script, err := demos.ScreeningScript(candidates, demos.DefaultScreeningTiming())
		if err != nil {
			return err
		}
		players = append(players, func(ctx context.Context) error {
			return play(ctx, script, demos.ScreeningState{}, describeScreening, opts)
		})
	}
	if which == "interview" || which == "all" {
		lines, err := catalog.Conversation()
		if err != nil {
			return err
		}
		script, err := demos.InterviewScript(lines, demos.DefaultInterviewTiming())
		if err != nil {
			return err
		}
		players = append(players, func(ctx context.Context) error {
			return play(ctx, script, demos.InterviewState{}, describeInterview, opts)
		})
	}
	if len(players) == 0 {
		return &PreflightError{
			Message:  fmt.Sprintf("Unknown demo %q", which),
			Hint:     "Choose screening, interview or all",
			NextStep: "showcase play all --cycles 1",
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range players {
		g.Go(func() error { return p(ctx) })
	}
	return g.Wait()
}

// play runs script until opts.cycles complete or ctx is done.
func play[T any](ctx context.Context, script *sequencer.Script[T], initial T, describe func(T) string, opts playOptions) error {
	logger := logging.Component("play")
	seq := sequencer.New[T](script.Name(), opts.seqOpts...)
	defer seq.Stop()

	done := make(chan struct{})
	var (
		once    sync.Once
		encErr  error
		errOnce sync.Once
	)
	finish := func() { once.Do(func() { close(done) }) }

	seq.Subscribe(func(snap sequencer.Snapshot[T]) {
		if opts.cycles > 0 && snap.Generation > uint64(opts.cycles) {
			finish()
			return
		}
		if snap.Kind == sequencer.KindRamp && !opts.ramps {
			return
		}
		if opts.json {
			err := opts.out.Encode(playEvent{
				Demo:       script.Name(),
				RunID:      snap.RunID,
				Generation: snap.Generation,
				Step:       snap.Step,
				Phase:      snap.Phase,
				Kind:       snap.Kind,
				RampTick:   snap.RampTick,
				At:         snap.At,
				State:      snap.State,
			})
			if err != nil {
				errOnce.Do(func() { encErr = err })
				finish()
			}
			return
		}
		opts.out.Println(formatSnapshotLine(script.Name(), snap.Generation, snap.Step, snap.Phase, snap.Kind, describe(snap.State)))
	})

	handle, err := seq.Start(ctx, script, initial)
	if err != nil {
		return fmt.Errorf("start %s: %w", script.Name(), err)
	}
	logger.Info().
		Str("demo", script.Name()).
		Str("run_id", handle.ID).
		Int("cycles", opts.cycles).
		Dur("cycle", script.CycleDuration()).
		Msg("playing")

	select {
	case <-done:
	case <-ctx.Done():
	}
	seq.Stop()

	stats := seq.Stats()
	logger.Info().
		Str("demo", script.Name()).
		Int64("cycles", stats.Cycles).
		Int64("published", stats.Published).
		Msg("playback finished")
	return encErr
}

func formatSnapshotLine(demo string, generation uint64, step int, phase string, kind sequencer.Kind, detail string) string {
	stepLabel := "-"
	if step >= 0 {
		stepLabel = fmt.Sprintf("%d", step+1)
	}
	line := fmt.Sprintf("[%s] gen=%d step=%s %s %s", demo, generation, stepLabel, formatKind(kind), formatPhase(phase))
	if detail != "" {
		line += "  " + detail
	}
	return line
}

func describeScreening(s demos.ScreeningState) string {
	parts := make([]string, 0, len(s.Cards)+1)
	for _, card := range s.Cards {
		label := card.Candidate.Name
		if card.Scored() {
			label += fmt.Sprintf(" %d%%", card.Score)
		}
		if s.Scanning(card.Candidate.ID) {
			label = "*" + label
		}
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		return "no candidates"
	}
	return strings.Join(parts, ", ")
}

func describeInterview(s demos.InterviewState) string {
	detail := fmt.Sprintf("messages=%d", len(s.Messages))
	if s.Sentiment > 0 {
		detail += fmt.Sprintf(" sentiment=%d%%", s.Sentiment)
	}
	if n := len(s.Messages); n > 0 {
		last := s.Messages[n-1]
		detail += fmt.Sprintf(" last=%s: %q", last.Speaker, last.Text)
	}
	return detail
}
