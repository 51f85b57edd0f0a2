package demos

import (
	"fmt"
	"sort"
	"time"

	"github.com/hirepath/showcase/internal/sequencer"
)

// Screening phases.
const (
	PhaseIdle      = "idle"
	PhaseAppearing = "appearing"
	PhaseScanning  = "scanning"
	PhaseRanked    = "ranked"
)

// TopMatchScore is the lowest score that earns the top match badge.
const TopMatchScore = 90

// Tier buckets a score for display.
type Tier int

const (
	TierFair Tier = iota
	TierStrong
	TierTop
)

// ScoreTier returns the display tier of a score.
func ScoreTier(score int) Tier {
	switch {
	case score >= TopMatchScore:
		return TierTop
	case score >= 80:
		return TierStrong
	default:
		return TierFair
	}
}

// ScreeningTiming holds the screening demo holds.
type ScreeningTiming struct {
	Reveal    time.Duration // before each candidate appears
	Settle    time.Duration // between the last reveal and the first scan
	Scan      time.Duration // highlight before the score ramps
	Hold      time.Duration // after each score
	LoopPause time.Duration
}

// DefaultScreeningTiming returns the stock screening timings.
func DefaultScreeningTiming() ScreeningTiming {
	return ScreeningTiming{
		Reveal:    500 * time.Millisecond,
		Settle:    500 * time.Millisecond,
		Scan:      800 * time.Millisecond,
		Hold:      400 * time.Millisecond,
		LoopPause: 4 * time.Second,
	}
}

// Card is a revealed candidate and the score shown for it so far.
type Card struct {
	Candidate Candidate `json:"candidate"`
	Score     int       `json:"score"`
}

// Scored reports whether a score is showing.
func (c Card) Scored() bool { return c.Score > 0 }

// ScreeningState is the resume screening snapshot. The zero value is the
// reset state.
type ScreeningState struct {
	Cards []Card `json:"cards"`

	// Highlight is the ID of the candidate under scan, 0 when none.
	Highlight int `json:"highlight,omitempty"`
}

// Scanning reports whether candidate id is highlighted.
func (s ScreeningState) Scanning(id int) bool {
	return id != 0 && s.Highlight == id
}

// Card returns the card for candidate id.
func (s ScreeningState) Card(id int) (Card, bool) {
	for _, card := range s.Cards {
		if card.Candidate.ID == id {
			return card, true
		}
	}
	return Card{}, false
}

// Ranked returns the cards ordered by score, highest first.
func (s ScreeningState) Ranked() []Card {
	out := append([]Card(nil), s.Cards...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// ScreeningScript builds the looping screening script for candidates.
func ScreeningScript(candidates []Candidate, timing ScreeningTiming) (*sequencer.Script[ScreeningState], error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("screening: %w", sequencer.ErrEmptyScript)
	}

	steps := make([]sequencer.Step[ScreeningState], 0, 2*len(candidates)+1)
	for _, c := range candidates {
		steps = append(steps, sequencer.Step[ScreeningState]{
			Phase: PhaseAppearing,
			Hold:  timing.Reveal,
			Apply: reveal(c),
		})
	}
	for i, c := range candidates {
		hold := timing.Hold
		if i == 0 {
			hold = timing.Settle
		}
		steps = append(steps, sequencer.Step[ScreeningState]{
			Phase: PhaseScanning,
			Hold:  hold,
			Apply: highlight(c.ID),
			Ramp: &sequencer.Ramp[ScreeningState]{
				Get:    scoreOf(c.ID),
				Set:    setScore(c.ID),
				Target: float64(c.Score),
				Delay:  timing.Scan,
			},
		})
	}
	steps = append(steps, sequencer.Step[ScreeningState]{
		Phase: PhaseRanked,
		Hold:  timing.Hold,
		Apply: highlight(0),
	})

	return sequencer.NewScript(sequencer.Definition[ScreeningState]{
		Name:       "screening",
		ResetPhase: PhaseIdle,
		LoopPause:  timing.LoopPause,
		Steps:      steps,
	})
}

func reveal(c Candidate) func(ScreeningState) ScreeningState {
	return func(s ScreeningState) ScreeningState {
		cards := make([]Card, len(s.Cards), len(s.Cards)+1)
		copy(cards, s.Cards)
		s.Cards = append(cards, Card{Candidate: c})
		return s
	}
}

func highlight(id int) func(ScreeningState) ScreeningState {
	return func(s ScreeningState) ScreeningState {
		s.Highlight = id
		return s
	}
}

func scoreOf(id int) func(ScreeningState) float64 {
	return func(s ScreeningState) float64 {
		card, _ := s.Card(id)
		return float64(card.Score)
	}
}

func setScore(id int) func(ScreeningState, int) ScreeningState {
	return func(s ScreeningState, score int) ScreeningState {
		cards := make([]Card, len(s.Cards))
		copy(cards, s.Cards)
		for i := range cards {
			if cards[i].Candidate.ID == id {
				cards[i].Score = score
			}
		}
		s.Cards = cards
		return s
	}
}
