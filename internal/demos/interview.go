package demos

import (
	"fmt"
	"time"

	"github.com/hirepath/showcase/internal/sequencer"
)

// Interview phases.
const (
	PhaseListening = "listening"
	PhaseSpeaking  = "speaking"
	PhaseComplete  = "complete"
)

// InterviewTiming holds the interview demo holds.
type InterviewTiming struct {
	Clear         time.Duration // after the reset, before the first line
	AIHold        time.Duration // before an interviewer line appears
	CandidateHold time.Duration // before a candidate line appears
	Tail          time.Duration // after each line
	LoopPause     time.Duration
}

// DefaultInterviewTiming returns the stock interview timings.
func DefaultInterviewTiming() InterviewTiming {
	return InterviewTiming{
		Clear:         time.Second,
		AIHold:        time.Second,
		CandidateHold: 1200 * time.Millisecond,
		Tail:          1200 * time.Millisecond,
		LoopPause:     3 * time.Second,
	}
}

// InterviewState is the interview snapshot. The zero value is the reset
// state.
type InterviewState struct {
	Speaker   Speaker `json:"speaker,omitempty"`
	Messages  []Line  `json:"messages"`
	Sentiment int     `json:"sentiment"`
}

// Analyzed reports whether a sentiment reading is showing.
func (s InterviewState) Analyzed() bool { return s.Sentiment > 0 }

// InterviewScript builds the looping interview script for lines.
func InterviewScript(lines []Line, timing InterviewTiming) (*sequencer.Script[InterviewState], error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("interview: %w", sequencer.ErrEmptyScript)
	}

	steps := make([]sequencer.Step[InterviewState], 0, 2*len(lines)+1)
	for i, line := range lines {
		turn := timing.Tail
		if i == 0 {
			turn = timing.Clear
		}
		phase, hold := PhaseListening, timing.CandidateHold
		if line.Speaker == SpeakerAI {
			phase, hold = PhaseSpeaking, timing.AIHold
		}

		steps = append(steps, sequencer.Step[InterviewState]{
			Phase: phase,
			Hold:  turn,
			Apply: speaker(line.Speaker),
		})

		say := sequencer.Step[InterviewState]{
			Hold:  hold,
			Apply: appendLine(line),
		}
		if line.Sentiment > 0 {
			say.Ramp = &sequencer.Ramp[InterviewState]{
				Get:    func(s InterviewState) float64 { return float64(s.Sentiment) },
				Set:    setSentiment,
				Target: float64(line.Sentiment),
			}
		}
		steps = append(steps, say)
	}
	steps = append(steps, sequencer.Step[InterviewState]{
		Phase: PhaseComplete,
		Hold:  timing.Tail,
		Apply: speaker(""),
	})

	return sequencer.NewScript(sequencer.Definition[InterviewState]{
		Name:       "interview",
		ResetPhase: PhaseListening,
		LoopPause:  timing.LoopPause,
		Steps:      steps,
	})
}

func speaker(who Speaker) func(InterviewState) InterviewState {
	return func(s InterviewState) InterviewState {
		s.Speaker = who
		return s
	}
}

func appendLine(line Line) func(InterviewState) InterviewState {
	return func(s InterviewState) InterviewState {
		messages := make([]Line, len(s.Messages), len(s.Messages)+1)
		copy(messages, s.Messages)
		s.Messages = append(messages, line)
		return s
	}
}

func setSentiment(s InterviewState, value int) InterviewState {
	s.Sentiment = value
	return s
}
