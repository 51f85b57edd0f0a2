// Package demos holds the scripted demo content and the sequencer scripts
// built from it.
package demos

import (
	"fmt"
	"strings"
)

// Kind identifies what a content file describes.
type Kind string

const (
	KindScreening Kind = "screening"
	KindInterview Kind = "interview"
	KindTimeline  Kind = "timeline"
	KindMarquee   Kind = "marquee"
)

// Speaker identifies who says a transcript line.
type Speaker string

const (
	SpeakerAI        Speaker = "ai"
	SpeakerCandidate Speaker = "candidate"
)

// Content is one demo content file.
type Content struct {
	Name        string         `yaml:"name" json:"name"`
	Kind        Kind           `yaml:"kind" json:"kind"`
	Title       string         `yaml:"title" json:"title"`
	Subtitle    string         `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Candidates  []Candidate    `yaml:"candidates,omitempty" json:"candidates,omitempty"`
	Lines       []Line         `yaml:"lines,omitempty" json:"lines,omitempty"`
	Steps       []TimelineStep `yaml:"steps,omitempty" json:"steps,omitempty"`
	Features    []string       `yaml:"features,omitempty" json:"features,omitempty"`
	Analysis    []string       `yaml:"analysis,omitempty" json:"analysis,omitempty"`
	Source      string         `yaml:"-" json:"source,omitempty"` // file path or "builtin"
}

// Candidate is a resume shown in the screening demo.
type Candidate struct {
	ID     int      `yaml:"id" json:"id"`
	Name   string   `yaml:"name" json:"name"`
	Role   string   `yaml:"role" json:"role"`
	Score  int      `yaml:"score" json:"score"`
	Skills []string `yaml:"skills,omitempty" json:"skills,omitempty"`
}

// Line is one transcript line of the interview demo.
type Line struct {
	ID        int     `yaml:"id" json:"id"`
	Speaker   Speaker `yaml:"speaker" json:"speaker"`
	Text      string  `yaml:"text" json:"text"`
	Sentiment int     `yaml:"sentiment,omitempty" json:"sentiment,omitempty"`
}

// TimelineStep is one card of the rotating step timeline.
type TimelineStep struct {
	Step  int    `yaml:"step" json:"step"`
	Title string `yaml:"title" json:"title"`
	Desc  string `yaml:"desc" json:"desc"`
}

// Initial returns the first letter of the candidate name, used as avatar.
func (c Candidate) Initial() string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

func normalizeContent(c *Content) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("content name is required")
	}
	c.Kind = Kind(strings.ToLower(strings.TrimSpace(string(c.Kind))))
	c.Title = strings.TrimSpace(c.Title)
	c.Subtitle = strings.TrimSpace(c.Subtitle)
	c.Description = strings.TrimSpace(c.Description)

	switch c.Kind {
	case KindScreening:
		return normalizeCandidates(c.Candidates)
	case KindInterview:
		return normalizeLines(c.Lines)
	case KindTimeline:
		if len(c.Steps) == 0 {
			return fmt.Errorf("timeline steps are required")
		}
		for i := range c.Steps {
			c.Steps[i].Title = strings.TrimSpace(c.Steps[i].Title)
			if c.Steps[i].Title == "" {
				return fmt.Errorf("timeline step %d: title is required", i+1)
			}
			if c.Steps[i].Step == 0 {
				c.Steps[i].Step = i + 1
			}
		}
	case KindMarquee:
		if len(c.Features) == 0 {
			return fmt.Errorf("marquee features are required")
		}
	default:
		return fmt.Errorf("unknown content kind %q", c.Kind)
	}
	return nil
}

func normalizeCandidates(candidates []Candidate) error {
	if len(candidates) == 0 {
		return fmt.Errorf("candidates are required")
	}
	ids := make([]*int, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		c.Name = strings.TrimSpace(c.Name)
		c.Role = strings.TrimSpace(c.Role)
		if c.Name == "" {
			return fmt.Errorf("candidate %d: name is required", i+1)
		}
		if c.Score < 0 || c.Score > 100 {
			return fmt.Errorf("candidate %q: score must be between 0 and 100", c.Name)
		}
		ids[i] = &c.ID
	}
	return assignIDs("candidate", ids)
}

// assignIDs rejects duplicate or negative explicit IDs, then gives every
// missing (zero) ID the lowest positive value not already taken.
func assignIDs(what string, ids []*int) error {
	taken := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if *id == 0 {
			continue
		}
		if *id < 0 {
			return fmt.Errorf("%s id %d must be positive", what, *id)
		}
		if _, exists := taken[*id]; exists {
			return fmt.Errorf("duplicate %s id %d", what, *id)
		}
		taken[*id] = struct{}{}
	}

	next := 1
	for _, id := range ids {
		if *id != 0 {
			continue
		}
		for {
			if _, exists := taken[next]; !exists {
				break
			}
			next++
		}
		*id = next
		taken[next] = struct{}{}
	}
	return nil
}

func normalizeLines(lines []Line) error {
	if len(lines) == 0 {
		return fmt.Errorf("transcript lines are required")
	}
	ids := make([]*int, len(lines))
	for i := range lines {
		l := &lines[i]
		l.Speaker = Speaker(strings.ToLower(strings.TrimSpace(string(l.Speaker))))
		l.Text = strings.TrimSpace(l.Text)
		ids[i] = &l.ID
		switch l.Speaker {
		case SpeakerAI, SpeakerCandidate:
		default:
			return fmt.Errorf("line %d: unknown speaker %q", i+1, l.Speaker)
		}
		if l.Text == "" {
			return fmt.Errorf("line %d: text is required", i+1)
		}
		if l.Sentiment < 0 || l.Sentiment > 100 {
			return fmt.Errorf("line %d: sentiment must be between 0 and 100", i+1)
		}
	}
	return assignIDs("line", ids)
}
