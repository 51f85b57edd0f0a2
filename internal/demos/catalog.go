package demos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContentNotFound is returned when no content matches a lookup.
var ErrContentNotFound = errors.New("demo content not found")

// Catalog indexes loaded content by name. The first content added under a
// name wins.
type Catalog struct {
	byName map[string]*Content
	order  []*Content
}

func (c *Catalog) add(content *Content) {
	key := strings.ToLower(content.Name)
	if _, exists := c.byName[key]; exists {
		return
	}
	c.byName[key] = content
	c.order = append(c.order, content)
}

// All returns every content entry sorted by name.
func (c *Catalog) All() []*Content {
	out := make([]*Content, len(c.order))
	copy(out, c.order)
	sortContents(out)
	return out
}

// Find looks content up by name, case-insensitively.
func (c *Catalog) Find(name string) (*Content, error) {
	content, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, name)
	}
	return content, nil
}

// Kind returns the first content of the given kind, by name order.
func (c *Catalog) Kind(kind Kind) (*Content, error) {
	for _, content := range c.All() {
		if content.Kind == kind {
			return content, nil
		}
	}
	return nil, fmt.Errorf("%w: kind %s", ErrContentNotFound, kind)
}

// Candidates returns the screening candidates.
func (c *Catalog) Candidates() ([]Candidate, error) {
	content, err := c.Kind(KindScreening)
	if err != nil {
		return nil, err
	}
	return append([]Candidate(nil), content.Candidates...), nil
}

// Conversation returns the interview transcript.
func (c *Catalog) Conversation() ([]Line, error) {
	content, err := c.Kind(KindInterview)
	if err != nil {
		return nil, err
	}
	return append([]Line(nil), content.Lines...), nil
}

// Timeline returns the carousel steps.
func (c *Catalog) Timeline() ([]TimelineStep, error) {
	content, err := c.Kind(KindTimeline)
	if err != nil {
		return nil, err
	}
	return append([]TimelineStep(nil), content.Steps...), nil
}

// Features returns the marquee features.
func (c *Catalog) Features() ([]string, error) {
	content, err := c.Kind(KindMarquee)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), content.Features...), nil
}
