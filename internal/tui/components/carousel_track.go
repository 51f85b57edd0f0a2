package components

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hirepath/showcase/internal/carousel"
	"github.com/hirepath/showcase/internal/demos"
	"github.com/hirepath/showcase/internal/tui/styles"
)

const (
	trackCardWidth  = 22
	trackCardHeight = 4
	minTrackWidth   = 40
)

// RenderTrack paints the timeline cards onto a single strip. Cards are
// painted in ascending stack order so nearer cards cover farther ones.
// projections and steps are matched by projection index.
func RenderTrack(styleSet styles.Styles, projections []carousel.Projection, steps []demos.TimelineStep, width int) string {
	if width < minTrackWidth {
		width = minTrackWidth
	}
	if len(projections) == 0 || len(steps) == 0 {
		return EmptyTimeline().RenderCompact(styleSet)
	}

	ordered := append([]carousel.Projection(nil), projections...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StackOrder < ordered[j].StackOrder
	})

	canvas := newCanvas(width, trackCardHeight)
	for _, p := range ordered {
		if p.Index < 0 || p.Index >= len(steps) {
			continue
		}
		canvas.paint(p, steps[p.Index])
	}
	return canvas.render(styleSet)
}

type canvas struct {
	width  int
	cells  [][]rune
	owners [][]*carousel.Projection
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width}
	c.cells = make([][]rune, height)
	c.owners = make([][]*carousel.Projection, height)
	for row := range c.cells {
		c.cells[row] = []rune(strings.Repeat(" ", width))
		c.owners[row] = make([]*carousel.Projection, width)
	}
	return c
}

// cardColumn maps the projected X in [-r, r] to the left column of a card.
func (c *canvas) cardColumn(p carousel.Projection, cardWidth int) int {
	r := math.Hypot(p.X, p.Z)
	center := float64(c.width-1) / 2
	if r > 0 {
		center += p.X / r * (float64(c.width-cardWidth) / 2)
	}
	return int(math.Round(center)) - cardWidth/2
}

func (c *canvas) paint(p carousel.Projection, step demos.TimelineStep) {
	cardWidth := int(math.Round(trackCardWidth * p.Scale))
	if cardWidth < 8 {
		cardWidth = 8
	}
	inner := cardWidth - 2
	left := c.cardColumn(p, cardWidth)

	lines := []string{
		"┌" + strings.Repeat("─", inner) + "┐",
		"│" + pad(fmt.Sprintf("%02d %s", step.Step, step.Title), inner) + "│",
		"│" + pad(step.Desc, inner) + "│",
		"└" + strings.Repeat("─", inner) + "┘",
	}

	owner := p
	for row, line := range lines {
		for i, r := range []rune(line) {
			col := left + i
			if col < 0 || col >= c.width {
				continue
			}
			c.cells[row][col] = r
			c.owners[row][col] = &owner
		}
	}
}

// render styles each run of cells by the card that owns it.
func (c *canvas) render(styleSet styles.Styles) string {
	rows := make([]string, len(c.cells))
	for row := range c.cells {
		var b strings.Builder
		start := 0
		for col := 1; col <= c.width; col++ {
			if col < c.width && c.owners[row][col] == c.owners[row][start] {
				continue
			}
			segment := string(c.cells[row][start:col])
			b.WriteString(cardStyle(styleSet, c.owners[row][start]).Render(segment))
			start = col
		}
		rows[row] = b.String()
	}
	return strings.Join(rows, "\n")
}

func cardStyle(styleSet styles.Styles, p *carousel.Projection) lipgloss.Style {
	switch {
	case p == nil:
		return lipgloss.NewStyle()
	case p.Focused:
		return styleSet.Focus
	case p.Opacity >= 0.6:
		return styleSet.Text
	default:
		return styleSet.Muted
	}
}

func pad(s string, width int) string {
	s = truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}
