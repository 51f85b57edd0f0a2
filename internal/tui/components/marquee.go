package components

import (
	"strings"

	"github.com/hirepath/showcase/internal/tui/styles"
)

const marqueeSeparator = "  ◆  "

// Marquee scrolls a list of features across a fixed width.
type Marquee struct {
	Items  []string
	Offset int
}

// NewMarquee creates a marquee over items.
func NewMarquee(items []string) Marquee {
	return Marquee{Items: append([]string(nil), items...)}
}

func (m Marquee) strip() []rune {
	if len(m.Items) == 0 {
		return nil
	}
	return []rune(strings.Join(m.Items, marqueeSeparator) + marqueeSeparator)
}

// Advance moves the marquee one column, wrapping after a full pass.
func (m *Marquee) Advance() {
	n := len(m.strip())
	if n == 0 {
		return
	}
	m.Offset = (m.Offset + 1) % n
}

// Window returns the visible text for width columns. The list is doubled
// (or repeated further for wide terminals) so the window never runs dry.
func (m Marquee) Window(width int) string {
	strip := m.strip()
	if len(strip) == 0 || width <= 0 {
		return ""
	}

	copies := 2
	for copies*len(strip) < width+len(strip) {
		copies++
	}
	looped := make([]rune, 0, copies*len(strip))
	for i := 0; i < copies; i++ {
		looped = append(looped, strip...)
	}

	start := m.Offset % len(strip)
	return string(looped[start : start+width])
}

// Render draws the visible window.
func (m Marquee) Render(styleSet styles.Styles, width int) string {
	return styleSet.Accent.Render(m.Window(width))
}
