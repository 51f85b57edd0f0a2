package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hirepath/showcase/internal/tui/styles"
)

// Sidebar widths in layout pixels.
const (
	MinSidebarWidth       = 200
	MaxSidebarWidth       = 500
	DefaultSidebarWidth   = 280
	CollapsedSidebarWidth = 88

	// pixelsPerColumn converts layout pixels to terminal columns.
	pixelsPerColumn = 10
)

// ResizeSidebarWidth returns the width after a drag to requested. Drags
// outside the open interval (MinSidebarWidth, MaxSidebarWidth) are ignored.
func ResizeSidebarWidth(current, requested int) int {
	if requested > MinSidebarWidth && requested < MaxSidebarWidth {
		return requested
	}
	return current
}

// NavItem is one dashboard navigation entry.
type NavItem struct {
	Label string
	Path  string
}

// DashboardItems are the dashboard navigation entries.
func DashboardItems() []NavItem {
	return []NavItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Rounds Manager", Path: "/recruitment/rounds"},
		{Label: "Resume Screening", Path: "/resume-screening"},
		{Label: "Screened Candidates", Path: "/screened-candidates"},
		{Label: "Aptitude Round", Path: "/aptitude-round"},
		{Label: "Coding Round", Path: "/coding-round"},
		{Label: "AI Interview", Path: "/technical-interview"},
		{Label: "All Candidates", Path: "/candidates"},
	}
}

// Sidebar is the collapsible dashboard navigation.
type Sidebar struct {
	Items  []NavItem
	Active int
	Open   bool
	Width  int // pixels when open
}

// NewSidebar returns an open sidebar over the dashboard items.
func NewSidebar() Sidebar {
	return Sidebar{
		Items: DashboardItems(),
		Open:  true,
		Width: DefaultSidebarWidth,
	}
}

// Toggle opens or collapses the sidebar.
func (s *Sidebar) Toggle() {
	s.Open = !s.Open
}

// Resize applies a drag to width pixels.
func (s *Sidebar) Resize(width int) {
	s.Width = ResizeSidebarWidth(s.Width, width)
}

// Move shifts the active item by delta, wrapping around.
func (s *Sidebar) Move(delta int) {
	n := len(s.Items)
	if n == 0 {
		return
	}
	s.Active = ((s.Active+delta)%n + n) % n
}

// Selected returns the active item.
func (s Sidebar) Selected() (NavItem, bool) {
	if s.Active < 0 || s.Active >= len(s.Items) {
		return NavItem{}, false
	}
	return s.Items[s.Active], true
}

// Columns returns the rendered width in terminal columns.
func (s Sidebar) Columns() int {
	if !s.Open {
		return CollapsedSidebarWidth / pixelsPerColumn
	}
	width := s.Width
	if width == 0 {
		width = DefaultSidebarWidth
	}
	return width / pixelsPerColumn
}

// Render draws the sidebar. Collapsed, it shows only item initials.
func (s Sidebar) Render(styleSet styles.Styles, height int) string {
	columns := s.Columns()
	lines := make([]string, 0, len(s.Items))
	for i, item := range s.Items {
		label := item.Label
		if !s.Open && label != "" {
			label = string([]rune(label)[0])
		}
		label = truncate(label, columns-4)
		if i == s.Active {
			lines = append(lines, styleSet.Focus.Render("> "+label))
		} else {
			lines = append(lines, styleSet.Muted.Render("  "+label))
		}
	}

	style := lipgloss.NewStyle().
		Width(columns).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(lipgloss.Color(styleSet.Theme.Tokens.Border))
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(strings.Join(lines, "\n"))
}
