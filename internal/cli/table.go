package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableGap = "  "

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

// column is a table header. Numeric columns are right aligned.
type column struct {
	Header string
	Align  alignment
}

// writeTable renders rows under cols. Widths are measured in terminal cells,
// so colored cells line up. The last column is never padded on the right.
func writeTable(out io.Writer, cols []column, rows [][]string) error {
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = lipgloss.Width(col.Header)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(cols); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	headers := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
	}
	if err := writeTableRow(out, cols, widths, headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeTableRow(out, cols, widths, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTableRow(out io.Writer, cols []column, widths []int, cells []string) error {
	var b strings.Builder
	for i, col := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		last := i == len(cols)-1
		switch {
		case col.Align == alignRight:
			b.WriteString(pad + cell)
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + pad)
		}
		if !last {
			b.WriteString(tableGap)
		}
	}
	_, err := fmt.Fprintln(out, b.String())
	return err
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
