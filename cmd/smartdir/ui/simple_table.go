package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMaxCellWidth caps a column so one long message cannot push the
// rest of the table off screen.
const DefaultMaxCellWidth = 48

// SimpleTable renders records as static text for the CLI subcommands.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// Empty is shown in place of the rows when there are none.
	Empty string
	// MaxCellWidth truncates wider cells; zero disables the cap.
	MaxCellWidth int
	// Count appends "N registros" under the rows.
	Count bool
}

func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:        title,
		Headers:      headers,
		MaxCellWidth: DefaultMaxCellWidth,
	}
}

// AddRow appends a row. Missing cells render blank, extra cells are dropped.
func (t *SimpleTable) AddRow(cells ...string) {
	row := make([]string, len(t.Headers))
	copy(row, cells)
	for i := range row {
		row[i] = Truncate(row[i], t.MaxCellWidth)
	}
	t.Rows = append(t.Rows, row)
}

func (t *SimpleTable) widths() []int {
	w := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		w[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			w[i] = max(w[i], lipgloss.Width(cell))
		}
	}
	return w
}

func (t *SimpleTable) line(cells []string, widths []int, cell, sep lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		// +2 for the one-cell padding on each side
		parts[i] = cell.Width(widths[i] + 2).Render(c)
	}
	return strings.Join(parts, sep.Render("|"))
}

// View renders the table with styles.
func (t *SimpleTable) View(styles Styles) string {
	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title) + "\n")
	}

	widths := t.widths()
	header := t.line(t.Headers, widths, styles.Bold.Padding(0, 1), styles.Muted)
	sb.WriteString(header + "\n")
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", max(lipgloss.Width(header), 1))) + "\n")

	if len(t.Rows) == 0 {
		if t.Empty != "" {
			sb.WriteString(styles.Placeholder.Render(t.Empty) + "\n")
		}
		return sb.String()
	}

	body := styles.Body.Padding(0, 1)
	for _, row := range t.Rows {
		sb.WriteString(t.line(row, widths, body, styles.Muted) + "\n")
	}
	if t.Count {
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("%d registros", len(t.Rows))) + "\n")
	}
	return sb.String()
}

// Truncate shortens s to width cells, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
