package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lays out rows of cells under a set of column headers and renders
// them inside a rounded border. Column widths grow to fit the widest cell.
type Table struct {
	title      string
	headers    []string
	rows       []tableRow
	widths     []int
	hideHeader bool
}

type tableRow struct {
	cells  []string
	active bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// SetTitle sets a centered title spanning all columns.
func (t *Table) SetTitle(title string) {
	t.title = title
}

// HideHeader suppresses the column header row.
func (t *Table) HideHeader() {
	t.hideHeader = true
}

// AddRow appends a plain row.
func (t *Table) AddRow(cells ...string) {
	t.appendRow(cells, false)
}

// AddActiveRow appends a highlighted row, used for the default version.
func (t *Table) AddActiveRow(cells ...string) {
	t.appendRow(cells, true)
}

func (t *Table) appendRow(cells []string, active bool) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
			// lipgloss.Width ignores ANSI escapes when measuring.
			if w := lipgloss.Width(cells[i]); w > t.widths[i] {
				t.widths[i] = w
			}
		}
	}
	t.rows = append(t.rows, tableRow{cells: row, active: active})
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Render returns the table as a bordered string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	initStyles()

	totalWidth := 0
	for _, w := range t.widths {
		totalWidth += w + 2
	}

	var lines []string

	if t.title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Width(totalWidth).
			Align(lipgloss.Center)
		lines = append(lines, titleStyle.Render(t.title))
		lines = append(lines, StyleMuted.Render(strings.Repeat("─", totalWidth)))
	}

	if !t.hideHeader {
		var headerLine string
		for i, h := range t.headers {
			headerLine += StyleTableHeader.Width(t.widths[i] + 2).Render(h)
		}
		lines = append(lines, headerLine)

		var sepLine string
		for i := range t.headers {
			sepLine += StyleMuted.Render(strings.Repeat("─", t.widths[i]+2))
		}
		lines = append(lines, sepLine)
	}

	for _, row := range t.rows {
		var rowLine string
		for i, cell := range row.cells {
			style := StyleTableCell.Width(t.widths[i] + 2)
			if row.active {
				style = style.Foreground(colorSuccess)
			}
			rowLine += style.Render(cell)
		}
		lines = append(lines, rowLine)
	}

	return StyleTableBorder.Render(strings.Join(lines, "\n"))
}
