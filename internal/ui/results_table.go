package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Alignment represents column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// ColumnDef defines a column in a ResultsTable.
type ColumnDef struct {
	Name       string         // Column key, used by ContentWidth
	WidthRatio float64        // Share of the flexible width; 0 means fixed at MinWidth
	MinWidth   int            // Minimum width in characters
	MaxWidth   int            // Maximum width (0 = no limit)
	Align      Alignment      // Text alignment
	Style      lipgloss.Style // Style applied to every cell
}

// ResultRow is a single row in the results table.
type ResultRow struct {
	Num   int      // Row number (1-indexed)
	Cells []string // Cell values for each column
}

// ResultsTable renders palette results and tool listings.
type ResultsTable struct {
	display *DisplayContext
	columns []ColumnDef
	rows    []ResultRow
}

const columnGap = 2

var (
	// ColNum is the row number column.
	ColNum = ColumnDef{Name: "num", MinWidth: 3, Align: AlignRight, Style: Muted}

	// ColMark holds the favorite star.
	ColMark = ColumnDef{Name: "mark", MinWidth: 1}

	// ColTool is the tool name, highlighted for palette matches.
	ColTool = ColumnDef{Name: "tool", WidthRatio: 0.30, MinWidth: 16, MaxWidth: 28}

	// ColCategory is the catalog category.
	ColCategory = ColumnDef{Name: "category", MinWidth: 10, Style: Muted}

	// ColDescription is the tool description.
	ColDescription = ColumnDef{Name: "description", WidthRatio: 0.70, MinWidth: 20, MaxWidth: 80, Style: Muted}

	// ColScore is the fuzzy score.
	ColScore = ColumnDef{Name: "score", MinWidth: 5, Align: AlignRight, Style: Muted}
)

// Standard layouts.
var (
	// PaletteLayout is used for search results.
	PaletteLayout = []ColumnDef{ColNum, ColMark, ColTool, ColDescription, ColScore}

	// ToolListLayout is used by list and favorites output.
	ToolListLayout = []ColumnDef{ColMark, ColTool, ColCategory, ColDescription}
)

// NewResultsTable creates a new ResultsTable with the given display context and column layout.
func NewResultsTable(display *DisplayContext, columns []ColumnDef) *ResultsTable {
	return &ResultsTable{
		display: display,
		columns: columns,
		rows:    make([]ResultRow, 0),
	}
}

// AddRow adds a row to the table.
func (t *ResultsTable) AddRow(row ResultRow) {
	t.rows = append(t.rows, row)
}

// ContentWidth returns the computed width of the named column so callers can
// truncate text before styling it.
func (t *ResultsTable) ContentWidth(columnName string) int {
	widths := t.calculateWidths()
	for i, col := range t.columns {
		if col.Name == columnName {
			return widths[i]
		}
	}
	return 40
}

func (t *ResultsTable) calculateWidths() []int {
	widths := make([]int, len(t.columns))

	var totalRatio float64
	fixed := 0
	for i, col := range t.columns {
		if col.WidthRatio == 0 {
			widths[i] = col.MinWidth
			fixed += widths[i]
			continue
		}
		totalRatio += col.WidthRatio
	}

	leftMargin := 2
	available := t.display.TermWidth - fixed - (len(t.columns)-1)*columnGap - leftMargin
	if available < 0 {
		available = 0
	}

	for i, col := range t.columns {
		if col.WidthRatio == 0 {
			continue
		}
		width := int(float64(available) * col.WidthRatio / totalRatio)
		if width < col.MinWidth {
			width = col.MinWidth
		}
		if col.MaxWidth > 0 && width > col.MaxWidth {
			width = col.MaxWidth
		}
		widths[i] = width
	}

	return widths
}

// Render generates the table output as a string.
func (t *ResultsTable) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := t.calculateWidths()

	tableRows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(t.columns))
		for j, col := range t.columns {
			switch {
			case col.Name == "num":
				cells[j] = fmt.Sprintf("%d", row.Num)
			case j < len(row.Cells):
				cells[j] = row.Cells[j]
			}
		}
		tableRows[i] = cells
	}

	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderRow(false).
		BorderColumn(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col >= len(t.columns) {
				return lipgloss.NewStyle()
			}
			def := t.columns[col]
			style := def.Style.Width(widths[col])
			if def.Align == AlignRight {
				style = style.Align(lipgloss.Right)
			} else {
				style = style.Align(lipgloss.Left)
			}
			if col < len(t.columns)-1 {
				style = style.PaddingRight(columnGap)
			}
			return style
		}).
		Rows(tableRows...)

	return tbl.Render()
}

// TruncateWithEllipsis shortens s to at most maxLen runes, preferring a word
// boundary in the second half and ending with "...".
func TruncateWithEllipsis(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	truncated := string(runes[:maxLen-3])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}
