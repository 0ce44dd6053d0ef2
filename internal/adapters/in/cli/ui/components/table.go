package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bnema/citybike/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/citybike/internal/domain"
)

// TableColumn defines a table column. A zero Width leaves the column unbounded.
type TableColumn struct {
	Title string
	Width int
}

// TableModel is a styled, non-interactive table.
type TableModel struct {
	columns     []TableColumn
	rows        [][]string
	border      lipgloss.Border
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// TableOption configures a TableModel.
type TableOption func(*TableModel)

// NewTable creates a new styled table.
func NewTable(opts ...TableOption) *TableModel {
	t := &TableModel{
		border:      lipgloss.RoundedBorder(),
		borderStyle: styles.Theme.TableBorder,
		headerStyle: styles.Theme.TableHeader,
		cellStyle:   styles.Theme.TableCell,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithColumns sets the table columns.
func WithColumns(cols []TableColumn) TableOption {
	return func(t *TableModel) {
		t.columns = cols
	}
}

// WithRows sets the table rows.
func WithRows(rows [][]string) TableOption {
	return func(t *TableModel) {
		t.rows = rows
	}
}

// WithHeaderStyle sets the header style.
func WithHeaderStyle(s lipgloss.Style) TableOption {
	return func(t *TableModel) {
		t.headerStyle = s
	}
}

// WithCellStyle sets the cell style.
func WithCellStyle(s lipgloss.Style) TableOption {
	return func(t *TableModel) {
		t.cellStyle = s
	}
}

// Render renders the table as a string.
func (t *TableModel) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = Truncate(col.Title, col.Width)
	}

	rows := make([][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		rows[rowIdx] = make([]string, len(row))
		for colIdx, cell := range row {
			width := 0
			if colIdx < len(t.columns) {
				width = t.columns[colIdx].Width
			}
			rows[rowIdx][colIdx] = Truncate(cell, width)
		}
	}

	tbl := table.New().
		Border(t.border).
		BorderStyle(t.borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.cellStyle
			if row == table.HeaderRow {
				s = t.headerStyle
			}
			if col >= 0 && col < len(t.columns) && t.columns[col].Width > 0 {
				w := t.columns[col].Width
				s = s.Width(w).MaxWidth(w)
			}
			return s
		})

	return tbl.String()
}

// NetworksTable renders networks as an ID / Name / Href table.
func NetworksTable(networks []domain.Network) string {
	rows := make([][]string, 0, len(networks))
	for _, n := range networks {
		rows = append(rows, []string{n.ID, n.Name, n.Href})
	}

	return NewTable(
		WithColumns([]TableColumn{
			{Title: "ID", Width: 28},
			{Title: "Name", Width: 36},
			{Title: "Href"},
		}),
		WithRows(rows),
	).Render()
}

// Truncate shortens value to maxWidth terminal cells, ending with "...".
// Values carrying ANSI sequences are returned unchanged.
func Truncate(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}

	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	targetWidth := maxWidth - 3
	b := strings.Builder{}
	currentWidth := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		grapheme := g.Str()
		graphemeWidth := runewidth.StringWidth(grapheme)
		if currentWidth+graphemeWidth > targetWidth {
			break
		}
		b.WriteString(grapheme)
		currentWidth += graphemeWidth
	}

	if b.Len() == 0 {
		return strings.Repeat(".", maxWidth)
	}

	return b.String() + "..."
}
