package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// DocumentRow is one line of a document listing.
type DocumentRow struct {
	Date      string
	Permalink string
	Title     string
}

// RenderDocuments lays rows out in three columns (date, permalink, title)
// sized to the display width. The title column absorbs the remaining space.
func RenderDocuments(display *DisplayContext, rows []DocumentRow) string {
	if len(rows) == 0 {
		return ""
	}

	dateWidth, linkWidth := 0, 0
	data := make([][]string, len(rows))
	for i, row := range rows {
		dateWidth = max(dateWidth, lipgloss.Width(row.Date))
		linkWidth = max(linkWidth, lipgloss.Width(row.Permalink))
		data[i] = []string{row.Date, row.Permalink, row.Title}
	}

	const leftMargin, padding = 2, 2
	linkWidth = min(linkWidth, display.AvailableWidth(leftMargin)/2)
	titleWidth := display.AvailableWidth(leftMargin) - dateWidth - linkWidth - 2*padding
	for i := range data {
		data[i][1] = TruncateWithEllipsis(data[i][1], linkWidth)
		data[i][2] = TruncateWithEllipsis(data[i][2], max(titleWidth, 8))
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
			// Width includes padding, so the text area stays at the
			// column's widest value.
			switch col {
			case 0:
				return Muted.Width(dateWidth + padding).PaddingRight(padding)
			case 1:
				return Accent.Width(linkWidth + padding).PaddingRight(padding)
			}
			return lipgloss.NewStyle()
		}).
		Rows(data...)

	return tbl.Render()
}

// TruncateWithEllipsis truncates s to maxLen runes, adding "..." if needed.
func TruncateWithEllipsis(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return strings.TrimRight(string(runes[:maxLen-3]), " ") + "..."
}
