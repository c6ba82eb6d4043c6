package command

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderTable lays out rows as display-width-aligned columns. Width-aware
// padding keeps columns straight when names contain wide runes.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if i < len(cells)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	underline := make([]string, len(headers))
	for i := range headers {
		underline[i] = strings.Repeat("-", widths[i])
	}
	writeRow(underline)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// renderHandlerView renders a key -> owners mapping with keys sorted.
func renderHandlerView(keyHeader string, view map[string][]string, keys []string) string {
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, strings.Join(view[key], ", ")})
	}
	return renderTable([]string{keyHeader, "PARTICIPANTS"}, rows)
}
