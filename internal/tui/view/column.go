package view

import "strings"

// ColumnViewState holds the pre-rendered parts of one board column.
type ColumnViewState struct {
	Width  int
	Height int
	Header string   // title line
	Rule   string   // line under the title
	Cards  []string // rendered cards, top to bottom
	Empty  string   // shown when there are no cards
}

// RenderColumn returns the column as Height lines of Width cells each.
func RenderColumn(s ColumnViewState) []string {
	if s.Width <= 0 || s.Height <= 0 {
		return nil
	}

	lines := make([]string, 0, s.Height)
	lines = append(lines, s.Header, s.Rule)
	if len(s.Cards) == 0 && s.Empty != "" {
		lines = append(lines, "", s.Empty)
	}
	for _, card := range s.Cards {
		lines = append(lines, strings.Split(card, "\n")...)
	}

	if len(lines) > s.Height {
		lines = lines[:s.Height]
	}
	for len(lines) < s.Height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = FitLine(lines[i], s.Width)
	}
	return lines
}

// JoinColumns lays columns side by side separated by gap.
func JoinColumns(columns [][]string, gap string) string {
	if len(columns) == 0 {
		return ""
	}
	height := 0
	for _, c := range columns {
		height = max(height, len(c))
	}

	rows := make([]string, height)
	for row := range rows {
		var b strings.Builder
		for i, c := range columns {
			if i > 0 {
				b.WriteString(gap)
			}
			if row < len(c) {
				b.WriteString(c[row])
			}
		}
		rows[row] = b.String()
	}
	return strings.Join(rows, "\n")
}
