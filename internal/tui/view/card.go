package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CardHeight is the number of lines a rendered card takes: two text lines
// inside a border.
const CardHeight = 4

// CardViewState holds the content and styles of one card.
type CardViewState struct {
	Width int // outer width, border included
	Mark  string
	Title string
	Meta  string

	Style      lipgloss.Style // border, padding and background
	MarkStyle  lipgloss.Style
	TitleStyle lipgloss.Style
	MetaStyle  lipgloss.Style
}

// RenderCard renders a card as exactly CardHeight lines of Width cells.
func RenderCard(s CardViewState) string {
	inner := max(0, s.Width-2)
	contentW := max(0, inner-s.Style.GetHorizontalPadding())

	bg := s.Style.GetBackground()
	markStyle := s.MarkStyle.Background(bg)
	titleStyle := s.TitleStyle.Background(bg)
	metaStyle := s.MetaStyle.Background(bg)

	mark := Truncate(s.Mark, contentW)
	title := Truncate(s.Title, contentW-lipgloss.Width(mark))
	meta := Truncate(s.Meta, contentW)

	body := markStyle.Render(mark) + titleStyle.Render(title) + "\n" + metaStyle.Render(meta)
	out := s.Style.
		Width(inner).
		Height(CardHeight - 2).
		MaxHeight(CardHeight).
		Render(body)

	lines := strings.Split(out, "\n")
	for len(lines) < CardHeight {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = FitLine(lines[i], s.Width)
	}
	return strings.Join(lines[:CardHeight], "\n")
}
