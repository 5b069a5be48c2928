// Package tui provides the terminal user interface for tablero.
package tui

import (
	"sort"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/task"
	"github.com/javiermolinar/tablero/internal/tui/view"
)

// Board geometry, in terminal cells.
const (
	headerLines     = 2
	columnHeadLines = 2
	columnGap       = 1
	minColumnWidth  = 12
)

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Overlap returns the number of cells r shares with o.
func (r Rect) Overlap(o Rect) int {
	if r.Empty() || o.Empty() {
		return 0
	}
	w := min(r.X+r.W, o.X+o.W) - max(r.X, o.X)
	h := min(r.Y+r.H, o.Y+o.H) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CardRegion is where one visible card is drawn.
type CardRegion struct {
	ID     string
	Status task.Status
	Index  int // position in the column
	Rect   Rect
}

// ColumnRegion is where one status column is drawn.
type ColumnRegion struct {
	Status task.Status
	Rect   Rect
	Cards  []CardRegion
	Offset int // index of the first visible card
	Total  int
}

// Hidden returns how many cards are scrolled out above and below.
func (c ColumnRegion) Hidden() (above, below int) {
	return c.Offset, max(0, c.Total-c.Offset-len(c.Cards))
}

// Layout maps the displayed board onto the screen. It is rebuilt whenever
// the displayed view, the scroll offsets or the window size change, and it
// is what pointer input is tested against.
type Layout struct {
	Width, Height int
	ColW          int
	BodyH         int
	Visible       int // cards that fit in a column
	Columns       []ColumnRegion
}

// computeLayout places every column of v and its visible cards.
// Offsets are clamped so a column never scrolls past its last card.
func computeLayout(v board.View, width, height int, offsets []int) Layout {
	statuses := task.Statuses()
	n := len(statuses)

	colW := max(minColumnWidth, (width-columnGap*(n-1))/n)
	bodyH := max(0, height-headerLines-view.FooterLines)
	visible := max(0, (bodyH-columnHeadLines)/view.CardHeight)

	l := Layout{Width: width, Height: height, ColW: colW, BodyH: bodyH, Visible: visible}
	for i, status := range statuses {
		col := ColumnRegion{
			Status: status,
			Rect:   Rect{X: i * (colW + columnGap), Y: headerLines, W: colW, H: bodyH},
			Total:  v.Len(status),
		}
		if i < len(offsets) {
			col.Offset = clampOffset(offsets[i], col.Total, visible)
		}

		y := headerLines + columnHeadLines
		for idx := col.Offset; idx < col.Total && len(col.Cards) < visible; idx++ {
			t, _ := v.At(status, idx)
			col.Cards = append(col.Cards, CardRegion{
				ID:     t.ID,
				Status: status,
				Index:  idx,
				Rect:   Rect{X: col.Rect.X, Y: y, W: colW, H: view.CardHeight},
			})
			y += view.CardHeight
		}
		l.Columns = append(l.Columns, col)
	}
	return l
}

func clampOffset(offset, total, visible int) int {
	return max(0, min(offset, total-visible))
}

// ColumnAt returns the index of the column under (x, y).
func (l Layout) ColumnAt(x, y int) (int, bool) {
	for i, col := range l.Columns {
		if col.Rect.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// CardAt returns the visible card under (x, y).
func (l Layout) CardAt(x, y int) (CardRegion, bool) {
	for _, col := range l.Columns {
		for _, c := range col.Cards {
			if c.Rect.Contains(x, y) {
				return c, true
			}
		}
	}
	return CardRegion{}, false
}

// CardRect returns where the card with id is drawn, if visible.
func (l Layout) CardRect(id string) (Rect, bool) {
	for _, col := range l.Columns {
		for _, c := range col.Cards {
			if c.ID == id {
				return c.Rect, true
			}
		}
	}
	return Rect{}, false
}

// Collisions lists the droppable regions hit by a pointer at (x, y) that
// drags a card occupying box. Pointer hits come first. Box hits follow,
// largest overlap first.
func (l Layout) Collisions(x, y int, box Rect) []board.Collision {
	var hits []board.Collision
	for _, col := range l.Columns {
		for _, c := range col.Cards {
			if c.Rect.Contains(x, y) {
				hits = append(hits, board.Collision{ID: c.ID, Kind: board.HitPointer})
			}
		}
	}
	for _, col := range l.Columns {
		if col.Rect.Contains(x, y) {
			hits = append(hits, board.Collision{ID: board.ColumnID(col.Status), Kind: board.HitPointer})
		}
	}

	type boxHit struct {
		hit     board.Collision
		overlap int
	}
	var boxed []boxHit
	for _, col := range l.Columns {
		for _, c := range col.Cards {
			if o := c.Rect.Overlap(box); o > 0 {
				boxed = append(boxed, boxHit{board.Collision{ID: c.ID, Kind: board.HitRect}, o})
			}
		}
		if o := col.Rect.Overlap(box); o > 0 {
			boxed = append(boxed, boxHit{board.Collision{ID: board.ColumnID(col.Status), Kind: board.HitRect}, o})
		}
	}
	sort.SliceStable(boxed, func(i, j int) bool { return boxed[i].overlap > boxed[j].overlap })
	for _, b := range boxed {
		hits = append(hits, b.hit)
	}
	return hits
}
