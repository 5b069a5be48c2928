package tui

import (
	"fmt"
	"testing"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/task"
)

func sampleView(todo int) board.View {
	tasks := []*task.Task{{ID: "b-0", Status: task.StatusBacklog}}
	for i := range todo {
		tasks = append(tasks, &task.Task{ID: fmt.Sprintf("t-%d", i), Status: task.StatusTodo, Order: i})
	}
	return board.Snapshot(tasks)
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout(sampleView(2), 100, 30, nil)

	if l.ColW != 24 || l.BodyH != 26 || l.Visible != 6 {
		t.Fatalf("geometry = colW %d bodyH %d visible %d", l.ColW, l.BodyH, l.Visible)
	}
	if len(l.Columns) != len(task.Statuses()) {
		t.Fatalf("columns = %d", len(l.Columns))
	}

	todo := l.Columns[1]
	if todo.Rect.X != 25 || len(todo.Cards) != 2 {
		t.Errorf("todo column = %+v", todo)
	}
	if r := todo.Cards[1].Rect; r != (Rect{X: 25, Y: 8, W: 24, H: 4}) {
		t.Errorf("second card rect = %+v", r)
	}
}

func TestComputeLayout_Offsets(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		wantOffset int
		wantFirst  string
		wantAbove  int
		wantBelow  int
	}{
		{name: "top", offset: 0, wantOffset: 0, wantFirst: "t-0", wantAbove: 0, wantBelow: 4},
		{name: "middle", offset: 2, wantOffset: 2, wantFirst: "t-2", wantAbove: 2, wantBelow: 2},
		{name: "clamped to the last page", offset: 9, wantOffset: 4, wantFirst: "t-4", wantAbove: 4, wantBelow: 0},
		{name: "negative", offset: -3, wantOffset: 0, wantFirst: "t-0", wantAbove: 0, wantBelow: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := computeLayout(sampleView(10), 100, 30, []int{0, tt.offset, 0, 0})
			todo := l.Columns[1]
			if todo.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", todo.Offset, tt.wantOffset)
			}
			if todo.Cards[0].ID != tt.wantFirst {
				t.Errorf("first card = %s, want %s", todo.Cards[0].ID, tt.wantFirst)
			}
			if above, below := todo.Hidden(); above != tt.wantAbove || below != tt.wantBelow {
				t.Errorf("hidden = %d/%d, want %d/%d", above, below, tt.wantAbove, tt.wantBelow)
			}
		})
	}
}

func TestLayoutLookups(t *testing.T) {
	l := computeLayout(sampleView(2), 100, 30, nil)

	if c, ok := l.CardAt(30, 9); !ok || c.ID != "t-1" || c.Index != 1 {
		t.Errorf("CardAt = %+v %v", c, ok)
	}
	if _, ok := l.CardAt(24, 5); ok {
		t.Error("the gap between columns has no card")
	}
	if col, ok := l.ColumnAt(80, 20); !ok || col != 3 {
		t.Errorf("ColumnAt = %d %v, want 3", col, ok)
	}
	if _, ok := l.ColumnAt(10, 0); ok {
		t.Error("the header is not a column")
	}
}

func TestCollisions(t *testing.T) {
	l := computeLayout(sampleView(2), 100, 30, nil)

	tests := []struct {
		name  string
		x, y  int
		box   Rect
		want  []board.Collision
		first string
	}{
		{
			name: "pointer on a card",
			x:    30, y: 5,
			box: Rect{X: 28, Y: 4, W: 24, H: 4},
			want: []board.Collision{
				{ID: "t-0", Kind: board.HitPointer},
				{ID: board.ColumnID(task.StatusTodo), Kind: board.HitPointer},
			},
		},
		{
			name: "pointer in the gap, box overlaps two columns",
			x:    24, y: 20,
			box: Rect{X: 16, Y: 19, W: 24, H: 4},
			want: []board.Collision{
				{ID: board.ColumnID(task.StatusTodo), Kind: board.HitRect},
				{ID: board.ColumnID(task.StatusBacklog), Kind: board.HitRect},
			},
		},
		{
			name: "outside the board",
			x:    10, y: 29,
			box:  Rect{X: 8, Y: 28, W: 24, H: 4},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Collisions(tt.x, tt.y, tt.box)
			if len(got) < len(tt.want) {
				t.Fatalf("collisions = %v, want prefix %v", got, tt.want)
			}
			for i, w := range tt.want {
				if got[i] != w {
					t.Errorf("collision %d = %+v, want %+v", i, got[i], w)
				}
			}
			if tt.want == nil && len(got) != 0 {
				t.Errorf("collisions = %v, want none", got)
			}
		})
	}
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 4}
	tests := []struct {
		b    Rect
		want int
	}{
		{Rect{X: 5, Y: 2, W: 10, H: 4}, 10},
		{Rect{X: 10, Y: 0, W: 5, H: 4}, 0},
		{Rect{X: 2, Y: 1, W: 2, H: 2}, 4},
		{Rect{}, 0},
	}
	for _, tt := range tests {
		if got := a.Overlap(tt.b); got != tt.want {
			t.Errorf("Overlap(%+v) = %d, want %d", tt.b, got, tt.want)
		}
	}
}
