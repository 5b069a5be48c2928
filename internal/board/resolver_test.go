package board

import (
	"testing"

	"github.com/javiermolinar/tablero/internal/task"
)

func TestColumnID(t *testing.T) {
	for _, status := range task.Statuses() {
		got, ok := ParseColumnID(ColumnID(status))
		if !ok || got != status {
			t.Errorf("ParseColumnID(ColumnID(%s)) = %s, %v", status, got, ok)
		}
	}

	for _, id := range []string{"t-1", "column:", "column:archived", "todo"} {
		if _, ok := ParseColumnID(id); ok {
			t.Errorf("ParseColumnID(%q) should fail", id)
		}
	}
}

func TestResolve(t *testing.T) {
	v := Snapshot(board(
		column(task.StatusTodo, "A", "B", "C"),
		column(task.StatusDone, "X"),
	))

	tests := []struct {
		name    string
		hits    []Collision
		want    Target
		wantOK  bool
		wantVia string
	}{
		{
			name:   "no hits",
			hits:   nil,
			wantOK: false,
		},
		{
			name:    "pointer item",
			hits:    []Collision{{ID: "B", Kind: HitPointer}},
			want:    Target{ID: "B", Status: task.StatusTodo, Index: 1},
			wantOK:  true,
			wantVia: "pointer-item",
		},
		{
			name: "item beats column regardless of order",
			hits: []Collision{
				{ID: ColumnID(task.StatusDone), Kind: HitPointer},
				{ID: "X", Kind: HitPointer},
			},
			want:    Target{ID: "X", Status: task.StatusDone, Index: 0},
			wantOK:  true,
			wantVia: "pointer-item",
		},
		{
			name: "pointer containment beats rect intersection",
			hits: []Collision{
				{ID: "A", Kind: HitRect},
				{ID: ColumnID(task.StatusDone), Kind: HitPointer},
			},
			want:    Target{ID: ColumnID(task.StatusDone), Status: task.StatusDone, Index: 1, Column: true},
			wantOK:  true,
			wantVia: "pointer-column",
		},
		{
			name: "rect item when pointer is outside everything",
			hits: []Collision{
				{ID: ColumnID(task.StatusTodo), Kind: HitRect},
				{ID: "C", Kind: HitRect},
			},
			want:    Target{ID: "C", Status: task.StatusTodo, Index: 2},
			wantOK:  true,
			wantVia: "rect-item",
		},
		{
			name:    "rect column as last resort",
			hits:    []Collision{{ID: ColumnID(task.StatusBacklog), Kind: HitRect}},
			want:    Target{ID: ColumnID(task.StatusBacklog), Status: task.StatusBacklog, Index: 0, Column: true},
			wantOK:  true,
			wantVia: "rect-column",
		},
		{
			name: "stale item falls through",
			hits: []Collision{
				{ID: "deleted", Kind: HitPointer},
				{ID: ColumnID(task.StatusTodo), Kind: HitPointer},
			},
			want:    Target{ID: ColumnID(task.StatusTodo), Status: task.StatusTodo, Index: 3, Column: true},
			wantOK:  true,
			wantVia: "pointer-column",
		},
		{
			name:   "only unknown ids",
			hits:   []Collision{{ID: "deleted", Kind: HitPointer}, {ID: "column:archived", Kind: HitRect}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(v, tt.hits)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Via != tt.wantVia {
				t.Errorf("via = %q, want %q", got.Via, tt.wantVia)
			}
			got.Via = ""
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveID_UsesLiveView(t *testing.T) {
	s := NewSession(board(column(task.StatusTodo, "A", "B"), column(task.StatusDone, "X")))
	mustStart(t, s, "A")
	_, _ = s.MoveOver("X")

	got, ok := ResolveID(s.Displayed(), "A")
	if !ok {
		t.Fatal("expected A to resolve")
	}
	if got.Status != task.StatusDone || got.Index != 0 {
		t.Errorf("got %s/%d, want done/0", got.Status, got.Index)
	}
}

func TestResolve_ActiveItemKeepsItsSlot(t *testing.T) {
	s := NewSession(board(column(task.StatusTodo, "A", "B", "C")))
	mustStart(t, s, "B")

	got, ok := Resolve(s.Displayed(), []Collision{
		{ID: ColumnID(task.StatusTodo), Kind: HitPointer},
		{ID: "B", Kind: HitPointer},
	})
	if !ok || got.ID != "B" || got.Index != 1 {
		t.Fatalf("got %+v, %v, want B at 1", got, ok)
	}

	changed, err := s.MoveOver(got.ID)
	if err != nil || changed {
		t.Fatalf("MoveOver(own card) = %v, %v, want false, nil", changed, err)
	}
	if order := ids(s.Displayed(), task.StatusTodo); order != "A,B,C" {
		t.Errorf("todo = %s, want A,B,C", order)
	}
}
