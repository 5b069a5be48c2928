package board

import (
	"context"
	"errors"
	"testing"

	"github.com/javiermolinar/tablero/internal/memstore"
	"github.com/javiermolinar/tablero/internal/task"
)

// failingRepo fails every reorder.
type failingRepo struct {
	task.Repository
	err error
}

func (f failingRepo) ReorderTask(context.Context, string, task.Status, int) (*task.Task, error) {
	return nil, f.err
}

// newStore creates a memory store with one project and tasks per column.
func newStore(t *testing.T, cols map[task.Status][]string) (*memstore.Store, map[string]string) {
	t.Helper()

	ctx := context.Background()
	s := memstore.New()
	if err := s.CreateProject(ctx, &task.Project{ID: "p-1", Name: "Board"}); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	byTitle := make(map[string]string)
	for _, status := range task.Statuses() {
		for _, title := range cols[status] {
			tsk, err := task.New("p-1", title, status, task.PriorityMedium)
			if err != nil {
				t.Fatalf("task.New failed: %v", err)
			}
			if err := s.CreateTask(ctx, tsk); err != nil {
				t.Fatalf("CreateTask failed: %v", err)
			}
			byTitle[title] = tsk.ID
		}
	}
	return s, byTitle
}

func titlesOf(v View, status task.Status) string {
	out := ""
	for i, t := range v.Column(status) {
		if i > 0 {
			out += ","
		}
		out += t.Title
	}
	return out
}

func TestEngine_Apply_DropsStaleEvents(t *testing.T) {
	repo, ids := newStore(t, map[task.Status][]string{task.StatusTodo: {"A", "B", "C"}})
	e := NewEngine(repo, "p-1")
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	start := e.Event(DragStart, ids["A"], "", false)
	overC := e.Event(DragOver, "", ids["C"], true)
	overB := e.Event(DragOver, "", ids["B"], true)

	if _, err := e.Apply(start); err != nil {
		t.Fatalf("Apply(start) failed: %v", err)
	}
	if _, err := e.Apply(overB); err != nil {
		t.Fatalf("Apply(overB) failed: %v", err)
	}
	// overC was issued before overB and arrives late.
	if _, err := e.Apply(overC); !errors.Is(err, ErrStaleEvent) {
		t.Errorf("got error %v, want %v", err, ErrStaleEvent)
	}
	if _, err := e.Apply(overB); !errors.Is(err, ErrStaleEvent) {
		t.Errorf("replayed event: got error %v, want %v", err, ErrStaleEvent)
	}

	if got := titlesOf(e.Session().Displayed(), task.StatusTodo); got != "B,A,C" {
		t.Errorf("todo = %s, want B,A,C", got)
	}
}

func TestEngine_Apply_OverNothingIsNoop(t *testing.T) {
	repo, ids := newStore(t, map[task.Status][]string{task.StatusTodo: {"A", "B"}})
	e := NewEngine(repo, "p-1")
	_ = e.Load(context.Background())

	_, _ = e.Apply(e.Event(DragStart, ids["A"], "", false))
	out, err := e.Apply(e.Event(DragOver, "", "", false))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if out.Changed {
		t.Error("over nothing should not change the board")
	}
	if _, dragging := e.Session().State().(Dragging); !dragging {
		t.Error("over nothing should keep dragging")
	}
}

func TestEngine_Drop_Scenarios(t *testing.T) {
	t.Run("reorder within column", func(t *testing.T) {
		repo, ids := newStore(t, map[task.Status][]string{task.StatusTodo: {"A", "B", "C"}})
		e := NewEngine(repo, "p-1")
		ctx := context.Background()
		_ = e.Load(ctx)

		_, _ = e.Apply(e.Event(DragStart, ids["A"], "", false))
		_, _ = e.Apply(e.Event(DragOver, "", ids["C"], true))
		out, err := e.Drop(ctx, ids["C"], true)
		if err != nil {
			t.Fatalf("Drop failed: %v", err)
		}
		if !out.HasCommit || out.Commit.Index != 2 {
			t.Errorf("commit = %+v, want index 2", out.Commit)
		}

		shown := e.Session().Displayed()
		if got := titlesOf(shown, task.StatusTodo); got != "B,C,A" {
			t.Errorf("todo = %s, want B,C,A", got)
		}
		if !task.IsDense(shown.Column(task.StatusTodo)) {
			t.Error("todo is not dense")
		}

		stored, _ := repo.ListTasks(ctx, "p-1")
		if got := titlesOf(Snapshot(stored), task.StatusTodo); got != "B,C,A" {
			t.Errorf("stored todo = %s, want B,C,A", got)
		}
	})

	t.Run("move across columns", func(t *testing.T) {
		repo, ids := newStore(t, map[task.Status][]string{
			task.StatusTodo: {"A", "B"},
			task.StatusDone: {"C"},
		})
		e := NewEngine(repo, "p-1")
		ctx := context.Background()
		_ = e.Load(ctx)

		_, _ = e.Apply(e.Event(DragStart, ids["A"], "", false))
		if _, err := e.Drop(ctx, ids["C"], true); err != nil {
			t.Fatalf("Drop failed: %v", err)
		}

		shown := e.Session().Displayed()
		if got := titlesOf(shown, task.StatusTodo); got != "B" {
			t.Errorf("todo = %s, want B", got)
		}
		if got := titlesOf(shown, task.StatusDone); got != "A,C" {
			t.Errorf("done = %s, want A,C", got)
		}
		for _, status := range []task.Status{task.StatusTodo, task.StatusDone} {
			if !task.IsDense(shown.Column(status)) {
				t.Errorf("%s is not dense", status)
			}
		}
	})

	t.Run("drop outside cancels without touching the store", func(t *testing.T) {
		repo, ids := newStore(t, map[task.Status][]string{task.StatusTodo: {"A", "B"}})
		e := NewEngine(repo, "p-1")
		ctx := context.Background()
		_ = e.Load(ctx)
		before := e.Session().Displayed().Clone()

		_, _ = e.Apply(e.Event(DragStart, ids["A"], "", false))
		_, _ = e.Apply(e.Event(DragOver, "", ids["B"], true))
		out, err := e.Drop(ctx, "", false)
		if err != nil {
			t.Fatalf("Drop failed: %v", err)
		}
		if out.HasCommit {
			t.Error("drop outside produced a commit")
		}
		if !e.Session().Displayed().Equal(before) {
			t.Error("board not restored")
		}
	})

	t.Run("deleted mid-drag", func(t *testing.T) {
		repo, ids := newStore(t, map[task.Status][]string{task.StatusTodo: {"A", "B"}})
		e := NewEngine(repo, "p-1")
		ctx := context.Background()
		_ = e.Load(ctx)

		_, _ = e.Apply(e.Event(DragStart, ids["A"], "", false))
		if err := repo.DeleteTask(ctx, ids["A"]); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}
		if err := e.Load(ctx); !errors.Is(err, ErrStaleDrag) {
			t.Fatalf("got error %v, want %v", err, ErrStaleDrag)
		}

		out, err := e.Drop(ctx, ids["B"], true)
		if out.HasCommit {
			t.Error("drop after delete produced a commit")
		}
		if err != nil {
			t.Errorf("drop after delete returned %v, want nil", err)
		}
		if got := titlesOf(e.Session().Displayed(), task.StatusTodo); got != "B" {
			t.Errorf("todo = %s, want B", got)
		}
	})
}

func TestEngine_Drop_RollsBackOnFailure(t *testing.T) {
	store, ids := newStore(t, map[task.Status][]string{
		task.StatusTodo: {"A", "B"},
		task.StatusDone: {"C"},
	})
	boom := errors.New("connection reset")
	e := NewEngine(failingRepo{Repository: store, err: boom}, "p-1")
	ctx := context.Background()
	_ = e.Load(ctx)
	before := e.Session().Displayed().Clone()

	_, _ = e.Apply(e.Event(DragStart, ids["A"], "", false))
	_, err := e.Drop(ctx, ids["C"], true)
	if !errors.Is(err, boom) {
		t.Fatalf("got error %v, want %v", err, boom)
	}
	if IsRecoverable(err) {
		t.Error("storage failure reported as a drag error")
	}
	if _, idle := e.Session().State().(Idle); !idle {
		t.Errorf("state = %s, want idle", e.Session().State())
	}
	if !e.Session().Displayed().Equal(before) {
		t.Error("failed commit did not roll back the board")
	}
}

func TestEngine_SecondStartIsRejected(t *testing.T) {
	repo, ids := newStore(t, map[task.Status][]string{task.StatusTodo: {"A", "B"}})
	e := NewEngine(repo, "p-1")
	_ = e.Load(context.Background())

	_, _ = e.Apply(e.Event(DragStart, ids["A"], "", false))
	_, err := e.Apply(e.Event(DragStart, ids["B"], "", false))
	if !errors.Is(err, ErrAlreadyDragging) {
		t.Errorf("got error %v, want %v", err, ErrAlreadyDragging)
	}
	if id, _ := e.Session().ActiveID(); id != ids["A"] {
		t.Errorf("active = %s, want A", id)
	}
}

func TestSequencer(t *testing.T) {
	var s Sequencer
	prev := uint64(0)
	for range 100 {
		n := s.Next()
		if n <= prev {
			t.Fatalf("sequence went from %d to %d", prev, n)
		}
		prev = n
	}
}

func TestEventKind_String(t *testing.T) {
	for kind, want := range map[EventKind]string{
		DragStart:     "drag-start",
		DragOver:      "drag-over",
		DragEnd:       "drag-end",
		DragCancel:    "drag-cancel",
		EventKind(42): "event(42)",
	} {
		if got := kind.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
