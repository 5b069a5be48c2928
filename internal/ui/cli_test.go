package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/tablero/internal/config"
	"github.com/javiermolinar/tablero/internal/memstore"
	"github.com/javiermolinar/tablero/internal/task"
)

func newTestStore(t *testing.T) *memstore.Store {
	t.Helper()
	DisableColor()
	return memstore.New(memstore.WithSeed())
}

// runCmd executes args on a fresh App over repo and returns the output.
func runCmd(t *testing.T, repo task.Repository, args ...string) (string, error) {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendMemory

	a := NewApp(repo, cfg)
	var buf bytes.Buffer
	a.root.SetOut(&buf)
	a.root.SetErr(&buf)
	a.root.SetArgs(args)
	err := a.root.ExecuteContext(context.Background())
	return buf.String(), err
}

func mustRun(t *testing.T, repo task.Repository, args ...string) string {
	t.Helper()
	out, err := runCmd(t, repo, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func columnIDs(t *testing.T, repo task.Repository, projectID string, status task.Status) []string {
	t.Helper()
	tasks, err := repo.ListTasks(context.Background(), projectID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	var ids []string
	for _, tk := range task.GroupAndSort(tasks)[status] {
		ids = append(ids, tk.ID)
	}
	return ids
}

func TestVersion(t *testing.T) {
	out := mustRun(t, newTestStore(t), "version")
	if !strings.HasPrefix(out, "tablero dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestList(t *testing.T) {
	out := mustRun(t, newTestStore(t), "list", "-p", "p-001")

	for _, want := range []string{"Website Redesign", "Backlog (1)", "To Do (2)", "In Progress (1)", "Done (0)", "empty"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "t-105") > strings.Index(out, "t-106") {
		t.Errorf("t-105 should be listed before t-106:\n%s", out)
	}
}

func TestList_StatusFilter(t *testing.T) {
	out := mustRun(t, newTestStore(t), "list", "-p", "p-001", "-s", "todo")
	if strings.Contains(out, "Backlog") || !strings.Contains(out, "To Do (2)") {
		t.Errorf("unexpected filtered output:\n%s", out)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantTodo   []string
		wantSource []string
		source     task.Status
	}{
		{
			name:       "across columns to the top",
			args:       []string{"move", "t-101", "todo", "0"},
			wantOut:    "Moved task t-101: Backlog #0 -> To Do #0",
			wantTodo:   []string{"t-101", "t-105", "t-106"},
			source:     task.StatusBacklog,
			wantSource: nil,
		},
		{
			name:     "within column",
			args:     []string{"move", "t-105", "todo", "1"},
			wantOut:  "To Do #0 -> To Do #1",
			wantTodo: []string{"t-106", "t-105"},
		},
		{
			name:     "default index appends",
			args:     []string{"move", "t-102", "todo"},
			wantOut:  "In Progress #0 -> To Do #2",
			wantTodo: []string{"t-105", "t-106", "t-102"},
		},
		{
			name:     "index past the end is clamped",
			args:     []string{"move", "t-101", "todo", "99"},
			wantOut:  "index 99 out of range, using 2",
			wantTodo: []string{"t-105", "t-106", "t-101"},
		},
		{
			name:     "same position",
			args:     []string{"move", "t-106", "to-do", "1"},
			wantOut:  "already at To Do #1",
			wantTodo: []string{"t-105", "t-106"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestStore(t)
			out := mustRun(t, repo, tt.args...)
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output %q does not contain %q", out, tt.wantOut)
			}
			if got := columnIDs(t, repo, "p-001", task.StatusTodo); !slicesEqual(got, tt.wantTodo) {
				t.Errorf("todo = %v, want %v", got, tt.wantTodo)
			}
			if tt.source != "" {
				if got := columnIDs(t, repo, "p-001", tt.source); !slicesEqual(got, tt.wantSource) {
					t.Errorf("%s = %v, want %v", tt.source, got, tt.wantSource)
				}
			}
		})
	}
}

func TestMove_Errors(t *testing.T) {
	repo := newTestStore(t)

	if _, err := runCmd(t, repo, "move", "t-999", "todo"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("unknown task: got %v, want %v", err, task.ErrTaskNotFound)
	}
	if _, err := runCmd(t, repo, "move", "t-101", "archived"); !errors.Is(err, task.ErrInvalidStatus) {
		t.Errorf("unknown status: got %v, want %v", err, task.ErrInvalidStatus)
	}
	if _, err := runCmd(t, repo, "move", "t-101", "todo", "first"); err == nil {
		t.Error("expected error for non-numeric index")
	}
}

func TestAdd(t *testing.T) {
	repo := newTestStore(t)

	out := mustRun(t, repo, "add", "Audit analytics", "-p", "p-001", "-s", "todo",
		"--priority", "high", "--assignee", "Ada Lovelace", "--tags", "Data, data ,seo", "--due", "+3d")
	if !strings.Contains(out, "[To Do #2]") {
		t.Errorf("new task should be appended, got %q", out)
	}

	ids := columnIDs(t, repo, "p-001", task.StatusTodo)
	created, err := repo.GetTask(context.Background(), ids[len(ids)-1])
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if created.Title != "Audit analytics" || created.Priority != task.PriorityHigh {
		t.Errorf("unexpected task %+v", created)
	}
	if created.Assignee == nil || created.Assignee.Initials != "AL" {
		t.Errorf("assignee = %+v, want initials AL", created.Assignee)
	}
	if !slicesEqual(created.Tags, []string{"data", "seo"}) {
		t.Errorf("tags = %v, want [data seo]", created.Tags)
	}
	if created.Due == nil {
		t.Error("expected due date")
	}
}

func TestAdd_InvalidInput(t *testing.T) {
	repo := newTestStore(t)

	for _, args := range [][]string{
		{"add", " ", "-p", "p-001"},
		{"add", "x", "-p", "p-001", "-s", "archived"},
		{"add", "x", "-p", "p-001", "--priority", "urgent"},
		{"add", "x", "-p", "p-001", "--due", "someday"},
		{"add", "x", "-p", "p-404"},
	} {
		if _, err := runCmd(t, repo, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestEdit(t *testing.T) {
	repo := newTestStore(t)

	out := mustRun(t, repo, "edit", "t-106", "--title", "Write services copy v2", "--status", "done", "--assignee", "")
	if !strings.Contains(out, "[Done #0]") {
		t.Errorf("status change should append to done, got %q", out)
	}

	got, err := repo.GetTask(context.Background(), "t-106")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != "Write services copy v2" || got.Assignee != nil {
		t.Errorf("unexpected task after edit %+v", got)
	}

	if _, err := runCmd(t, repo, "edit", "t-106"); !errors.Is(err, errNothingToEdit) {
		t.Errorf("got %v, want %v", err, errNothingToEdit)
	}
}

func TestRmAndCompact(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	mustRun(t, repo, "rm", "t-105", "--yes")

	left, err := repo.GetTask(ctx, "t-106")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if left.Order != 1 {
		t.Errorf("delete should not compact, order = %d", left.Order)
	}

	mustRun(t, repo, "compact", "-p", "p-001")
	left, _ = repo.GetTask(ctx, "t-106")
	if left.Order != 0 {
		t.Errorf("after compact order = %d, want 0", left.Order)
	}
}

func TestProjects(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	out := mustRun(t, repo, "projects", "add", "Internal Tools", "-d", "Scripts and dashboards")
	if !strings.Contains(out, "Created project p-") {
		t.Fatalf("unexpected output %q", out)
	}

	mustRun(t, repo, "projects", "rename", "p-002", "Client Portal v2")
	p, err := repo.GetProject(ctx, "p-002")
	if err != nil || p.Name != "Client Portal v2" {
		t.Errorf("rename failed: %v %+v", err, p)
	}

	out = mustRun(t, repo, "projects", "list")
	for _, want := range []string{"Internal Tools", "Client Portal v2", "4 tasks, 0 done"} {
		if !strings.Contains(out, want) {
			t.Errorf("projects output missing %q:\n%s", want, out)
		}
	}

	mustRun(t, repo, "projects", "rm", "p-002", "--yes")
	if _, err := repo.GetTask(ctx, "t-104"); !errors.Is(err, task.ErrTaskNotFound) {
		t.Errorf("project delete should cascade, got %v", err)
	}
}

func TestSeed(t *testing.T) {
	DisableColor()
	repo := memstore.New()

	out := mustRun(t, repo, "seed")
	if !strings.Contains(out, "Created 6 sample tasks") {
		t.Errorf("unexpected output %q", out)
	}
	out = mustRun(t, repo, "seed")
	if !strings.Contains(out, "already present") {
		t.Errorf("second seed should be a no-op, got %q", out)
	}
}

func TestResolveProject(t *testing.T) {
	if _, err := runCmd(t, memstore.New(), "list"); !errors.Is(err, ErrNoProjects) {
		t.Errorf("empty store: got %v, want %v", err, ErrNoProjects)
	}
	if _, err := runCmd(t, newTestStore(t), "list", "-p", "p-404"); !errors.Is(err, task.ErrProjectNotFound) {
		t.Errorf("unknown project: got %v, want %v", err, task.ErrProjectNotFound)
	}
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
