package task

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		task, err := New("p-1", "  Write tests ", StatusTodo, PriorityHigh)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Title != "Write tests" {
			t.Errorf("got title %q, want %q", task.Title, "Write tests")
		}
		if task.ProjectID != "p-1" {
			t.Errorf("got project %q, want %q", task.ProjectID, "p-1")
		}
		if task.Status != StatusTodo {
			t.Errorf("got status %q, want %q", task.Status, StatusTodo)
		}
		if task.Priority != PriorityHigh {
			t.Errorf("got priority %q, want %q", task.Priority, PriorityHigh)
		}
		if !strings.HasPrefix(task.ID, "t-") {
			t.Errorf("got id %q, want t- prefix", task.ID)
		}
		if task.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("empty priority defaults to medium", func(t *testing.T) {
		task, err := New("p-1", "Write tests", StatusBacklog, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Priority != PriorityMedium {
			t.Errorf("got priority %q, want %q", task.Priority, PriorityMedium)
		}
	})
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		status   Status
		priority Priority
		wantErr  error
	}{
		{
			name:     "empty title",
			title:    "   ",
			status:   StatusTodo,
			priority: PriorityLow,
			wantErr:  ErrEmptyTitle,
		},
		{
			name:     "invalid status",
			title:    "Test",
			status:   "blocked",
			priority: PriorityLow,
			wantErr:  ErrInvalidStatus,
		},
		{
			name:     "invalid priority",
			title:    "Test",
			status:   StatusDone,
			priority: "urgent",
			wantErr:  ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("p-1", tt.title, tt.status, tt.priority)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"backlog", StatusBacklog, false},
		{"TODO", StatusTodo, false},
		{"in_progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"inprogress", StatusInProgress, false},
		{" done ", StatusDone, false},
		{"blocked", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Errorf("got error %v, want %v", err, ErrInvalidStatus)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewAssignee(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sarah Chen", "SC"},
		{"mike", "MI"},
		{"Ana María López", "AL"},
		{"Al", "AL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAssignee(tt.name)
			if a.Initials != tt.want {
				t.Errorf("got initials %q, want %q", a.Initials, tt.want)
			}
		})
	}

	if NewAssignee("  ") != nil {
		t.Error("expected nil assignee for blank name")
	}
}

func TestClone(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	orig := &Task{
		ID:       "t-1",
		Title:    "Design",
		Assignee: &Assignee{Name: "Sarah Chen", Initials: "SC"},
		Due:      &due,
		Tags:     []string{"design", "ux"},
	}

	c := orig.Clone()
	c.Assignee.Name = "Other"
	*c.Due = due.AddDate(0, 0, 1)
	c.Tags[0] = "changed"

	if orig.Assignee.Name != "Sarah Chen" {
		t.Errorf("clone shares assignee")
	}
	if !orig.Due.Equal(due) {
		t.Errorf("clone shares due date")
	}
	if orig.Tags[0] != "design" {
		t.Errorf("clone shares tags")
	}
	if (*Task)(nil).Clone() != nil {
		t.Errorf("nil clone should be nil")
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: StatusTodo}, false},
		{"due yesterday", Task{Status: StatusTodo, Due: &yesterday}, true},
		{"due today", Task{Status: StatusTodo, Due: &today}, false},
		{"done tasks are never overdue", Task{Status: StatusDone, Due: &yesterday}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskUpdate_Apply(t *testing.T) {
	title := "  New title "
	status := StatusDone
	tags := []string{" UX", "ux", "backend", ""}

	tk := &Task{Title: "Old", Status: StatusTodo, Priority: PriorityLow}
	err := TaskUpdate{Title: &title, Status: &status, Tags: &tags}.Apply(tk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Title != "New title" {
		t.Errorf("got title %q", tk.Title)
	}
	if tk.Status != StatusDone {
		t.Errorf("got status %q", tk.Status)
	}
	if strings.Join(tk.Tags, ",") != "ux,backend" {
		t.Errorf("got tags %v", tk.Tags)
	}

	empty := ""
	if err := (TaskUpdate{Title: &empty}).Apply(tk); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("got error %v, want %v", err, ErrEmptyTitle)
	}
	bad := Status("blocked")
	if err := (TaskUpdate{Status: &bad}).Apply(tk); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("got error %v, want %v", err, ErrInvalidStatus)
	}

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = TaskUpdate{Due: &due}.Apply(tk)
	if tk.Due == nil {
		t.Fatal("expected due date")
	}
	_ = TaskUpdate{ClearDue: true}.Apply(tk)
	if tk.Due != nil {
		t.Error("expected due date to be cleared")
	}
}

func TestProjectUpdate_Apply(t *testing.T) {
	p, err := NewProject("Website Redesign", "", "#3b82f6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(p.ID, "p-") {
		t.Errorf("got id %q, want p- prefix", p.ID)
	}

	blank := " "
	if err := (ProjectUpdate{Name: &blank}).Apply(p); !errors.Is(err, ErrEmptyProjectName) {
		t.Errorf("got error %v, want %v", err, ErrEmptyProjectName)
	}
	name := "Client Portal"
	if err := (ProjectUpdate{Name: &name}).Apply(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != name {
		t.Errorf("got name %q, want %q", p.Name, name)
	}
}
