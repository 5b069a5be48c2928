package task

import (
	"context"
	"time"
)

// TaskUpdate is a partial update. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Assignee    *Assignee
	Due         *time.Time
	ClearDue    bool // removes the due date; wins over Due
	Tags        *[]string
}

// Empty returns true if the update changes nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil &&
		u.Assignee == nil && u.Due == nil && !u.ClearDue && u.Tags == nil
}

// Apply validates the update and applies it to t.
// A status change is applied as-is; the caller places the task in its new column.
func (u TaskUpdate) Apply(t *Task) error {
	if u.Title != nil {
		title := trimmed(*u.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		t.Title = title
	}
	if u.Description != nil {
		t.Description = trimmed(*u.Description)
	}
	if u.Status != nil {
		if !u.Status.Valid() {
			return ErrInvalidStatus
		}
		t.Status = *u.Status
	}
	if u.Priority != nil {
		p, err := ParsePriority(string(*u.Priority))
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if u.Assignee != nil {
		if u.Assignee.Name == "" {
			t.Assignee = nil
		} else {
			a := *u.Assignee
			t.Assignee = &a
		}
	}
	if u.Due != nil {
		d := *u.Due
		t.Due = &d
	}
	if u.ClearDue {
		t.Due = nil
	}
	if u.Tags != nil {
		t.Tags = normalizeTags(*u.Tags)
	}
	return nil
}

// ProjectUpdate is a partial project update. Nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

// Apply validates the update and applies it to p.
func (u ProjectUpdate) Apply(p *Project) error {
	if u.Name != nil {
		name := trimmed(*u.Name)
		if name == "" {
			return ErrEmptyProjectName
		}
		p.Name = name
	}
	if u.Description != nil {
		p.Description = trimmed(*u.Description)
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	return nil
}

// Repository defines the storage interface for projects and tasks.
type Repository interface {
	// ListProjects returns all projects, most recently updated first.
	ListProjects(ctx context.Context) ([]*Project, error)

	// GetProject retrieves a project by ID.
	// Returns ErrProjectNotFound if it does not exist.
	GetProject(ctx context.Context, id string) (*Project, error)

	// CreateProject adds a new project.
	CreateProject(ctx context.Context, p *Project) error

	// UpdateProject applies a partial update to a project.
	UpdateProject(ctx context.Context, id string, patch ProjectUpdate) (*Project, error)

	// DeleteProject removes a project and all of its tasks.
	DeleteProject(ctx context.Context, id string) error

	// ListTasks returns the tasks of a project sorted by order.
	ListTasks(ctx context.Context, projectID string) ([]*Task, error)

	// GetTask retrieves a task by ID.
	// Returns ErrTaskNotFound if it does not exist.
	GetTask(ctx context.Context, id string) (*Task, error)

	// CreateTask appends a task to the end of its status column.
	CreateTask(ctx context.Context, t *Task) error

	// UpdateTask applies a partial update. A status change appends the task
	// to the end of the new column.
	UpdateTask(ctx context.Context, id string, patch TaskUpdate) (*Task, error)

	// DeleteTask removes a task. The column is not compacted, so order values
	// may have gaps until the next reorder or compaction touches it.
	DeleteTask(ctx context.Context, id string) error

	// ReorderTask moves a task to index within status and renumbers both the
	// target and source columns atomically.
	ReorderTask(ctx context.Context, id string, status Status, index int) (*Task, error)

	// CompactProject renumbers every column of a project densely.
	CompactProject(ctx context.Context, projectID string) error

	// Close releases any resources held by the repository.
	Close() error
}
