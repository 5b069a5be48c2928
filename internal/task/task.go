// Package task defines the core domain types for tablero.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyProjectName = errors.New("project name cannot be empty")
	ErrInvalidStatus    = errors.New("status must be one of backlog, todo, in_progress, done")
	ErrInvalidPriority  = errors.New("priority must be 'low', 'medium' or 'high'")
)

// Domain errors.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
)

// Status is the board column a task belongs to.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses returns every status in column order.
func Statuses() []Status {
	return []Status{StatusBacklog, StatusTodo, StatusInProgress, StatusDone}
}

// Valid returns true if the status is a known column.
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Label returns the column heading for a status.
func (s Status) Label() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus parses a status name, accepting a few spellings of in_progress.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "backlog":
		return StatusBacklog, nil
	case "todo", "to-do":
		return StatusTodo, nil
	case "in_progress", "in-progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority parses a priority name. Empty means medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "", "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Assignee is the person a task is assigned to.
type Assignee struct {
	Name     string
	Initials string
}

// NewAssignee builds an assignee, deriving initials from the name.
func NewAssignee(name string) *Assignee {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &Assignee{Name: name, Initials: initials(name)}
}

func initials(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	if len(fields) == 1 {
		r := []rune(fields[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	}
	first := []rune(fields[0])[0]
	last := []rune(fields[len(fields)-1])[0]
	return strings.ToUpper(string([]rune{first, last}))
}

// Project groups tasks into a board.
type Project struct {
	ID          string
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject creates a project with a fresh id.
func NewProject(name, description, color string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProjectName
	}
	now := time.Now()
	return &Project{
		ID:          NewProjectID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Task is a card on the board.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Assignee    *Assignee  // optional
	Due         *time.Time // optional
	Tags        []string
	Order       int // dense, zero-based position within its status column
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New creates a new Task with validation.
// Order is assigned by the repository when the task is created.
func New(projectID, title string, status Status, priority Priority) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if _, err := ParsePriority(string(priority)); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Task{
		ID:        NewTaskID(),
		ProjectID: projectID,
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	if t.Due != nil {
		d := *t.Due
		c.Due = &d
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return &c
}

// IsDone returns true if the task sits in the done column.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// IsOverdue returns true if the task has a due date before today and is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Due == nil || t.IsDone() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.Due.Before(today)
}

// NewTaskID returns a fresh task identifier.
func NewTaskID() string {
	return "t-" + uuid.NewString()
}

// NewProjectID returns a fresh project identifier.
func NewProjectID() string {
	return "p-" + uuid.NewString()
}
