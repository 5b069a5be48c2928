// Package memstore provides an in-memory task.Repository with optional
// simulated latency, used for demos and tests.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/javiermolinar/tablero/internal/task"
)

// Store is a mutex-guarded, single-writer repository. Every value it hands
// out is a clone, so callers never hold the stored instances.
type Store struct {
	mu       sync.Mutex
	projects []*task.Project
	tasks    []*task.Task
	latency  time.Duration
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLatency delays every call by d, like a remote backend would.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithSeed loads the sample projects and tasks.
func WithSeed() Option {
	return func(s *Store) {
		projects, tasks := Sample(s.now())
		s.projects = append(s.projects, projects...)
		s.tasks = append(s.tasks, tasks...)
	}
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// wait simulates latency and honors cancellation.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ListProjects returns all projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context) ([]*task.Project, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*task.Project, len(s.projects))
	for i, p := range s.projects {
		c := *p
		out[i] = &c
	}
	slices.SortStableFunc(out, func(a, b *task.Project) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}

// GetProject retrieves a project by ID.
func (s *Store) GetProject(ctx context.Context, id string) (*task.Project, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.project(id)
	if err != nil {
		return nil, err
	}
	c := *p
	return &c, nil
}

// CreateProject adds a new project.
func (s *Store) CreateProject(ctx context.Context, p *task.Project) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = task.NewProjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	c := *p
	s.projects = append(s.projects, &c)
	return nil
}

// UpdateProject applies a partial update to a project.
func (s *Store) UpdateProject(ctx context.Context, id string, patch task.ProjectUpdate) (*task.Project, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.project(id)
	if err != nil {
		return nil, err
	}
	next := *p
	if err := patch.Apply(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()
	*p = next
	return &next, nil
}

// DeleteProject removes a project and all of its tasks.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.project(id); err != nil {
		return err
	}
	s.projects = slices.DeleteFunc(s.projects, func(p *task.Project) bool { return p.ID == id })
	s.tasks = slices.DeleteFunc(s.tasks, func(t *task.Task) bool { return t.ProjectID == id })
	return nil
}

// ListTasks returns the tasks of a project sorted by order.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]*task.Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*task.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	task.SortByOrder(out)
	return out, nil
}

// GetTask retrieves a task by ID.
func (s *Store) GetTask(ctx context.Context, id string) (*task.Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.task(id)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// CreateTask appends a task to the end of its status column.
func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.project(t.ProjectID); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = task.NewTaskID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	t.Order = task.NextOrder(s.column(t.ProjectID, t.Status))
	s.tasks = append(s.tasks, t.Clone())
	return nil
}

// UpdateTask applies a partial update. A status change appends the task to
// the end of the new column and closes the gap it leaves in the old one.
func (s *Store) UpdateTask(ctx context.Context, id string, patch task.TaskUpdate) (*task.Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.task(id)
	if err != nil {
		return nil, err
	}
	next := t.Clone()
	if err := patch.Apply(next); err != nil {
		return nil, err
	}
	from := t.Status
	if next.Status != from {
		next.Order = task.NextOrder(s.column(t.ProjectID, next.Status))
	}
	now := s.now()
	next.UpdatedAt = now
	*t = *next.Clone()

	if next.Status != from {
		left := s.column(t.ProjectID, from)
		task.SortByOrder(left)
		for _, c := range task.Renumber(left) {
			c.UpdatedAt = now
		}
	}
	return next, nil
}

// DeleteTask removes a task. Remaining tasks keep their order values.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.task(id); err != nil {
		return err
	}
	s.tasks = slices.DeleteFunc(s.tasks, func(t *task.Task) bool { return t.ID == id })
	return nil
}

// ReorderTask moves a task to index within status. Both touched columns are
// renumbered under one lock acquisition.
func (s *Store) ReorderTask(ctx context.Context, id string, status task.Status, index int) (*task.Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.task(id)
	if err != nil {
		return nil, err
	}
	var scope []*task.Task
	for _, t := range s.tasks {
		if t.ProjectID == current.ProjectID {
			scope = append(scope, t)
		}
	}

	plan, err := task.PlanReorder(scope, id, status, index)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, c := range plan.Changed {
		c.UpdatedAt = now
		stored, err := s.task(c.ID)
		if err != nil {
			return nil, err
		}
		*stored = *c.Clone()
	}
	return plan.Task.Clone(), nil
}

// CompactProject renumbers every column of a project densely.
func (s *Store) CompactProject(ctx context.Context, projectID string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.project(projectID); err != nil {
		return err
	}
	for _, status := range task.Statuses() {
		seq := s.column(projectID, status)
		task.SortByOrder(seq)
		task.Renumber(seq)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) project(id string) (*task.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, task.ErrProjectNotFound)
}

func (s *Store) task(id string) (*task.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("task %s: %w", id, task.ErrTaskNotFound)
}

// column returns the stored tasks of one column, unsorted.
func (s *Store) column(projectID string, status task.Status) []*task.Task {
	var out []*task.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID && t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Sample returns the demo projects and tasks with dense orders.
func Sample(now time.Time) ([]*task.Project, []*task.Task) {
	projects := []*task.Project{
		{ID: "p-001", Name: "Website Redesign", Description: "Marketing site refresh", Color: "#3b82f6"},
		{ID: "p-002", Name: "Client Portal", Description: "Self-service dashboard for clients", Color: "#10b981"},
	}
	for _, p := range projects {
		p.CreatedAt, p.UpdatedAt = now, now
	}

	ken := &task.Assignee{Name: "Ken", Initials: "KS"}
	tars := &task.Assignee{Name: "TARS", Initials: "TA"}
	tasks := []*task.Task{
		{ID: "t-101", ProjectID: "p-001", Title: "Define v1 scope", Description: "Lock the must-haves and explicitly cut the rest.",
			Status: task.StatusBacklog, Priority: task.PriorityHigh, Assignee: ken, Tags: []string{"planning"}},
		{ID: "t-105", ProjectID: "p-001", Title: "Collect brand assets", Description: "Logos, fonts and the current colour palette.",
			Status: task.StatusTodo, Priority: task.PriorityLow, Tags: []string{"design"}},
		{ID: "t-106", ProjectID: "p-001", Title: "Write services copy", Description: "One paragraph per service, **benefit first**.",
			Status: task.StatusTodo, Priority: task.PriorityMedium, Assignee: ken, Tags: []string{"content"}},
		{ID: "t-102", ProjectID: "p-001", Title: "Draft homepage layout", Description: "Hero, services, proof, CTA. Keep it tight.",
			Status: task.StatusInProgress, Priority: task.PriorityMedium, Assignee: tars, Tags: []string{"ui"}},
		{ID: "t-103", ProjectID: "p-002", Title: "Design task data model", Description: "Projects, tasks, ordering, and access rules.",
			Status: task.StatusTodo, Priority: task.PriorityMedium, Tags: []string{"backend"}},
		{ID: "t-104", ProjectID: "p-002", Title: "Ship dashboard demo", Description: "Add/edit/delete tasks + projects list.",
			Status: task.StatusDone, Priority: task.PriorityHigh, Tags: []string{"ship"}},
	}

	orders := make(map[string]int)
	for _, t := range tasks {
		key := t.ProjectID + "/" + string(t.Status)
		t.Order = orders[key]
		orders[key]++
		t.CreatedAt, t.UpdatedAt = now, now
	}
	return projects, tasks
}

// Seed writes the sample data into repo, skipping projects that already exist.
func Seed(ctx context.Context, repo task.Repository) (int, error) {
	projects, tasks := Sample(time.Now())
	created := 0
	for _, p := range projects {
		_, err := repo.GetProject(ctx, p.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, task.ErrProjectNotFound) {
			return created, err
		}
		if err := repo.CreateProject(ctx, p); err != nil {
			return created, fmt.Errorf("seeding project %s: %w", p.Name, err)
		}
		for _, t := range tasks {
			if t.ProjectID != p.ID {
				continue
			}
			if err := repo.CreateTask(ctx, t); err != nil {
				return created, fmt.Errorf("seeding task %q: %w", t.Title, err)
			}
			created++
		}
	}
	return created, nil
}
