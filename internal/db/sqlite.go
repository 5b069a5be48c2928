// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/tablero/internal/task"
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const taskColumns = `
	id, project_id, title, description, status, priority,
	assignee_name, assignee_initials, due_date, tags, sort_order,
	created_at, updated_at
`

const projectColumns = `id, name, description, color, created_at, updated_at`

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection serializes writers, so two reorders never interleave.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// ListProjects returns all projects, most recently updated first.
func (s *SQLite) ListProjects(ctx context.Context) ([]*task.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY updated_at DESC, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*task.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project by ID.
func (s *SQLite) GetProject(ctx context.Context, id string) (*task.Project, error) {
	return getProject(ctx, s.db, id)
}

// CreateProject adds a new project.
func (s *SQLite) CreateProject(ctx context.Context, p *task.Project) error {
	if p.ID == "" {
		p.ID = task.NewProjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}

	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Color,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// UpdateProject applies a partial update to a project.
func (s *SQLite) UpdateProject(ctx context.Context, id string, patch task.ProjectUpdate) (*task.Project, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p, err := getProject(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()

	query := `UPDATE projects SET name = ?, description = ?, color = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query, p.Name, p.Description, p.Color, formatTime(p.UpdatedAt), id); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return p, nil
}

// DeleteProject removes a project and all of its tasks.
func (s *SQLite) DeleteProject(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("deleting project tasks: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("project %s: %w", id, task.ErrProjectNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListTasks returns the tasks of a project sorted by order.
func (s *SQLite) ListTasks(ctx context.Context, projectID string) ([]*task.Task, error) {
	tasks, err := listTasks(ctx, s.db, projectID)
	if err != nil {
		return nil, err
	}
	task.SortByOrder(tasks)
	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *SQLite) GetTask(ctx context.Context, id string) (*task.Task, error) {
	return getTask(ctx, s.db, id)
}

// CreateTask appends a task to the end of its status column.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getProject(ctx, tx, t.ProjectID); err != nil {
		return err
	}

	order, err := nextOrder(ctx, tx, t.ProjectID, t.Status)
	if err != nil {
		return err
	}
	t.Order = order
	if t.ID == "" {
		t.ID = task.NewTaskID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	tags, err := encodeTags(t.Tags)
	if err != nil {
		return err
	}
	name, initials := assigneeColumns(t.Assignee)

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.Priority,
		name, initials, formatDue(t.Due), tags, t.Order,
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateTask applies a partial update. A status change appends the task to
// the end of the new column and renumbers the old one in the same transaction.
func (s *SQLite) UpdateTask(ctx context.Context, id string, patch task.TaskUpdate) (*task.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := t.Status
	if err := patch.Apply(t); err != nil {
		return nil, err
	}
	if t.Status != oldStatus {
		if t.Order, err = nextOrder(ctx, tx, t.ProjectID, t.Status); err != nil {
			return nil, err
		}
	}
	t.UpdatedAt = time.Now()

	tags, err := encodeTags(t.Tags)
	if err != nil {
		return nil, err
	}
	name, initials := assigneeColumns(t.Assignee)

	query := `
		UPDATE tasks SET
			title = ?, description = ?, status = ?, priority = ?,
			assignee_name = ?, assignee_initials = ?, due_date = ?, tags = ?,
			sort_order = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query,
		t.Title, t.Description, t.Status, t.Priority,
		name, initials, formatDue(t.Due), tags,
		t.Order, formatTime(t.UpdatedAt), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	if t.Status != oldStatus {
		if err := renumberColumn(ctx, tx, t.ProjectID, oldStatus, t.UpdatedAt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return t, nil
}

// DeleteTask removes a task. Remaining tasks keep their order values.
func (s *SQLite) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("task %s: %w", id, task.ErrTaskNotFound)
	}
	return nil
}

// ReorderTask moves a task to index within status. The target column and,
// for cross-column moves, the source column are renumbered in one transaction.
func (s *SQLite) ReorderTask(ctx context.Context, id string, status task.Status, index int) (*task.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getTask(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := listTasks(ctx, tx, current.ProjectID)
	if err != nil {
		return nil, err
	}

	plan, err := task.PlanReorder(tasks, id, status, index)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stmt, err := tx.PrepareContext(ctx, `UPDATE tasks SET status = ?, sort_order = ?, updated_at = ? WHERE id = ?`)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range plan.Changed {
		c.UpdatedAt = now
		if _, err := stmt.ExecContext(ctx, c.Status, c.Order, formatTime(now), c.ID); err != nil {
			return nil, fmt.Errorf("renumbering task %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return plan.Task, nil
}

// CompactProject renumbers every column of a project densely.
func (s *SQLite) CompactProject(ctx context.Context, projectID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getProject(ctx, tx, projectID); err != nil {
		return err
	}
	tasks, err := listTasks(ctx, tx, projectID)
	if err != nil {
		return err
	}

	now := formatTime(time.Now())
	for _, seq := range task.GroupAndSort(tasks) {
		for _, c := range task.Renumber(seq) {
			if _, err := tx.ExecContext(ctx, `UPDATE tasks SET sort_order = ?, updated_at = ? WHERE id = ?`, c.Order, now, c.ID); err != nil {
				return fmt.Errorf("compacting task %s: %w", c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func getProject(ctx context.Context, q querier, id string) (*task.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, task.ErrProjectNotFound)
	}
	return p, err
}

func getTask(ctx context.Context, q querier, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, task.ErrTaskNotFound)
	}
	return t, err
}

func listTasks(ctx context.Context, q querier, projectID string) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY status, sort_order`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// renumberColumn closes gaps left in a column after a task leaves it.
func renumberColumn(ctx context.Context, q querier, projectID string, status task.Status, now time.Time) error {
	tasks, err := listTasks(ctx, q, projectID)
	if err != nil {
		return err
	}
	seq := task.GroupAndSort(tasks)[status]
	for _, c := range task.Renumber(seq) {
		if _, err := q.ExecContext(ctx, `UPDATE tasks SET sort_order = ?, updated_at = ? WHERE id = ?`, c.Order, formatTime(now), c.ID); err != nil {
			return fmt.Errorf("renumbering task %s: %w", c.ID, err)
		}
	}
	return nil
}

func nextOrder(ctx context.Context, q querier, projectID string, status task.Status) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM tasks WHERE project_id = ? AND status = ?`
	if err := q.QueryRowContext(ctx, query, projectID, status).Scan(&next); err != nil {
		return 0, fmt.Errorf("reading next order: %w", err)
	}
	return next, nil
}

func scanProject(row rowScanner) (*task.Project, error) {
	var (
		p                    task.Project
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}
	return &p, nil
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t                    task.Task
		assigneeName         sql.NullString
		assigneeInitials     sql.NullString
		due                  sql.NullString
		tags                 string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&assigneeName, &assigneeInitials, &due, &tags, &t.Order,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	if assigneeName.Valid && assigneeName.String != "" {
		t.Assignee = &task.Assignee{Name: assigneeName.String, Initials: assigneeInitials.String}
	}
	if due.Valid && due.String != "" {
		d, err := parseDate(due.String)
		if err != nil {
			return nil, fmt.Errorf("parsing due date: %w", err)
		}
		t.Due = &d
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if len(t.Tags) == 0 {
		t.Tags = nil
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}
	return &t, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(b), nil
}

func assigneeColumns(a *task.Assignee) (any, any) {
	if a == nil {
		return nil, nil
	}
	return a.Name, a.Initials
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

func formatDue(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format("2006-01-02")
}

// parseDate parses a date string in the formats SQLite might return.
// Date-only values are parsed as local midnight to match time.Now() based dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite may hand DATE columns back as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
