package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id                TEXT PRIMARY KEY,
			project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			title             TEXT NOT NULL,
			description       TEXT NOT NULL DEFAULT '',
			status            TEXT NOT NULL CHECK(status IN ('backlog', 'todo', 'in_progress', 'done')),
			priority          TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
			assignee_name     TEXT,
			assignee_initials TEXT,
			due_date          TEXT,
			tags              TEXT NOT NULL DEFAULT '[]',
			sort_order        INTEGER NOT NULL DEFAULT 0 CHECK(sort_order >= 0),
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(project_id, status, sort_order);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
