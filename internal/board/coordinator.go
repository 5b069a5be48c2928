package board

import (
	"context"
	"fmt"

	"github.com/javiermolinar/tablero/internal/task"
)

// Coordinator persists drops through a repository.
type Coordinator struct {
	repo      task.Repository
	projectID string
}

// NewCoordinator creates a coordinator for one project.
func NewCoordinator(repo task.Repository, projectID string) *Coordinator {
	return &Coordinator{repo: repo, projectID: projectID}
}

// ProjectID returns the project the coordinator writes to.
func (c *Coordinator) ProjectID() string {
	return c.projectID
}

// Load returns the project's tasks.
func (c *Coordinator) Load(ctx context.Context) ([]*task.Task, error) {
	tasks, err := c.repo.ListTasks(ctx, c.projectID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return tasks, nil
}

// Commit reorders the dropped task and returns the fresh board. Any error
// means nothing should be trusted beyond the last authoritative view.
func (c *Coordinator) Commit(ctx context.Context, cm Commit) ([]*task.Task, error) {
	if _, err := c.repo.ReorderTask(ctx, cm.TaskID, cm.Status, cm.Index); err != nil {
		return nil, fmt.Errorf("reordering %s: %w", cm.TaskID, err)
	}
	return c.Load(ctx)
}
