// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/tablero/internal/board"
	"github.com/javiermolinar/tablero/internal/task"
)

// BoardLoadedMsg is sent when a project's board has been read.
// Seq identifies the load request so late results can be dropped.
type BoardLoadedMsg struct {
	Seq       uint64
	ProjectID string
	Projects  []*task.Project
	Tasks     []*task.Task
}

// CommitResultMsg is sent when a drop has been persisted, or failed to be.
type CommitResultMsg struct {
	Commit board.Commit
	Tasks  []*task.Task
	Err    error
}

// TaskCreatedMsg is sent when a task has been added to the board.
type TaskCreatedMsg struct {
	Task *task.Task
}

// TaskDeletedMsg is sent when a task has been deleted.
type TaskDeletedMsg struct {
	ID    string
	Title string
}

// CompactedMsg is sent when a project's columns have been renumbered.
type CompactedMsg struct {
	ProjectID string
}

// CopiedMsg is sent when text has been copied to the clipboard.
type CopiedMsg struct {
	Text string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadBoard loads the project list and the tasks of projectID.
func LoadBoard(repo task.Repository, projectID string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		projects, err := repo.ListProjects(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading projects: %w", err)}
		}
		tasks, err := repo.ListTasks(ctx, projectID)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading tasks: %w", err)}
		}
		return BoardLoadedMsg{Seq: seq, ProjectID: projectID, Projects: projects, Tasks: tasks}
	}
}

// CommitDrop persists a drop through the coordinator. Failures are carried
// in the result so the session can roll back.
func CommitDrop(coord *board.Coordinator, c board.Commit) tea.Cmd {
	return func() tea.Msg {
		tasks, err := coord.Commit(context.Background(), c)
		return CommitResultMsg{Commit: c, Tasks: tasks, Err: err}
	}
}

// CreateTask appends a new task with title to the status column.
func CreateTask(repo task.Repository, projectID, title string, status task.Status) tea.Cmd {
	return func() tea.Msg {
		t, err := task.New(projectID, title, status, task.PriorityMedium)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if err := repo.CreateTask(context.Background(), t); err != nil {
			return ErrMsg{Err: fmt.Errorf("creating task: %w", err)}
		}
		return TaskCreatedMsg{Task: t}
	}
}

// DeleteTask removes the task. The rest of its column keeps its order values.
func DeleteTask(repo task.Repository, t *task.Task) tea.Cmd {
	id, title := t.ID, t.Title
	return func() tea.Msg {
		if err := repo.DeleteTask(context.Background(), id); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting task: %w", err)}
		}
		return TaskDeletedMsg{ID: id, Title: title}
	}
}

// CompactProject renumbers every column of the project densely.
func CompactProject(repo task.Repository, projectID string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CompactProject(context.Background(), projectID); err != nil {
			return ErrMsg{Err: fmt.Errorf("compacting project: %w", err)}
		}
		return CompactedMsg{ProjectID: projectID}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return CopiedMsg{Text: text}
	}
}
