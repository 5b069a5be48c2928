package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/dateutil"
	"github.com/javiermolinar/tablero/internal/task"
)

// errNothingToEdit is returned when edit runs without any field flag.
var errNothingToEdit = errors.New("nothing to edit, pass at least one flag")

func (a *App) editCmd() *cobra.Command {
	var (
		title       string
		description string
		status      string
		priority    string
		assignee    string
		due         string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit task fields",
		Long: `Change the fields given as flags and leave the rest untouched.

Changing --status appends the task to the end of the new column; use
'tablero move' to pick a position. An empty --assignee clears it and
--due none clears the due date.`,
		Example: `  tablero edit t-101 --title "Define v1 scope (final)" --priority high
  tablero edit t-101 --due none --tags ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var patch task.TaskUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("status") {
				st, err := task.ParseStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if flags.Changed("priority") {
				pr, err := task.ParsePriority(priority)
				if err != nil {
					return err
				}
				patch.Priority = &pr
			}
			if flags.Changed("assignee") {
				patch.Assignee = &task.Assignee{}
				if as := task.NewAssignee(assignee); as != nil {
					patch.Assignee = as
				}
			}
			if flags.Changed("due") {
				if due == "" || due == "none" {
					patch.ClearDue = true
				} else {
					d, err := dateutil.ParseRelativeDate(due, time.Now())
					if err != nil {
						return fmt.Errorf("invalid --due: %w", err)
					}
					patch.Due = &d
				}
			}
			if flags.Changed("tags") {
				parsed := task.ParseTags(tags)
				patch.Tags = &parsed
			}
			if patch.Empty() {
				return errNothingToEdit
			}

			t, err := a.repo.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return fmt.Errorf("updating task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s [%s #%d]\n",
				t.ID, t.Title, t.Status.Label(), t.Order)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (markdown)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New column")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee, empty to clear")
	cmd.Flags().StringVar(&due, "due", "", "New due date, none to clear")
	cmd.Flags().StringVar(&tags, "tags", "", "Replace tags (comma-separated)")
	return cmd
}
