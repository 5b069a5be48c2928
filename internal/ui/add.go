package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/dateutil"
	"github.com/javiermolinar/tablero/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		status      string
		priority    string
		description string
		assignee    string
		due         string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task to the end of a column",
		Long: `Add a new task to the current project. The task is appended to the
end of its column.

Due dates accept YYYY-MM-DD, today, tomorrow, next-week, +3d, +2w,
a weekday name or next-<weekday>.`,
		Example: `  tablero add "Draft homepage layout" --status todo --priority high
  tablero add "Collect brand assets" --assignee "Ken Smith" --due friday --tags design,assets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			projectID, err := a.resolveProject(ctx)
			if err != nil {
				return err
			}
			st, err := task.ParseStatus(status)
			if err != nil {
				return err
			}
			pr, err := task.ParsePriority(priority)
			if err != nil {
				return err
			}

			t, err := task.New(projectID, args[0], st, pr)
			if err != nil {
				return err
			}
			t.Description = strings.TrimSpace(description)
			t.Assignee = task.NewAssignee(assignee)
			t.Tags = task.ParseTags(tags)
			if due != "" {
				d, err := dateutil.ParseRelativeDate(due, time.Now())
				if err != nil {
					return fmt.Errorf("invalid --due: %w", err)
				}
				t.Due = &d
			}

			if err := a.repo.CreateTask(ctx, t); err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s [%s #%d]\n",
				t.ID, t.Title, t.Status.Label(), t.Order)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", string(task.StatusTodo), "Column: backlog, todo, in_progress or done")
	cmd.Flags().StringVar(&priority, "priority", string(task.PriorityMedium), "Priority: low, medium or high")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description (markdown)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee name")
	cmd.Flags().StringVar(&due, "due", "", "Due date")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")

	return cmd
}
