package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/task"
)

func (a *App) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [task-id] [status] [index]",
		Short: "Move a task to a position in a column",
		Long: `Move a task to a zero-based position in a column. Without an index the
task goes to the end of the column. Indexes past the end are clamped.

Both the source and the destination column are renumbered, so positions
stay dense after every move.`,
		Example: `  tablero move t-101 todo 0
  tablero move t-102 done`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			status, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}

			current, err := a.repo.GetTask(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading task: %w", err)
			}
			tasks, err := a.repo.ListTasks(ctx, current.ProjectID)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}
			dest := destinationLen(tasks, current.ID, status)

			index := dest
			if len(args) == 3 {
				index, err = strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("invalid index %q: %w", args[2], err)
				}
			}
			if clamped, ok := task.ClampIndex(index, dest); ok {
				fmt.Fprintln(out, formatWarn(fmt.Sprintf("index %d out of range, using %d", index, clamped)))
				index = clamped
			}

			moved, err := a.repo.ReorderTask(ctx, current.ID, status, index)
			if err != nil {
				return fmt.Errorf("moving task: %w", err)
			}

			from := fmt.Sprintf("%s #%d", current.Status.Label(), current.Order)
			to := fmt.Sprintf("%s #%d", moved.Status.Label(), moved.Order)
			if from == to {
				fmt.Fprintf(out, "Task %s already at %s\n", moved.ID, to)
				return nil
			}
			fmt.Fprintf(out, "Moved task %s: %s -> %s\n", moved.ID, from, formatOK(to))
			return nil
		},
	}
}

// destinationLen returns the size of the status column without the moving
// task, which is the largest valid index.
func destinationLen(tasks []*task.Task, id string, status task.Status) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status && t.ID != id {
			n++
		}
	}
	return n
}
