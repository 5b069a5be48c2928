package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/task"
)

func (a *App) showCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show a task with its rendered description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			t, err := a.repo.GetTask(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading task: %w", err)
			}
			p, err := a.repo.GetProject(ctx, t.ProjectID)
			if err != nil {
				return fmt.Errorf("loading project: %w", err)
			}
			tasks, err := a.repo.ListTasks(ctx, t.ProjectID)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			PrintTask(cmd.OutOrStdout(), t, p, task.GroupAndSort(tasks), PrintOpts{})
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
