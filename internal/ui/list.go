package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/task"
)

func (a *App) listCmd() *cobra.Command {
	var (
		verbose bool
		noColor bool
		status  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "board"},
		Short:   "Print the board",
		Long: `Print every column of the current project in board order.

The number before each task id is its position in the column, the value
'tablero move' takes as index.`,
		Example: `  tablero list
  tablero list --project p-002 --status todo -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			projectID, err := a.resolveProject(ctx)
			if err != nil {
				return err
			}
			p, err := a.repo.GetProject(ctx, projectID)
			if err != nil {
				return fmt.Errorf("loading project: %w", err)
			}
			tasks, err := a.repo.ListTasks(ctx, projectID)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			cols := task.GroupAndSort(tasks)
			if status != "" {
				only, err := task.ParseStatus(status)
				if err != nil {
					return err
				}
				for _, s := range task.Statuses() {
					if s != only {
						delete(cols, s)
					}
				}
			}

			PrintBoard(cmd.OutOrStdout(), p, cols, PrintOpts{Verbose: verbose})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only print one column")
	return cmd
}
