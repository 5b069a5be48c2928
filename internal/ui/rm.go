package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) rmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm [task-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task. The remaining tasks keep their positions, so the column
may have a gap until the next move or 'tablero compact'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			t, err := a.repo.GetTask(ctx, args[0])
			if err != nil {
				return fmt.Errorf("loading task: %w", err)
			}
			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete %q?", t.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := a.repo.DeleteTask(ctx, t.ID); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func (a *App) compactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compact",
		Short: "Renumber every column of the project densely",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := cmd.Context()

			projectID, err := a.resolveProject(ctx)
			if err != nil {
				return err
			}
			if err := a.repo.CompactProject(ctx, projectID); err != nil {
				return fmt.Errorf("compacting project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Compacted project %s\n", projectID)
			return nil
		},
	}
}
