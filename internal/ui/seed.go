package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/memstore"
)

func (a *App) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample projects",
		Long: `Create the two sample projects and their tasks. Projects that already
exist are left alone, so running it twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			n, err := memstore.Seed(cmd.Context(), a.repo)
			if err != nil {
				return fmt.Errorf("seeding: %w", err)
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Sample projects already present.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d sample tasks\n", n)
			return nil
		},
	}
}
