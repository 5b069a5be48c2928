package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/tablero/internal/config"
	"github.com/javiermolinar/tablero/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  tablero config
  tablero config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if show {
				printConfig(cmd.OutOrStdout(), a.config)
				return nil
			}
			return runConfigInteractive(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the effective configuration and exit")
	return cmd
}

func runConfigInteractive(out io.Writer) error {
	configPath := config.DefaultConfigPath()
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)
	fmt.Fprintln(out)

	edit, err := confirm("Would you like to edit the configuration?")
	if err != nil || !edit {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Storage.Backend = promptChoice(out, reader, "Storage backend", cfg.Storage.Backend,
		[]string{config.BackendSQLite, config.BackendMemory})
	cfg.Storage.DBPath = promptValue(out, reader, "Database path", cfg.Storage.DBPath)
	cfg.Board.Project = promptValue(out, reader, "Default project id (empty for the first one)", cfg.Board.Project)
	cfg.Board.DragThreshold = promptInt(out, reader, "Drag threshold in cells", cfg.Board.DragThreshold)
	cfg.Mock.LatencyMS = promptInt(out, reader, "Memory backend latency (ms)", cfg.Mock.LatencyMS)
	cfg.UI.Theme = promptChoice(out, reader, "UI theme", cfg.UI.Theme, theme.Available())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[storage]")
	fmt.Fprintf(out, "  backend        = %s\n", cfg.Storage.Backend)
	fmt.Fprintf(out, "  db_path        = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[board]")
	fmt.Fprintf(out, "  project        = %s\n", cfg.Board.Project)
	fmt.Fprintf(out, "  drag_threshold = %d\n", cfg.Board.DragThreshold)
	fmt.Fprintln(out, "\n[mock]")
	fmt.Fprintf(out, "  latency_ms     = %d\n", cfg.Mock.LatencyMS)
	fmt.Fprintf(out, "  seed           = %t\n", cfg.Mock.Seed)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme          = %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "  mouse          = %t\n", cfg.UI.Mouse)
}

func promptValue(out io.Writer, reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(out io.Writer, reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(out, reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptChoice(out io.Writer, reader *bufio.Reader, label, current string, options []string) string {
	joined := strings.Join(options, ", ")
	full := fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := strings.ToLower(promptValue(out, reader, full, current))
		for _, o := range options {
			if o == value {
				return value
			}
		}
		fmt.Fprintf(out, "  Invalid value %q. Available: %s\n", value, joined)
	}
}
