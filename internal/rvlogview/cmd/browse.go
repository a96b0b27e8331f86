package cmd

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"rvlogview/internal/rvlogview/tui"
	"rvlogview/internal/source"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse block executions in the terminal",
	Long: `Open an interactive two-pane view: block execution entries on the left,
the disassembly on the right. Enter highlights the selected block, r re-reads
both files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		program := tea.NewProgram(
			tui.New(source.NewFile(cfg.DisasmPath, cfg.Cache), source.NewFile(cfg.LogPath, cfg.Cache)),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
