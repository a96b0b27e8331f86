package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rvlogview/internal/disasm"
	"rvlogview/internal/execlog"
	"rvlogview/internal/report"
	"rvlogview/internal/rvlogview/styles"
	"rvlogview/internal/source"
	"rvlogview/internal/ui/colorize"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize which functions the logged blocks ran in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("top")
		width, _ := cmd.Flags().GetInt("width")
		raw, _ := cmd.Flags().GetBool("markdown")

		entries := execlog.Scan(source.ReadOrEmpty(source.NewFile(cfg.LogPath, false)))
		lines := disasm.Parse(source.ReadOrEmpty(source.NewFile(cfg.DisasmPath, false)))
		md := report.Build(entries, lines, top).Markdown(cfg.LogPath, cfg.DisasmPath)

		out := cmd.OutOrStdout()
		if raw || !colorize.Enabled() {
			_, err := fmt.Fprint(out, md)
			return err
		}

		renderer, err := styles.GetMarkdownRenderer(width)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		rendered, err := renderer.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func init() {
	reportCmd.Flags().IntP("top", "n", 20, "Number of functions listed; 0 lists all")
	reportCmd.Flags().IntP("width", "w", 100, "Word wrap width")
	reportCmd.Flags().Bool("markdown", false, "Print raw markdown")
	rootCmd.AddCommand(reportCmd)
}
