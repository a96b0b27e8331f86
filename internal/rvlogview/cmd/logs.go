package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"rvlogview/internal/execlog"
	"rvlogview/internal/rvlogview/styles"
	"rvlogview/internal/source"
	"rvlogview/internal/ui/colorize"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List block execution entries",
	Long: `Print every log line containing "Block execution:" with the addresses
extracted from it. With --follow, keep watching the log for new entries.`,
	Example: `
# List entries
rvlogview logs

# Watch a running emulator
rvlogview logs -f --log emu.log
  `,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		follow, _ := cmd.Flags().GetBool("follow")
		if !follow {
			text := source.ReadOrEmpty(source.NewFile(cfg.LogPath, false))
			return printEntries(out, execlog.Scan(text))
		}

		fromStart, _ := cmd.Flags().GetBool("from-start")
		poll, _ := cmd.Flags().GetBool("poll")
		slog.Info("Following log", "path", cfg.LogPath)
		return execlog.Follow(cmd.Context(), cfg.LogPath,
			execlog.FollowOptions{FromStart: fromStart, Poll: poll},
			func(e execlog.Entry) { printEntry(out, e) })
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Wait for new entries")
	logsCmd.Flags().Bool("from-start", false, "With --follow, print existing entries first")
	logsCmd.Flags().Bool("poll", false, "With --follow, poll the file instead of using inotify")
	rootCmd.AddCommand(logsCmd)
}

func printEntries(w io.Writer, entries []execlog.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No matching log lines.")
		return err
	}
	for _, e := range entries {
		printEntry(w, e)
	}
	return nil
}

func printEntry(w io.Writer, e execlog.Entry) {
	start, end := orDash(e.Start), orDash(e.End)
	if colorize.Enabled() {
		start, end = styles.Addr.Render(start), styles.Addr.Render(end)
	}
	fmt.Fprintf(w, "%s %s  %s\n", start, end, e.Line)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
