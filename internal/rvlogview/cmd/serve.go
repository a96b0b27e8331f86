package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"rvlogview/internal/config"
	"rvlogview/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web viewer",
	Long: `Serve the viewer page and its two fragment endpoints:

  GET /api/logs                 block execution entries as buttons
  GET /api/disasm?start=&end=   the disassembly, with [start, end] highlighted

Both files are read again on every request.`,
	Example: `
# Serve on another port
rvlogview serve -p 8080

# Label entries with the function they start in
rvlogview serve --func-labels
  `,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("port", "p", config.DefaultPort, "HTTP port (default $PORT or 3001)")
	cmd.Flags().String("host", "", "Interface to listen on (default all)")
	cmd.Flags().String("public", "", "Serve the page from this directory instead of the built-in one")
	cmd.Flags().Bool("func-labels", false, "Append the containing function to each log entry")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	labels, _ := cmd.Flags().GetBool("func-labels")

	srv, err := server.New(cfg, server.WithFuncLabels(labels))
	if err != nil {
		return err
	}

	slog.Info("Starting viewer", "DISASM_PATH", cfg.DisasmPath, "LOG_PATH", cfg.LogPath)
	return srv.ListenAndServe(cmd.Context())
}
