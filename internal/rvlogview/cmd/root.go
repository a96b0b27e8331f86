package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"rvlogview/internal/config"
	"rvlogview/internal/logging"
)

var logger *logging.LoggerCloser

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().String("disasm", "", "Disassembly listing (default $DISASM_PATH or ./disasm.txt)")
	rootCmd.PersistentFlags().String("log", "", "Emulator execution log (default $LOG_PATH or ./emu.log)")
	rootCmd.PersistentFlags().Bool("cache", false, "Reuse file contents until they change on disk")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	addServeFlags(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:   "rvlogview",
	Short: "Cross-reference emulator block executions with a disassembly",
	Long: `rvlogview serves a two-pane page: block execution entries from an emulator
log on the left, the disassembly listing on the right. Selecting an entry
highlights the instructions of that block.

Without a subcommand it runs the web viewer, like "rvlogview serve".`,
	Example: `
# Serve ./disasm.txt and ./emu.log on port 3001
rvlogview

# Point at other files and port
DISASM_PATH=build/kernel.S LOG_PATH=emu.log rvlogview serve -p 8080

# Show one block in the terminal
rvlogview disasm --start 0x8000377c --end 0x8000379c
  `,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := ResolveCwd(cmd); err != nil {
			return err
		}

		debug, _ := cmd.Flags().GetBool("debug")
		logger = logging.NewLogger()
		logging.Setup(logger, debug || logging.IsDebug())

		// Plain output when piped
		if !term.IsTerminal(os.Stdout.Fd()) {
			os.Setenv("RVLOGVIEW_NO_COLOR", "1")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// loadConfig builds the configuration from defaults, the environment and
// the flags of cmd, in increasing precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("disasm") {
		cfg.DisasmPath, _ = flags.GetString("disasm")
	}
	if flags.Changed("log") {
		cfg.LogPath, _ = flags.GetString("log")
	}
	if flags.Changed("cache") {
		cfg.Cache, _ = flags.GetBool("cache")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Lookup("host") != nil && flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Lookup("public") != nil && flags.Changed("public") {
		cfg.PublicDir, _ = flags.GetString("public")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	slog.Debug("Configuration", "disasm", cfg.DisasmPath, "log", cfg.LogPath, "addr", cfg.Addr())
	return cfg, nil
}

func Execute() {
	// Bypass fang's styled help and errors when output is being piped
	if !term.IsTerminal(os.Stdout.Fd()) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := rootCmd.ExecuteContext(ctx)
		stop()
		if err != nil {
			os.Exit(exitCode(err))
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}
