package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rvlogview/internal/disasm"
	"rvlogview/internal/execlog"
	"rvlogview/internal/source"
)

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

var errNoFunctions = errors.New("could not find any function headers in disassembly; expected lines like: 00000000800090b0 <userret>:")

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Append the containing function to each block execution line",
	Long: `Print every emulator line of the form

  [<time> INFO  rv_emu::cpu] Block execution: 0x<start> to 0x<end>

followed by the name of the function containing the start address, or
UNKNOWN. Functions are taken from the header lines of the disassembly and
extend to the next header.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		funcs := disasm.IndexFuncs(disasm.Parse(source.ReadOrEmpty(source.NewFile(cfg.DisasmPath, false))))
		if funcs.Len() == 0 {
			return &exitError{code: 2, err: errNoFunctions}
		}

		f, err := os.Open(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer f.Close()

		return runAnnotate(cmd.OutOrStdout(), f, funcs)
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}

// runAnnotate streams log lines from r, writing matching ones to w with the
// function name appended.
func runAnnotate(w io.Writer, r io.Reader, funcs *disasm.FuncIndex) error {
	bw := bufio.NewWriter(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		rec, ok := execlog.ParseRecord(sc.Text())
		if !ok {
			continue
		}
		name := "UNKNOWN"
		if fn, ok := funcs.Lookup(rec.Start); ok {
			name = fn.Display()
		}
		fmt.Fprintf(bw, "%s %s\n", rec.Line, name)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	return bw.Flush()
}
