package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rvlogview/internal/disasm"
	"rvlogview/internal/source"
	"rvlogview/internal/ui/colorize"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm",
	Short: "Show the disassembly with a block highlighted",
	Long: `Print the disassembly listing. When both --start and --end are given, the
instructions in [start, end] are marked and only --context lines around them
are shown. Addresses accept decimal or 0x-prefixed hex. With --html the
fragment served by /api/disasm is printed instead.`,
	Example: `
# Show one block with 5 lines of context
rvlogview disasm --start 0x8000377c --end 0x8000379c -C 5

# Same, re-decoding each instruction word
rvlogview disasm --start 0x8000377c --end 0x8000379c --decode
  `,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		ctxLines, _ := cmd.Flags().GetInt("context")
		decode, _ := cmd.Flags().GetBool("decode")
		asHTML, _ := cmd.Flags().GetBool("html")

		lines := disasm.Parse(source.ReadOrEmpty(source.NewFile(cfg.DisasmPath, false)))

		var hl *disasm.Range
		if start != "" || end != "" {
			r, ok := disasm.ParseRange(start, end)
			if !ok {
				return fmt.Errorf("--start and --end must both be integer literals, got %q and %q", start, end)
			}
			hl = &r
		}

		out := cmd.OutOrStdout()
		if asHTML {
			return disasm.Render(out, lines, hl)
		}
		_, err = fmt.Fprint(out, colorize.Listing(lines, colorize.Options{
			Range:   hl,
			Context: ctxLines,
			Decode:  decode,
		}))
		return err
	},
}

func init() {
	disasmCmd.Flags().String("start", "", "First address of the block")
	disasmCmd.Flags().String("end", "", "Last address of the block (inclusive)")
	disasmCmd.Flags().IntP("context", "C", 10, "Lines shown around the block; -1 shows everything")
	disasmCmd.Flags().Bool("decode", false, "Append the RISC-V decoding of each instruction word")
	disasmCmd.Flags().Bool("html", false, "Print the HTML fragment served by /api/disasm")
	rootCmd.AddCommand(disasmCmd)
}
