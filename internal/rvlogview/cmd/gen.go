package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rvlogview/internal/elfx"
)

var genCmd = &cobra.Command{
	Use:   "gen <elf>",
	Short: "Write a disassembly listing from a RISC-V ELF image",
	Long: `Disassemble every function symbol of a RISC-V ELF image into the listing
format the viewer reads, for machines without a RISC-V objdump.`,
	Example: `
# Regenerate disasm.txt from the kernel image
rvlogview gen kernel/kernel -o disasm.txt
  `,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")

		im, err := elfx.Open(args[0])
		if err != nil {
			return err
		}
		defer im.Close()

		if len(im.Syms) == 0 {
			return fmt.Errorf("%s: no function symbols", args[0])
		}
		slog.Debug("Loaded ELF image", "path", args[0], "functions", len(im.Syms), "text", fmt.Sprintf("%#x", im.Text.VA))

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create listing: %w", err)
			}
			defer f.Close()
			w = f
		}
		if err := im.Dump(w); err != nil {
			return fmt.Errorf("failed to write listing: %w", err)
		}
		return nil
	},
}

func init() {
	genCmd.Flags().StringP("output", "o", "", "Write the listing to this file instead of stdout")
	rootCmd.AddCommand(genCmd)
}
