package elfx

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/arch/riscv64/riscv64asm"
)

// Dump writes an objdump-style listing of every function symbol in the
// image: a "<16 hex digits> <name>:" header followed by one line per
// instruction.
func (im *Image) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, s := range im.Extents() {
		code, ok := im.SliceVA(s.Addr, s.Size)
		if !ok {
			slog.Warn("Symbol outside mapped segments", "name", s.Name, "addr", fmt.Sprintf("%#x", s.Addr))
			continue
		}
		if i > 0 {
			bw.WriteString("\n")
		}
		dumpFunc(bw, s.Name, s.Addr, code)
	}
	return bw.Flush()
}

func dumpFunc(w io.Writer, name string, addr uint64, code []byte) {
	fmt.Fprintf(w, "%016x <%s>:\n", addr, name)
	for len(code) > 0 {
		n := insnLen(code)
		if n > len(code) {
			n = len(code)
		}
		fmt.Fprintf(w, "    %x:\t%-20s\t%s\n", addr, encoding(code[:n]), text(code))
		addr += uint64(n)
		code = code[n:]
	}
}

// insnLen follows the base length encoding: 16-bit when the low two bits
// are not 11, otherwise 32-bit.
func insnLen(code []byte) int {
	if code[0]&0x3 != 0x3 {
		return 2
	}
	return 4
}

// encoding prints the instruction word as objdump does, most significant
// byte first.
func encoding(b []byte) string {
	var sb strings.Builder
	for i := len(b) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02x", b[i])
	}
	return sb.String()
}

func text(code []byte) string {
	inst, err := riscv64asm.Decode(code)
	if err != nil || inst.Len != insnLen(code) {
		return "unimp"
	}
	op, args, found := strings.Cut(riscv64asm.GNUSyntax(inst), " ")
	if !found {
		return op
	}
	return op + "\t" + args
}
