package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss/v2"

	"rvlogview/internal/disasm"
)

// Enabled reports whether terminal colors are allowed.
func Enabled() bool {
	return os.Getenv("RVLOGVIEW_NO_COLOR") == "" && os.Getenv("NO_COLOR") == ""
}

// getAssemblyLexer returns an appropriate assembly lexer with fallbacks
func getAssemblyLexer() chroma.Lexer {
	// objdump output for RISC-V is closest to GNU as syntax
	candidates := []string{"gas", "GAS", "armasm", "nasm"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getDisasmStyle returns the disassembly style with fallbacks
func getDisasmStyle() *chroma.Style {
	candidates := []string{"rvdisasm-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// Assembly applies syntax highlighting to a block of disassembly.
func Assembly(code string) (string, error) {
	if !Enabled() {
		return code, nil
	}

	lexer := getAssemblyLexer()
	if lexer == nil {
		return code, nil
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code, err
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getDisasmStyle(), iterator); err != nil {
		return code, err
	}
	return buf.String(), nil
}

var (
	addrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	decodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Line colorizes one listing line: the address in gray, function headers in
// orange and the instruction text through chroma.
func Line(ln disasm.Line) string {
	if !Enabled() {
		return ln.Raw
	}
	if !ln.HasAddr {
		if strings.HasSuffix(strings.TrimSpace(ln.Raw), ">:") {
			return headerStyle.Render(ln.Raw)
		}
		return ln.Raw
	}

	addr, rest, _ := strings.Cut(ln.Raw, ":")
	colored, err := Assembly(rest)
	if err != nil {
		colored = rest
	}
	return addrStyle.Render(addr+":") + strings.TrimSuffix(colored, "\n")
}

// Options controls Listing.
type Options struct {
	// Range marks lines to highlight; nil shows the whole listing plainly.
	Range *disasm.Range
	// Context is the number of lines kept around the highlighted run.
	// A negative value keeps every line.
	Context int
	// Decode appends the re-decoded encoding of each instruction.
	Decode bool
}

// Listing renders lines for a terminal, marking highlighted lines with a
// gutter arrow.
func Listing(lines disasm.Listing, opts Options) string {
	from, to := 0, len(lines)
	if opts.Range != nil && opts.Context >= 0 {
		first, last := -1, -1
		for i, ln := range lines {
			if ln.HasAddr && opts.Range.Contains(ln.Addr) {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		if first < 0 {
			return fmt.Sprintf("; no instructions in %s\n", opts.Range)
		}
		from = max(first-opts.Context, 0)
		to = min(last+opts.Context+1, len(lines))
	}

	var b strings.Builder
	for _, ln := range lines[from:to] {
		hl := opts.Range != nil && ln.HasAddr && opts.Range.Contains(ln.Addr)
		switch {
		case hl && Enabled():
			b.WriteString(gutterStyle.Render("▶ "))
		case hl:
			b.WriteString("> ")
		default:
			b.WriteString("  ")
		}
		b.WriteString(Line(ln))
		if opts.Decode && ln.HasAddr {
			if text, err := disasm.DecodeWord(ln); err == nil {
				note := "\t; " + text
				if Enabled() {
					note = decodeStyle.Render(note)
				}
				b.WriteString(note)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
