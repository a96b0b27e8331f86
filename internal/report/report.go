// Package report summarizes an execution log against a disassembly listing.
package report

import (
	"fmt"
	"sort"
	"strings"

	"rvlogview/internal/disasm"
	"rvlogview/internal/execlog"
)

// FuncCount is the number of blocks that started inside one function.
type FuncCount struct {
	Name   string
	Start  uint64
	Blocks int
}

// Summary is the result of Build.
type Summary struct {
	Entries      int // lines containing the marker
	Ranged       int // entries with both addresses
	Distinct     int // distinct [start, end] ranges
	Instructions int // instruction lines in the listing
	Functions    int // function headers in the listing
	Unknown      int // ranged entries outside every function
	Top          []FuncCount
}

// Build counts entries per function. At most top functions are kept,
// busiest first; top <= 0 keeps all.
func Build(entries []execlog.Entry, lines disasm.Listing, top int) Summary {
	funcs := disasm.IndexFuncs(lines)
	s := Summary{
		Entries:      len(entries),
		Instructions: lines.Instructions(),
		Functions:    funcs.Len(),
	}

	seen := make(map[disasm.Range]bool)
	counts := make(map[uint64]*FuncCount)
	for _, e := range entries {
		r, ok := e.Range()
		if !ok {
			continue
		}
		s.Ranged++
		if !seen[r] {
			seen[r] = true
			s.Distinct++
		}
		f, ok := funcs.Lookup(r.Start)
		if !ok {
			s.Unknown++
			continue
		}
		fc := counts[f.Start]
		if fc == nil {
			fc = &FuncCount{Name: f.Display(), Start: f.Start}
			counts[f.Start] = fc
		}
		fc.Blocks++
	}

	for _, fc := range counts {
		s.Top = append(s.Top, *fc)
	}
	sort.Slice(s.Top, func(i, j int) bool {
		if s.Top[i].Blocks != s.Top[j].Blocks {
			return s.Top[i].Blocks > s.Top[j].Blocks
		}
		return s.Top[i].Start < s.Top[j].Start
	})
	if top > 0 && len(s.Top) > top {
		s.Top = s.Top[:top]
	}
	return s
}

// Markdown renders s as a markdown document.
func (s Summary) Markdown(logPath, disasmPath string) string {
	var b strings.Builder
	b.WriteString("# Execution report\n\n")
	fmt.Fprintf(&b, "- Log: `%s`\n", logPath)
	fmt.Fprintf(&b, "- Disassembly: `%s`\n\n", disasmPath)

	b.WriteString("## Totals\n\n")
	b.WriteString("| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Block entries | %d |\n", s.Entries)
	fmt.Fprintf(&b, "| With address range | %d |\n", s.Ranged)
	fmt.Fprintf(&b, "| Distinct ranges | %d |\n", s.Distinct)
	fmt.Fprintf(&b, "| Instructions in listing | %d |\n", s.Instructions)
	fmt.Fprintf(&b, "| Functions in listing | %d |\n", s.Functions)
	fmt.Fprintf(&b, "| Outside any function | %d |\n\n", s.Unknown)

	b.WriteString("## Busiest functions\n\n")
	if len(s.Top) == 0 {
		b.WriteString("*No blocks matched a function.*\n")
		return b.String()
	}
	b.WriteString("| Function | Start | Blocks |\n|---|---|---:|\n")
	for _, fc := range s.Top {
		fmt.Fprintf(&b, "| %s | `%#x` | %d |\n", escapeCell(fc.Name), fc.Start, fc.Blocks)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
