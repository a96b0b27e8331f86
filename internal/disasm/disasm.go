// Package disasm parses objdump-style disassembly listings and renders
// address ranges of them as HTML fragments.
package disasm

import (
	"regexp"
	"strconv"
	"strings"
)

// insnRe matches an instruction line such as "    800090b0:\t12000073\tsret".
var insnRe = regexp.MustCompile(`^\s*([0-9A-Fa-f]+):\s`)

// Line is one line of a disassembly listing.
type Line struct {
	Raw     string // text as it appeared, without the line break
	Addr    uint64 // instruction address, valid when HasAddr is set
	HasAddr bool
}

// Listing is a parsed disassembly text in source order.
type Listing []Line

// Parse splits text on LF or CRLF and records the address of every
// instruction line. Any text parses; an empty text yields one empty line.
func Parse(text string) Listing {
	raw := splitLines(text)
	lines := make(Listing, len(raw))
	for i, s := range raw {
		lines[i] = ParseLine(s)
	}
	return lines
}

// ParseLine parses a single line without a line terminator.
func ParseLine(s string) Line {
	ln := Line{Raw: s}
	m := insnRe.FindStringSubmatch(s)
	if m == nil {
		return ln
	}
	// Tokens wider than 64 bits are left without an address.
	addr, err := strconv.ParseUint(m[1], 16, 64)
	if err != nil {
		return ln
	}
	ln.Addr = addr
	ln.HasAddr = true
	return ln
}

// Instructions returns how many lines carry an address.
func (l Listing) Instructions() int {
	n := 0
	for _, ln := range l {
		if ln.HasAddr {
			n++
		}
	}
	return n
}

// IndexOf returns the position of the first line whose address lies in r,
// or -1.
func (l Listing) IndexOf(r Range) int {
	for i, ln := range l {
		if ln.HasAddr && r.Contains(ln.Addr) {
			return i
		}
	}
	return -1
}

func splitLines(text string) []string {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
