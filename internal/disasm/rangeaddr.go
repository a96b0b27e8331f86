package disasm

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive address interval [Start, End].
//
// The end address of a logged block is the last instruction executed, so
// End itself is part of the range.
type Range struct{ Start, End uint64 }

// Contains reports whether addr lies within r, both ends included.
func (r Range) Contains(addr uint64) bool {
	return r.Start <= addr && addr <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%#x..%#x", r.Start, r.End)
}

// ParseRange builds a Range from two integer literals. Both must be present
// and valid; otherwise ok is false and the caller renders without a range.
func ParseRange(start, end string) (r Range, ok bool) {
	if start == "" || end == "" {
		return Range{}, false
	}
	s, err := ParseAddr(start)
	if err != nil {
		return Range{}, false
	}
	e, err := ParseAddr(end)
	if err != nil {
		return Range{}, false
	}
	return Range{Start: s, End: e}, true
}

// ParseAddr parses a decimal or 0x/0o/0b prefixed integer literal.
// Leading zeros in a decimal literal do not select octal.
func ParseAddr(s string) (uint64, error) {
	lit := s
	s = strings.TrimSpace(s)
	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			s = s[2:]
		}
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address literal %q: %w", lit, err)
	}
	return v, nil
}
