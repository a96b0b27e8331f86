// Package execlog extracts block execution entries from emulator logs.
package execlog

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"rvlogview/internal/disasm"
)

// Marker identifies a block execution line.
const Marker = "Block execution:"

var (
	// entryRe extracts whatever addresses follow the marker; both are optional.
	entryRe = regexp.MustCompile(`Block execution:\s*(0x[0-9A-Fa-f]+)?\s*(?:to\s*(0x[0-9A-Fa-f]+))?`)

	// recordRe is the exact line format written by the emulator's cpu logger:
	// [2026-01-18T09:33:55Z INFO  rv_emu::cpu] Block execution: 0x8000377c to 0x8000379c
	recordRe = regexp.MustCompile(`^\[(.+?)\s+INFO\s+rv_emu::cpu\]\s+Block execution:\s+(0x[0-9A-Fa-f]+)\s+to\s+(0x[0-9A-Fa-f]+)\s*$`)
)

// Entry is a log line containing Marker. Start and End hold the hex
// literals found after it and are empty when absent.
type Entry struct {
	Line  string
	Start string
	End   string
}

// Range returns the highlight range of the entry when both addresses were
// found and parse.
func (e Entry) Range() (disasm.Range, bool) {
	return disasm.ParseRange(e.Start, e.End)
}

// Scan returns an Entry for every line of text containing Marker, in order.
func Scan(text string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		if e, ok := ScanLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// ScanLine returns the entry for a single line.
func ScanLine(line string) (Entry, bool) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	if !strings.Contains(line, Marker) {
		return Entry{}, false
	}
	e := Entry{Line: line}
	if m := entryRe.FindStringSubmatch(line); m != nil {
		e.Start, e.End = m[1], m[2]
	}
	return e, true
}

// Record is a strictly formatted block execution line from the emulator.
type Record struct {
	Line      string
	Timestamp string
	Start     uint64
	End       uint64
}

// ParseRecord matches line against the emulator's own log format. Lines
// that merely mention the marker are rejected.
func ParseRecord(line string) (Record, bool) {
	line = strings.TrimSuffix(line, "\r")
	m := recordRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	start, err := strconv.ParseUint(m[2][2:], 16, 64)
	if err != nil {
		return Record{}, false
	}
	end, err := strconv.ParseUint(m[3][2:], 16, 64)
	if err != nil {
		return Record{}, false
	}
	return Record{Line: line, Timestamp: m[1], Start: start, End: end}, true
}
