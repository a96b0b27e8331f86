package colorize

import (
	"strings"
	"testing"

	"rvlogview/internal/disasm"
)

const listing = `0000000080000000 <_entry>:
    80000000:	00a00513          	li	a0,10
    80000004:	4501                	li	a0,0
    80000006:	0000100f          	fence.i
    8000000a:	00000013          	nop
    8000000e:	00000013          	nop`

func TestListingPlain(t *testing.T) {
	t.Setenv("RVLOGVIEW_NO_COLOR", "1")
	lines := disasm.Parse(listing)

	got := Listing(lines, Options{Context: -1})
	if strings.Contains(got, "> ") {
		t.Errorf("unexpected marker without range:\n%s", got)
	}
	if n := strings.Count(got, "\n"); n != len(lines) {
		t.Errorf("got %d lines, want %d", n, len(lines))
	}
}

func TestListingContextWindow(t *testing.T) {
	t.Setenv("RVLOGVIEW_NO_COLOR", "1")
	lines := disasm.Parse(listing)

	got := Listing(lines, Options{Range: &disasm.Range{Start: 0x80000004, End: 0x80000006}, Context: 1})
	want := "" +
		"      80000000:\t00a00513          \tli\ta0,10\n" +
		">     80000004:\t4501                \tli\ta0,0\n" +
		">     80000006:\t0000100f          \tfence.i\n" +
		"      8000000a:\t00000013          \tnop\n"
	if got != want {
		t.Errorf("Listing =\n%q\nwant\n%q", got, want)
	}
}

func TestListingNoMatch(t *testing.T) {
	t.Setenv("RVLOGVIEW_NO_COLOR", "1")
	got := Listing(disasm.Parse(listing), Options{Range: &disasm.Range{Start: 1, End: 2}, Context: 3})
	if !strings.HasPrefix(got, "; no instructions in 0x1..0x2") {
		t.Errorf("Listing = %q", got)
	}
}

func TestListingDecode(t *testing.T) {
	t.Setenv("RVLOGVIEW_NO_COLOR", "1")
	got := Listing(disasm.Parse(listing), Options{Range: &disasm.Range{Start: 0x80000000, End: 0x80000000}, Context: 0, Decode: true})
	if !strings.Contains(got, "\t; ") {
		t.Errorf("decoded text missing:\n%s", got)
	}
}

func TestLineColors(t *testing.T) {
	t.Setenv("RVLOGVIEW_NO_COLOR", "")
	t.Setenv("NO_COLOR", "")
	ln := disasm.ParseLine("    80000000:\t00a00513\tli\ta0,10")
	got := Line(ln)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Line produced no escape sequences: %q", got)
	}
	if !strings.Contains(got, "80000000") {
		t.Errorf("address lost: %q", got)
	}

	t.Setenv("RVLOGVIEW_NO_COLOR", "1")
	if got := Line(ln); got != ln.Raw {
		t.Errorf("Line with colors disabled = %q", got)
	}
}
