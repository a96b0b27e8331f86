package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rvlogview/internal/disasm"
)

const testListing = `0000000080000000 <_entry>:
    80000000:	00a00513          	li	a0,10
    80000004:	4501                	li	a0,0

00000000800090b0 <_ZN6kernel7userretEv>:
    800090b0:	12000073          	sfence.vma
    800090b4:	10200073          	sret`

const testLog = `[2026-01-18T09:33:55Z INFO  rv_emu::cpu] Booting
[2026-01-18T09:33:55Z INFO  rv_emu::cpu] Block execution: 0x80000000 to 0x80000004
[2026-01-18T09:33:56Z INFO  rv_emu::cpu] Block execution: 0x800090b0 to 0x800090b4
[2026-01-18T09:33:57Z INFO  rv_emu::cpu] Block execution: 0x10 to 0x20
Block execution: 0x80000000 to 0x80000004
`

func writeFixtures(t *testing.T, listing, log string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	disasmPath := filepath.Join(dir, "disasm.txt")
	logPath := filepath.Join(dir, "emu.log")
	if err := os.WriteFile(disasmPath, []byte(listing), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(logPath, []byte(log), 0o644); err != nil {
		t.Fatal(err)
	}
	return disasmPath, logPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RVLOGVIEW_NO_COLOR", "1")
	t.Setenv("RVLOGVIEW_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunAnnotate(t *testing.T) {
	funcs := disasm.IndexFuncs(disasm.Parse(testListing))

	var out bytes.Buffer
	if err := runAnnotate(&out, strings.NewReader(testLog), funcs); err != nil {
		t.Fatalf("runAnnotate: %v", err)
	}

	want := "" +
		"[2026-01-18T09:33:55Z INFO  rv_emu::cpu] Block execution: 0x80000000 to 0x80000004 _entry\n" +
		"[2026-01-18T09:33:56Z INFO  rv_emu::cpu] Block execution: 0x800090b0 to 0x800090b4 kernel::userret()\n" +
		"[2026-01-18T09:33:57Z INFO  rv_emu::cpu] Block execution: 0x10 to 0x20 UNKNOWN\n"
	if out.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestAnnotateWithoutFunctions(t *testing.T) {
	disasmPath, logPath := writeFixtures(t, "    10: nop\n", testLog)
	_, err := execute(t, "annotate", "--disasm", disasmPath, "--log", logPath)
	if !errors.Is(err, errNoFunctions) {
		t.Fatalf("err = %v, want errNoFunctions", err)
	}
	if code := exitCode(err); code != 2 {
		t.Errorf("exitCode = %d, want 2", code)
	}
}

func TestExitCode(t *testing.T) {
	if code := exitCode(errors.New("plain")); code != 1 {
		t.Errorf("exitCode(plain) = %d, want 1", code)
	}
}

func TestDisasmHTML(t *testing.T) {
	disasmPath, logPath := writeFixtures(t, testListing, "")
	out, err := execute(t, "disasm", "--disasm", disasmPath, "--log", logPath,
		"--html", "--start", "0x800090b0", "--end", "0x800090b0")
	if err != nil {
		t.Fatalf("disasm: %v", err)
	}

	want := disasm.RenderHTML(disasm.Parse(testListing), &disasm.Range{Start: 0x800090b0, End: 0x800090b0})
	if out != want {
		t.Errorf("output =\n%s\nwant\n%s", out, want)
	}
}

func TestDisasmRejectsHalfRange(t *testing.T) {
	disasmPath, logPath := writeFixtures(t, testListing, "")
	if _, err := execute(t, "disasm", "--disasm", disasmPath, "--log", logPath, "--html=false", "--start", "0x10", "--end", ""); err == nil {
		t.Error("disasm accepted --start without --end")
	}
}

func TestLogsCommand(t *testing.T) {
	_, logPath := writeFixtures(t, "", testLog)
	out, err := execute(t, "logs", "--log", logPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "0x80000000 0x80000004  [2026-01-18T09:33:55Z") {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestPrintEntriesEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := printEntries(&out, nil); err != nil {
		t.Fatal(err)
	}
	if out.String() != "No matching log lines.\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestReportMarkdown(t *testing.T) {
	disasmPath, logPath := writeFixtures(t, testListing, testLog)
	out, err := execute(t, "report", "--disasm", disasmPath, "--log", logPath, "--markdown")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"| Block entries | 4 |", "| _entry | `0x80000000` | 2 |", "kernel::userret()"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, want := range []string{`"disasmPath"`, `"logPath"`, `"port"`} {
		if !strings.Contains(out, want) {
			t.Errorf("schema missing %s", want)
		}
	}
}
