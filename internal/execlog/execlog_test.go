package execlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rvlogview/internal/disasm"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Entry
	}{
		{
			name: "empty log",
			text: "",
			want: nil,
		},
		{
			name: "start and end",
			text: "Block execution: 0x1000 to 0x1010",
			want: []Entry{{Line: "Block execution: 0x1000 to 0x1010", Start: "0x1000", End: "0x1010"}},
		},
		{
			name: "no hex literals",
			text: "[t INFO cpu] Block execution: (skipped)",
			want: []Entry{{Line: "[t INFO cpu] Block execution: (skipped)"}},
		},
		{
			name: "start only",
			text: "Block execution: 0xABCD",
			want: []Entry{{Line: "Block execution: 0xABCD", Start: "0xABCD"}},
		},
		{
			name: "drops other lines and trims trailing space",
			text: "boot\n[2026-01-18T09:33:55Z INFO  rv_emu::cpu] Block execution: 0x8000377c to 0x8000379c  \r\nuart: hello\n" +
				"Block execution:0x10 to0x20\t\n",
			want: []Entry{
				{
					Line:  "[2026-01-18T09:33:55Z INFO  rv_emu::cpu] Block execution: 0x8000377c to 0x8000379c",
					Start: "0x8000377c",
					End:   "0x8000379c",
				},
				{Line: "Block execution:0x10 to0x20", Start: "0x10", End: "0x20"},
			},
		},
		{
			name: "marker is case sensitive",
			text: "block execution: 0x1 to 0x2",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEntryRange(t *testing.T) {
	r, ok := Entry{Start: "0x1000", End: "0x1010"}.Range()
	if !ok || r != (disasm.Range{Start: 0x1000, End: 0x1010}) {
		t.Errorf("Range() = %v, %v", r, ok)
	}
	if _, ok := (Entry{Start: "0x1000"}).Range(); ok {
		t.Error("Range() with missing end succeeded")
	}
}

func TestParseRecord(t *testing.T) {
	rec, ok := ParseRecord("[2026-01-18T09:33:55Z INFO  rv_emu::cpu] Block execution: 0x8000377c to 0x8000379c")
	if !ok {
		t.Fatal("ParseRecord rejected an emulator line")
	}
	if rec.Timestamp != "2026-01-18T09:33:55Z" || rec.Start != 0x8000377c || rec.End != 0x8000379c {
		t.Errorf("record = %+v", rec)
	}

	for _, line := range []string{
		"Block execution: 0x1000 to 0x1010",
		"[2026-01-18T09:33:55Z WARN  rv_emu::cpu] Block execution: 0x1 to 0x2",
		"[2026-01-18T09:33:55Z INFO  rv_emu::cpu] Block execution: 0x1",
	} {
		if _, ok := ParseRecord(line); ok {
			t.Errorf("ParseRecord(%q) accepted", line)
		}
	}
}

func TestFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emu.log")
	if err := os.WriteFile(path, []byte("boot\nBlock execution: 0x1 to 0x2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Entry, 8)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, FollowOptions{FromStart: true, Poll: true}, func(e Entry) {
			got <- e
		})
	}()

	select {
	case e := <-got:
		if e.Start != "0x1" || e.End != "0x2" {
			t.Errorf("first entry = %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for existing entry")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("noise\nBlock execution: 0x3 to 0x4\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	select {
	case e := <-got:
		if e.Start != "0x3" || e.End != "0x4" {
			t.Errorf("appended entry = %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for appended entry")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Follow returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Follow did not stop after cancel")
	}
}
