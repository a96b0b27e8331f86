package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerWithWriterLevel(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"", false, true},
		{"debug", true, true},
		{"warn", false, false},
		{"error", false, false},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			t.Setenv("RVLOGVIEW_LOG_LEVEL", tt.level)
			t.Setenv("RVLOGVIEW_LOG_PREFIX", "")

			var buf bytes.Buffer
			lg := NewLoggerWithWriter(&buf)
			lg.Debug("debug message")
			lg.Info("info message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.debugSeen {
				t.Errorf("debug logged = %v, want %v\n%s", got, tt.debugSeen, out)
			}
			if got := strings.Contains(out, "info message"); got != tt.infoSeen {
				t.Errorf("info logged = %v, want %v\n%s", got, tt.infoSeen, out)
			}
			if tt.infoSeen && !strings.Contains(out, "rvlogview") {
				t.Errorf("default prefix missing:\n%s", out)
			}
			if err := lg.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
		})
	}
}

func TestSetupInstallsSlogDefault(t *testing.T) {
	t.Setenv("RVLOGVIEW_LOG_LEVEL", "")
	t.Setenv("RVLOGVIEW_LOG_PREFIX", "test ")
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Setup(NewLoggerWithWriter(&buf), true)
	slog.Debug("through slog", "path", "/api/logs")

	out := buf.String()
	if !strings.Contains(out, "through slog") || !strings.Contains(out, "/api/logs") {
		t.Errorf("slog output not routed to logger:\n%s", out)
	}
}

func TestRecoverPanic(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	cleaned := false
	func() {
		defer RecoverPanic("worker", func() { cleaned = true })
		panic("boom")
	}()

	if !cleaned {
		t.Error("cleanup was not called")
	}
	if !strings.Contains(buf.String(), "Panic in worker") {
		t.Errorf("panic not logged:\n%s", buf.String())
	}
}
