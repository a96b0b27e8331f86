// Package logging provides structured logging with file output support.
// It uses environment variables for configuration and supports file cleanup.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LoggerCloser wraps a logger and provides a Close method for cleanup
type LoggerCloser struct {
	*log.Logger
	closer io.Closer
}

// Close closes the underlying writer if it's closeable
func (lc *LoggerCloser) Close() error {
	if lc.closer != nil {
		return lc.closer.Close()
	}
	return nil
}

// NewLoggerWithWriter creates a new logger with the provided writer
func NewLoggerWithWriter(w io.Writer) *LoggerCloser {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	// Set log level from environment
	lg.SetLevel(levelFromEnv())

	// Set prefix from environment
	prefix := os.Getenv("RVLOGVIEW_LOG_PREFIX")
	if prefix == "" {
		prefix = "rvlogview "
	}

	var closer io.Closer
	if c, ok := w.(io.Closer); ok && w != os.Stderr && w != os.Stdout {
		closer = c
	}

	return &LoggerCloser{
		Logger: lg.WithPrefix(prefix),
		closer: closer,
	}
}

// NewLogger creates a new logger based on environment variables
// RVLOGVIEW_LOG_LEVEL: debug, info, warn, error (default: info)
// RVLOGVIEW_LOG_PREFIX: prefix for log messages (default: "rvlogview ")
// RVLOGVIEW_LOG_TO_FILE: when set to "1", logs to a timestamped file instead of stderr
func NewLogger() *LoggerCloser {
	output := io.Writer(os.Stderr)

	// Check if we should log to file
	if os.Getenv("RVLOGVIEW_LOG_TO_FILE") == "1" {
		// Create timestamped log file
		timestamp := time.Now().Format("20060102-150405")
		logFile := fmt.Sprintf("rvlogview-%s-debug.log", timestamp)

		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err == nil {
			output = f
		}
		// If file creation fails, fall back to stderr
	}

	return NewLoggerWithWriter(output)
}

// Setup installs lg as the slog default so packages can log through
// log/slog. debug forces the debug level regardless of the environment.
func Setup(lg *LoggerCloser, debug bool) {
	if debug {
		lg.SetLevel(log.DebugLevel)
		lg.SetReportCaller(true)
	}
	slog.SetDefault(slog.New(lg.Logger))
}

// IsDebug returns true if debug logging is enabled
func IsDebug() bool {
	return os.Getenv("RVLOGVIEW_LOG_LEVEL") == "debug"
}

func levelFromEnv() log.Level {
	switch os.Getenv("RVLOGVIEW_LOG_LEVEL") {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
