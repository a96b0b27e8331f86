package logging

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// RecoverPanic logs a recovered panic with its stack and runs cleanup.
// It must be called directly by a deferred statement.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		slog.Error(fmt.Sprintf("Panic in %s", name),
			"panic", r,
			"stack", string(debug.Stack()))
		if cleanup != nil {
			cleanup()
		}
	}
}
