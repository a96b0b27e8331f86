package execlog

import (
	"context"
	"fmt"
	"io"

	"github.com/nxadm/tail"
)

// FollowOptions controls Follow.
type FollowOptions struct {
	// FromStart replays the existing content before waiting for new lines.
	FromStart bool
	// Poll watches the file by polling instead of inotify.
	Poll bool
}

// Follow tails the log at path and calls fn for every block execution
// entry appended to it. The file may not exist yet. Follow returns nil when
// ctx is cancelled.
func Follow(ctx context.Context, path string, opts FollowOptions, fn func(Entry)) error {
	cfg := tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Poll:      opts.Poll,
		Logger:    tail.DiscardingLogger,
	}
	if !opts.FromStart {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to tail %s: %w", path, err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			_ = t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				_ = t.Stop()
				return fmt.Errorf("failed to read %s: %w", path, line.Err)
			}
			if e, ok := ScanLine(line.Text); ok {
				fn(e)
			}
		}
	}
}
