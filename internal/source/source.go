// Package source reads the text files produced by the emulator. A file that
// does not exist reads as empty text.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Reader returns the current content of a text source.
type Reader interface {
	Read() (string, error)
}

// File reads Path on every call. With caching enabled the content is kept
// and the file is read again only when its size or modification time
// changes.
type File struct {
	Path  string
	cache bool

	mu      sync.Mutex
	size    int64
	modTime time.Time
	text    string
	valid   bool
}

// NewFile returns a File for path.
func NewFile(path string, cache bool) *File {
	return &File{Path: path, cache: cache}
}

// Read returns the file content. A missing file yields "" and a nil error.
func (f *File) Read() (string, error) {
	if !f.cache {
		return readFile(f.Path)
	}

	fi, err := os.Stat(f.Path)
	if err != nil {
		f.invalidate()
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat %s: %w", f.Path, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.valid && f.size == fi.Size() && f.modTime.Equal(fi.ModTime()) {
		return f.text, nil
	}

	text, err := readFile(f.Path)
	if err != nil {
		f.valid = false
		return "", err
	}
	f.text, f.size, f.modTime, f.valid = text, fi.Size(), fi.ModTime(), true
	return text, nil
}

func (f *File) invalidate() {
	f.mu.Lock()
	f.valid = false
	f.text = ""
	f.mu.Unlock()
}

// ReadOrEmpty reads r and degrades every failure to empty text. Failures
// other than a missing file are logged.
func ReadOrEmpty(r Reader) string {
	text, err := r.Read()
	if err != nil {
		slog.Warn("Failed to read source, using empty text", "error", err)
		return ""
	}
	return text
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
