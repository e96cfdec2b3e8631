package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotationConfig bounds the size of debug.log.
type RotationConfig struct {
	// MaxSizeMB is the size at which the log is rotated; 0 never rotates.
	MaxSizeMB int
	// MaxBackups is how many rotated files (debug.log.1 is the newest) to keep.
	MaxBackups int
}

// DefaultRotationConfig matches the logging.max_size_mb and
// logging.max_backups defaults.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{MaxSizeMB: 10, MaxBackups: 3}
}

var errWriterClosed = errors.New("log file is closed")

// RotatingWriter appends to a file and, before a write would push it past
// the size limit, shifts path.N to path.N+1, renames the file to path.1 and
// starts a new one. The oldest backup beyond MaxBackups is removed.
// Safe for concurrent use.
type RotatingWriter struct {
	mu      sync.Mutex
	path    string
	limit   int64
	backups int
	f       *os.File
	size    int64
}

// NewRotatingWriter opens path for appending, creating it and its directory
// as needed.
func NewRotatingWriter(path string, cfg RotationConfig) (*RotatingWriter, error) {
	w := &RotatingWriter{
		path:    path,
		limit:   int64(cfg.MaxSizeMB) << 20,
		backups: cfg.MaxBackups,
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	w.f, w.size = f, info.Size()
	return nil
}

// Write appends p, rotating first when needed. If rotation fails the entry
// still goes to the current file.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return 0, errWriterClosed
	}
	if w.limit > 0 && w.size+int64(len(p)) > w.limit {
		_ = w.rotate()
		if w.f == nil {
			return 0, errWriterClosed
		}
	}
	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *RotatingWriter) backup(n int) string {
	return w.path + "." + fmt.Sprint(n)
}

func (w *RotatingWriter) rotate() error {
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	w.f = nil

	if w.backups > 0 {
		_ = os.Remove(w.backup(w.backups))
		for n := w.backups - 1; n > 0; n-- {
			_ = os.Rename(w.backup(n), w.backup(n+1))
		}
		if err := os.Rename(w.path, w.backup(1)); err != nil {
			return errors.Join(fmt.Errorf("rename log file: %w", err), w.open())
		}
	} else {
		_ = os.Remove(w.path)
	}
	return w.open()
}

// Close flushes and closes the file. Further writes fail; a second Close
// does nothing.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync log file: %w", err)
	}
	return f.Close()
}

// CurrentSize returns the size of the active file in bytes.
func (w *RotatingWriter) CurrentSize() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}
