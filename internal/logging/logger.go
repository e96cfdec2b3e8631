package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Accepted level names, as written in config and shown by `todolist logs`.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogFileName is the file NewLogger writes inside its directory.
const LogFileName = "debug.log"

var slogLevels = map[string]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// sink is the file shared by a Logger and all of its children.
type sink struct {
	mu sync.Mutex
	io.Closer
}

// Logger writes JSON lines through log/slog. Children made with the With*
// methods share the parent's output. Safe for concurrent use.
type Logger struct {
	slog   *slog.Logger
	closer *sink
}

// NewLogger logs at level and above to dir/debug.log, rotated per rotation.
// An empty dir logs to stderr. Unknown levels mean INFO.
func NewLogger(dir string, level string, rotation RotationConfig) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: slogLevels[ParseLevel(level)]}
	if dir == "" {
		return &Logger{slog: slog.New(slog.NewJSONHandler(os.Stderr, opts))}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	w, err := NewRotatingWriter(filepath.Join(dir, LogFileName), rotation)
	if err != nil {
		return nil, err
	}
	return &Logger{
		slog:   slog.New(slog.NewJSONHandler(w, opts)),
		closer: &sink{Closer: w},
	}, nil
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{slog: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

func (l *Logger) child(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), closer: l.closer}
}

// WithUser tags entries with the selected user id.
func (l *Logger) WithUser(userID int) *Logger { return l.child("user_id", userID) }

// WithRequest tags entries with an X-Request-ID.
func (l *Logger) WithRequest(requestID string) *Logger { return l.child("request_id", requestID) }

// WithComponent tags entries with the emitting component, e.g. "api".
func (l *Logger) WithComponent(name string) *Logger { return l.child("component", name) }

// With adds key/value pairs. Pairs whose key is not a string are dropped.
func (l *Logger) With(args ...any) *Logger {
	kept := make([]any, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		if _, ok := args[i].(string); ok {
			kept = append(kept, args[i], args[i+1])
		}
	}
	if len(kept) == 0 {
		return l
	}
	return l.child(kept...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(slog.LevelError, msg, args)
}

func (l *Logger) log(level slog.Level, msg string, args []any) {
	l.slog.Log(context.Background(), level, msg, args...)
}

// Close closes the log file for this logger and every child. It is a no-op
// for stderr and nop loggers, and after the first call.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	l.closer.mu.Lock()
	defer l.closer.mu.Unlock()
	if l.closer.Closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer.Closer = nil
	if err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// ParseLevel upper-cases level, mapping anything unrecognised to LevelInfo.
func ParseLevel(level string) string {
	level = strings.ToUpper(level)
	if _, ok := slogLevels[level]; ok {
		return level
	}
	return LevelInfo
}

// ValidLevels lists the level names from most to least verbose.
func ValidLevels() []string {
	levels := make([]string, 0, len(slogLevels))
	for name := range slogLevels {
		levels = append(levels, name)
	}
	slices.SortFunc(levels, func(a, b string) int { return int(slogLevels[a] - slogLevels[b]) })
	return levels
}
