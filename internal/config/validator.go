package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError is one bad config value.
type ValidationError struct {
	Field   string // dotted key, e.g. "api.base_url"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is every problem Validate found, in key order.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}
	lines := make([]string, 0, len(e)+1)
	lines = append(lines, fmt.Sprintf("%d validation errors:", len(e)))
	for i, v := range e {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, v))
	}
	return strings.Join(lines, "\n") + "\n"
}

// ValidLogLevels lists the accepted logging.level values, lowercase.
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

const (
	minTextWidth = 10 // room left for text beside the checkbox and controls
	maxLogSizeMB = 1000
)

type checker []ValidationError

func (c *checker) expect(ok bool, field string, value any, format string, args ...any) {
	if !ok {
		*c = append(*c, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
	}
}

func oneOf(valid []string) string {
	return "must be one of: " + strings.Join(valid, ", ")
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate returns every invalid value in c; nil means c is usable.
func (c *Config) Validate() []ValidationError {
	var v checker

	v.expect(isHTTPURL(c.API.BaseURL), "api.base_url", c.API.BaseURL,
		"must be an absolute http or https URL")
	v.expect(c.API.TimeoutSeconds >= 0, "api.timeout_seconds", c.API.TimeoutSeconds,
		"must be non-negative")

	v.expect(slices.Contains(ValidSources(), c.Tasks.Source), "tasks.source", c.Tasks.Source,
		"%s", oneOf(ValidSources()))
	v.expect(c.Tasks.FallbackOwnerID >= 0, "tasks.fallback_owner_id", c.Tasks.FallbackOwnerID,
		"must be non-negative")

	v.expect(c.TUI.MaxTextWidth >= minTextWidth, "tui.max_text_width", c.TUI.MaxTextWidth,
		"must be at least %d", minTextWidth)

	level := strings.ToLower(c.Logging.Level)
	v.expect(level == "" || slices.Contains(ValidLogLevels(), level), "logging.level", c.Logging.Level,
		"%s", oneOf(ValidLogLevels()))
	v.expect(c.Logging.MaxSizeMB > 0 && c.Logging.MaxSizeMB <= maxLogSizeMB, "logging.max_size_mb", c.Logging.MaxSizeMB,
		"must be between 1 and %d", maxLogSizeMB)
	v.expect(c.Logging.MaxBackups >= 0, "logging.max_backups", c.Logging.MaxBackups,
		"must be non-negative")

	v.expect(c.Export.MaxParallel >= 1, "export.max_parallel", c.Export.MaxParallel,
		"must be at least 1")

	return v
}
