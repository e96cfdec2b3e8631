package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Task sources
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Config represents the complete todolist configuration
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Tasks   TasksConfig   `mapstructure:"tasks" yaml:"tasks"`
	TUI     TUIConfig     `mapstructure:"tui" yaml:"tui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Export  ExportConfig  `mapstructure:"export" yaml:"export"`
	MockAPI MockAPIConfig `mapstructure:"mock_api" yaml:"mock_api"`
}

// APIConfig controls the remote task API client
type APIConfig struct {
	// BaseURL is the root of the users/todos API (default: the public jsonplaceholder API)
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// TimeoutSeconds bounds each request. 0 leaves the transport default in place.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// TasksConfig selects which task list variant runs
type TasksConfig struct {
	// Source is "remote" (users and tasks come from the API) or "local"
	// (no user selector, a fixed seed list, nothing leaves the process)
	Source string `mapstructure:"source" yaml:"source"`
	// RemoteDelete sends DELETE /todos/{id} and removes the row only on success (default: true)
	RemoteDelete bool `mapstructure:"remote_delete" yaml:"remote_delete"`
	// PersistAdds sends PUT /todos/{id} after a local add (default: false)
	PersistAdds bool `mapstructure:"persist_adds" yaml:"persist_adds"`
	// DiscardStaleFetches drops task fetch responses for anything but the most
	// recent selection. false reproduces last-response-wins (default: true)
	DiscardStaleFetches bool `mapstructure:"discard_stale_fetches" yaml:"discard_stale_fetches"`
	// FallbackOwnerID is the owner of tasks added while no user is selected (default: 1)
	FallbackOwnerID int `mapstructure:"fallback_owner_id" yaml:"fallback_owner_id"`
}

// TUIConfig controls the terminal UI
type TUIConfig struct {
	// MaxTextWidth caps the rendered width of a task's text (default: 60)
	MaxTextWidth int `mapstructure:"max_text_width" yaml:"max_text_width"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is where debug.log is written. Empty means ConfigDir()/logs.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups"`
}

// ExportConfig controls the export command
type ExportConfig struct {
	// MaxParallel bounds concurrent per-user fetches when exporting all users (default: 4)
	MaxParallel int `mapstructure:"max_parallel" yaml:"max_parallel"`
}

// MockAPIConfig controls the bundled mock API server
type MockAPIConfig struct {
	// Addr is the listen address (default: ":8089")
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://jsonplaceholder.typicode.com",
			TimeoutSeconds: 0,
		},
		Tasks: TasksConfig{
			Source:              SourceRemote,
			RemoteDelete:        true,
			PersistAdds:         false,
			DiscardStaleFetches: true,
			FallbackOwnerID:     1,
		},
		TUI: TUIConfig{
			MaxTextWidth: 60,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Export: ExportConfig{
			MaxParallel: 4,
		},
		MockAPI: MockAPIConfig{
			Addr: ":8089",
		},
	}
}

// Timeout returns the request timeout; 0 means none is applied.
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResolveDir returns the directory for debug.log, expanding a leading ~.
func (c *LoggingConfig) ResolveDir() string {
	if c.Dir == "" {
		return filepath.Join(ConfigDir(), "logs")
	}
	path := c.Dir
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// DefaultValues returns the default of every config key, keyed by its
// dotted viper path.
func DefaultValues() map[string]any {
	d := Default()
	return map[string]any{
		"api.base_url":        d.API.BaseURL,
		"api.timeout_seconds": d.API.TimeoutSeconds,

		"tasks.source":                d.Tasks.Source,
		"tasks.remote_delete":         d.Tasks.RemoteDelete,
		"tasks.persist_adds":          d.Tasks.PersistAdds,
		"tasks.discard_stale_fetches": d.Tasks.DiscardStaleFetches,
		"tasks.fallback_owner_id":     d.Tasks.FallbackOwnerID,

		"tui.max_text_width": d.TUI.MaxTextWidth,

		"logging.enabled":     d.Logging.Enabled,
		"logging.level":       d.Logging.Level,
		"logging.dir":         d.Logging.Dir,
		"logging.max_size_mb": d.Logging.MaxSizeMB,
		"logging.max_backups": d.Logging.MaxBackups,

		"export.max_parallel": d.Export.MaxParallel,

		"mock_api.addr": d.MockAPI.Addr,
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	for key, value := range DefaultValues() {
		viper.SetDefault(key, value)
	}
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when it
// cannot be loaded.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todolist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todolist"
	}
	return filepath.Join(home, ".config", "todolist")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidSources returns the list of valid tasks.source values
func ValidSources() []string {
	return []string{SourceRemote, SourceLocal}
}
