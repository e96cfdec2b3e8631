package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "https://jsonplaceholder.typicode.com" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 0 {
		t.Errorf("API.TimeoutSeconds = %d, want 0", cfg.API.TimeoutSeconds)
	}
	if cfg.Tasks.Source != SourceRemote {
		t.Errorf("Tasks.Source = %q, want %q", cfg.Tasks.Source, SourceRemote)
	}
	if !cfg.Tasks.RemoteDelete {
		t.Error("Tasks.RemoteDelete should default to true")
	}
	if cfg.Tasks.PersistAdds {
		t.Error("Tasks.PersistAdds should default to false")
	}
	if !cfg.Tasks.DiscardStaleFetches {
		t.Error("Tasks.DiscardStaleFetches should default to true")
	}
	if cfg.Tasks.FallbackOwnerID != 1 {
		t.Errorf("Tasks.FallbackOwnerID = %d, want 1", cfg.Tasks.FallbackOwnerID)
	}
	if cfg.TUI.MaxTextWidth != 60 {
		t.Errorf("TUI.MaxTextWidth = %d, want 60", cfg.TUI.MaxTextWidth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB != 10 || cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging rotation = %d/%d, want 10/3", cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups)
	}
	if cfg.Export.MaxParallel != 4 {
		t.Errorf("Export.MaxParallel = %d, want 4", cfg.Export.MaxParallel)
	}
	if cfg.MockAPI.Addr != ":8089" {
		t.Errorf("MockAPI.Addr = %q, want :8089", cfg.MockAPI.Addr)
	}
}

func TestAPIConfig_Timeout(t *testing.T) {
	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{0, 0},
		{5, 5 * time.Second},
	}
	for _, tt := range tests {
		c := APIConfig{TimeoutSeconds: tt.seconds}
		if got := c.Timeout(); got != tt.want {
			t.Errorf("Timeout() with %d = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestLoggingConfig_ResolveDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"empty uses config dir", "", filepath.Join("/tmp/xdg", "todolist", "logs")},
		{"absolute kept", "/var/log/todo", "/var/log/todo"},
		{"tilde expanded", "~/logs", filepath.Join("/home/tester", "logs")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := LoggingConfig{Dir: tt.dir}
			if got := c.ResolveDir(); got != tt.want {
				t.Errorf("ResolveDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("honors XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if got := ConfigDir(); got != filepath.Join("/tmp/xdg", "todolist") {
			t.Errorf("ConfigDir() = %q", got)
		}
	})

	t.Run("falls back to home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/tester")
		if got := ConfigDir(); got != filepath.Join("/home/tester", ".config", "todolist") {
			t.Errorf("ConfigDir() = %q", got)
		}
	})

	t.Run("config file lives in config dir", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if got := ConfigFile(); got != filepath.Join("/tmp/xdg", "todolist", "config.yaml") {
			t.Errorf("ConfigFile() = %q", got)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults load and validate", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Tasks.Source != SourceRemote {
			t.Errorf("Tasks.Source = %q", cfg.Tasks.Source)
		}
	})

	t.Run("overrides are applied", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()
		viper.Set("tasks.source", SourceLocal)
		viper.Set("tasks.persist_adds", true)
		viper.Set("api.base_url", "http://127.0.0.1:8089")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Tasks.Source != SourceLocal {
			t.Errorf("Tasks.Source = %q, want local", cfg.Tasks.Source)
		}
		if !cfg.Tasks.PersistAdds {
			t.Error("Tasks.PersistAdds = false, want true")
		}
		if cfg.API.BaseURL != "http://127.0.0.1:8089" {
			t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		SetDefaults()
		viper.Set("tasks.source", "floppy")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should fail for an unknown source")
		}
		if got := Get(); got.Tasks.Source != SourceRemote {
			t.Errorf("Get() should fall back to defaults, got source %q", got.Tasks.Source)
		}
	})
}

func flattenKeys(prefix string, m map[string]any, out map[string]bool) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flattenKeys(key, child, out)
			continue
		}
		out[key] = true
	}
}

func TestDefaultValues_CoverEveryField(t *testing.T) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	fields := make(map[string]bool)
	flattenKeys("", tree, fields)

	defaults := DefaultValues()
	for key := range fields {
		if _, ok := defaults[key]; !ok {
			t.Errorf("field %q has no entry in DefaultValues()", key)
		}
	}
	if len(defaults) != len(fields) {
		t.Errorf("DefaultValues() has %d keys, Config has %d fields", len(defaults), len(fields))
	}
}
