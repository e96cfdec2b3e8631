package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/todolist/internal/api"
	"github.com/Iron-Ham/todolist/internal/config"
	"github.com/Iron-Ham/todolist/internal/errors"
	"github.com/Iron-Ham/todolist/internal/logging"
	"github.com/Iron-Ham/todolist/internal/tui/styles"
)

// Output formats of the listing commands.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// env is what a command needs once configuration is loaded.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
}

// loadEnv loads and validates configuration and opens the diagnostic log.
// Callers must Close the logger.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(
		cfg.Logging.ResolveDir(),
		logging.ParseLevel(cfg.Logging.Level),
		logging.RotationConfig{MaxSizeMB: cfg.Logging.MaxSizeMB, MaxBackups: cfg.Logging.MaxBackups},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log")
	}
	return logger, nil
}

func (e *env) client() *api.Client {
	return api.NewClient(e.cfg.API.BaseURL,
		api.WithTimeout(e.cfg.API.Timeout()),
		api.WithLogger(e.logger),
	)
}

func (e *env) Close() {
	_ = e.logger.Close()
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return errors.NewValidationError("must be text, json or yaml").
			WithField("output").
			WithValue(format)
	}
}

// writeStructured writes v as indented JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeTable renders rows under headers as a bordered table.
func writeTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
