// Package config provides CLI commands for managing todolist configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/todolist/internal/config"
	tuiconfig "github.com/Iron-Ham/todolist/internal/tui/config"
)

// Register adds the config command tree to parent.
func Register(parent *cobra.Command) {
	parent.AddCommand(newConfigCmd())
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify todolist configuration",
		Long: `View or modify todolist configuration.

Without arguments, displays the current configuration.
Use 'config edit' for an interactive editor.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			Args:  cobra.NoArgs,
			RunE:  runConfigShow,
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  todolist config set api.base_url http://localhost:8089
  todolist config set tasks.persist_adds true
  todolist config set tasks.source local

Valid keys:
` + keyHelp(),
			Args: cobra.ExactArgs(2),
			RunE: runConfigSet,
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create a default config file",
			Args:  cobra.NoArgs,
			RunE:  runConfigInit,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the config file path",
			Args:  cobra.NoArgs,
			RunE:  runConfigPath,
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Edit configuration interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return tuiconfig.Run(targetFile())
			},
		},
		&cobra.Command{
			Use:   "reset [key]",
			Short: "Reset configuration to defaults",
			Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.`,
			Args: cobra.MaximumNArgs(1),
			RunE: runConfigReset,
		},
	)
	return configCmd
}

func keyHelp() string {
	keys := make([]string, 0, len(appconfig.DefaultValues()))
	for key := range appconfig.DefaultValues() {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "  %-28s (default: %v)\n", key, appconfig.DefaultValues()[key])
	}
	return strings.TrimRight(b.String(), "\n")
}

// targetFile is the file writes go to: the one in use, or the default path.
func targetFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return appconfig.ConfigFile()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# Config file: %s\n", used)
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// parseValue converts value to the type of key's default.
func parseValue(key, value string) (any, error) {
	def, ok := appconfig.DefaultValues()[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'todolist config set --help' to see valid keys", key)
	}

	switch def.(type) {
	case bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return v, nil
	case int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return v, nil
	default:
		return value, nil
	}
}

// save validates the configuration viper now holds and writes it out.
func save(cmd *cobra.Command) error {
	if _, err := appconfig.Load(); err != nil {
		return err
	}

	configFile := targetFile()
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	typed, err := parseValue(key, value)
	if err != nil {
		return err
	}

	viper.Set(key, typed)
	if err := save(cmd); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typed)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := appconfig.DefaultValues()

	if len(args) == 0 {
		for key, value := range defaults {
			viper.Set(key, value)
		}
		if err := save(cmd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Reset all configuration to defaults.")
		return nil
	}

	key := args[0]
	value, ok := defaults[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'todolist config set --help' to see valid keys", key)
	}
	viper.Set(key, value)
	if err := save(cmd); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to default: %v\n", key, value)
	return nil
}

const configHeader = `# todolist configuration
#
# Every key can also be set through the environment, e.g.
#   TODOLIST_API_BASE_URL=http://localhost:8089
#   TODOLIST_TASKS_SOURCE=local
#
# tasks.source: remote (users and tasks from the API) or local (fixed list, no network)
# tasks.remote_delete: send DELETE and remove the row only once it succeeds
# tasks.persist_adds: send PUT for every task added
# tasks.discard_stale_fetches: ignore responses for a user no longer selected
# logging.level: debug, info, warn or error

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'todolist config set' to modify values", configFile)
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(appconfig.Default())
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, append([]byte(configHeader), body...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if used := viper.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "Active config: %s\n", used)
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", appconfig.ConfigFile())
	}
	fmt.Fprintln(out, "\nEnvironment variables: TODOLIST_* (e.g., TODOLIST_API_BASE_URL)")
	return nil
}
