// Package cmd implements the todolist command line.
package cmd

import (
	"context"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/todolist/internal/cmd/config"
	appconfig "github.com/Iron-Ham/todolist/internal/config"
	"github.com/Iron-Ham/todolist/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. TODOLIST_API_BASE_URL
// for api.base_url.
const EnvPrefix = "TODOLIST"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todolist",
		Short: "Terminal task list for the jsonplaceholder users/todos API",
		Long: `todolist shows the tasks of a user picked from a remote user list and lets
you add, delete, reorder and check them off.

Without a subcommand it starts the terminal UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		RunE: runStart,
	}

	root.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/todolist/config.yaml)")
	root.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	addStartFlags(root)

	root.AddCommand(
		newStartCmd(),
		newUsersCmd(),
		newTasksCmd(),
		newExportCmd(),
		newMockAPICmd(),
		newLogsCmd(),
	)
	config.Register(root)

	return root
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func initConfig(cmd *cobra.Command) error {
	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		// Existing environment variables win over the file.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
	}

	viper.SetEnvPrefix(EnvPrefix)
	// TODOLIST_TASKS_PERSIST_ADDS for tasks.persist_adds
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
