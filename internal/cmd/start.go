package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/todolist/internal/config"
	"github.com/Iron-Ham/todolist/internal/tui"
)

// Columns taken by the row number, cursor, checkbox and controls.
const rowChromeWidth = 24

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the terminal UI",
		Long: `Start the terminal UI.

In remote mode (the default) the user list and each user's tasks come from
api.base_url. With --local the UI starts from a fixed three-task list and
never touches the network.`,
		Args: cobra.NoArgs,
		RunE: runStart,
	}
	addStartFlags(cmd)
	return cmd
}

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("local", false, "start from the fixed seed list without a user selector (same as tasks.source=local)")
}

func runStart(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the terminal UI needs an interactive terminal; try 'todolist tasks <userId>'")
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	local, _ := cmd.Flags().GetBool("local")
	local = local || e.cfg.Tasks.Source == config.SourceLocal

	opts := tui.Options{
		Local: local,
		List: tui.ListOptions{
			RemoteDelete:        e.cfg.Tasks.RemoteDelete,
			PersistAdds:         e.cfg.Tasks.PersistAdds,
			DiscardStaleFetches: e.cfg.Tasks.DiscardStaleFetches,
			FallbackOwnerID:     e.cfg.Tasks.FallbackOwnerID,
			MaxTextWidth:        textWidth(e.cfg.TUI.MaxTextWidth),
		},
	}

	app := tui.New(e.client(), opts, e.logger)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// textWidth caps the configured task text width to what fits the terminal.
func textWidth(configured int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width-rowChromeWidth < 10 {
		return configured
	}
	return min(configured, width-rowChromeWidth)
}
