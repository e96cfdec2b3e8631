package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/todolist/internal/mockapi"
)

func newMockAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve an in-memory copy of the users/todos API",
		Long: `Serve the four routes todolist uses from seeded in-memory data, for
working offline:

  todolist mock-api --addr :8089 &
  TODOLIST_API_BASE_URL=http://localhost:8089 todolist`,
		Args: cobra.NoArgs,
		RunE: runMockAPI,
	}
	cmd.Flags().String("addr", "", "listen address (default mock_api.addr)")
	return cmd
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = e.cfg.MockAPI.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mockapi.New(mockapi.WithLogger(e.logger))
	cmd.Printf("Mock API listening on %s (Ctrl+C to stop)\n", addr)
	return srv.ListenAndServe(ctx, addr)
}
