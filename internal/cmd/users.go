package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/todolist/internal/todo"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the users the selector offers",
		Args:  cobra.NoArgs,
		RunE:  runUsers,
	}
	cmd.Flags().StringP("output", "o", outputText, "output format: text, json or yaml")
	return cmd
}

func runUsers(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	apiUsers, err := e.client().ListUsers(cmd.Context())
	if err != nil {
		return err
	}
	users := todo.UsersFromAPI(apiUsers)

	if output != outputText {
		return writeStructured(cmd.OutOrStdout(), output, users)
	}

	rows := make([][]string, 0, len(apiUsers))
	for i, u := range users {
		src := apiUsers[i]
		rows = append(rows, []string{strconv.Itoa(u.ID), u.Label(), joinNonEmpty(src.Username, src.Email)})
	}
	return writeTable(cmd.OutOrStdout(), []string{"ID", "OPTION", "CONTACT"}, rows)
}
