package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/todolist/internal/errors"
	"github.com/Iron-Ham/todolist/internal/todo"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks <userId>",
		Short: "Print a user's tasks",
		Long: `Print the tasks of one user in list order.

--match keeps only tasks whose text matches a case-insensitive glob:
  todolist tasks 1 --match '*autem*'
  todolist tasks 3 --match '{fugiat,qui}*'`,
		Args: cobra.ExactArgs(1),
		RunE: runTasks,
	}
	cmd.Flags().String("match", "", "glob pattern the task text must match")
	cmd.Flags().StringP("output", "o", outputText, "output format: text, json or yaml")
	return cmd
}

func runTasks(cmd *cobra.Command, args []string) error {
	userID, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NewValidationError("user id must be an integer").
			WithField("userId").
			WithValue(args[0])
	}

	output, _ := cmd.Flags().GetString("output")
	if err := validateOutput(output); err != nil {
		return err
	}

	var filter *todo.Filter
	if pattern, _ := cmd.Flags().GetString("match"); pattern != "" {
		if filter, err = todo.NewFilter(pattern); err != nil {
			return err
		}
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	apiTasks, err := e.client().ListTasks(cmd.Context(), userID)
	if err != nil {
		return err
	}
	tasks := todo.TasksFromAPI(apiTasks)
	if filter != nil {
		tasks = filter.Apply(tasks)
	}

	if output != outputText {
		return writeStructured(cmd.OutOrStdout(), output, tasks)
	}

	w := cmd.OutOrStdout()
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}
	for i, t := range tasks {
		if _, err := fmt.Fprintf(w, "%3d. %s  (#%d)\n", i+1, t, t.ID); err != nil {
			return err
		}
	}
	return nil
}
