package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/todolist/internal/errors"
	"github.com/Iron-Ham/todolist/internal/export"
)

func newExportCmd() *cobra.Command {
	var formats []string
	for _, f := range export.Formats() {
		formats = append(formats, string(f))
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to JSON, CSV, YAML or PDF",
		Long: `Export the tasks of one user, or of every user when --user is omitted.

Users are fetched concurrently, at most export.max_parallel at a time, and
written in ascending id order. PDF output needs --out.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
	cmd.Flags().Int("user", 0, "export only this user id")
	cmd.Flags().StringP("format", "f", string(export.FormatJSON), "output format: "+strings.Join(formats, ", "))
	cmd.Flags().String("out", "", "write to this file instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if format == export.FormatPDF && out == "" {
		return errors.NewValidationError("pdf export needs --out").WithField("out")
	}

	var userID *int
	if cmd.Flags().Changed("user") {
		id, _ := cmd.Flags().GetInt("user")
		userID = &id
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	collector := export.NewCollector(e.client(), e.cfg.Export.MaxParallel, e.logger)
	report, err := collector.Collect(cmd.Context(), userID)
	if err != nil {
		return errors.Wrap(err, "export failed")
	}

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, report, format); err != nil {
		return errors.Wrap(err, "export failed")
	}

	if out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks of %d users to %s\n", report.TaskCount(), len(report.Users), out)
	}
	return nil
}
