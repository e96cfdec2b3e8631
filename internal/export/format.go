package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/todolist/internal/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatYAML, FormatPDF}
}

// ParseFormat accepts a format name in any case; "yml" is an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatYAML, FormatPDF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.NewValidationError("unknown export format").
			WithField("format").
			WithValue(s)
	}
}

// Write renders r to w in the given format.
func Write(w io.Writer, r Report, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatPDF:
		return writePDF(w, r)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

var csvHeader = []string{"user_id", "user_name", "position", "task_id", "text", "checked"}

func writeCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, u := range r.Users {
		for i, t := range u.Tasks {
			row := []string{
				strconv.Itoa(u.User.ID),
				u.User.Name,
				strconv.Itoa(i + 1),
				strconv.Itoa(t.ID),
				t.Text,
				strconv.FormatBool(t.Checked),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Task List Export", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Task List Export")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d users, %d tasks",
		r.GeneratedAt.Format("2006-01-02 15:04 MST"), len(r.Users), r.TaskCount()))
	pdf.Ln(10)

	for _, u := range r.Users {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, tr(fmt.Sprintf("User: %s (#%d)", u.User.Name, u.User.ID)))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		if len(u.Tasks) == 0 {
			pdf.MultiCell(0, 6, "No tasks", "", "L", false)
		}
		for i, t := range u.Tasks {
			line := fmt.Sprintf("%d. %s", i+1, t.String())
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
