package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/todolist/internal/todo"
	"github.com/Iron-Ham/todolist/internal/tui/styles"
)

// taskRow is the per-row state that outlives a single render: the deleting
// flag and its spinner. It lives as long as its list entry.
type taskRow struct {
	deleting bool
	spinner  spinner.Model
}

func newTaskRow() *taskRow {
	return &taskRow{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(styles.Deleting),
		),
	}
}

// startDeleting sets the flag and returns the first spinner tick.
// It returns false when a delete is already in flight.
func (r *taskRow) startDeleting() (tea.Cmd, bool) {
	if r.deleting {
		return nil, false
	}
	r.deleting = true
	return r.spinner.Tick, true
}

// finishDeleting clears the flag. Called on every completion path.
func (r *taskRow) finishDeleting() {
	r.deleting = false
}

// updateSpinner advances the spinner if tick is addressed to it. Ticks stop
// once the row is no longer deleting.
func (r *taskRow) updateSpinner(tick spinner.TickMsg) (tea.Cmd, bool) {
	if tick.ID != r.spinner.ID() {
		return nil, false
	}
	if !r.deleting {
		return nil, true
	}
	var cmd tea.Cmd
	r.spinner, cmd = r.spinner.Update(tick)
	return cmd, true
}

// rowProps is what the list passes down to render one row.
type rowProps struct {
	task     todo.Task
	index    int
	isFirst  bool
	isLast   bool
	focused  bool
	maxWidth int
}

// renderRow renders one task line: cursor, checkbox, text, delete control,
// and the move controls. The move controls are hidden when the row is the
// only one, otherwise each is dimmed at its boundary.
func renderRow(p rowProps, row *taskRow) string {
	var b strings.Builder

	if p.focused {
		b.WriteString(styles.RowCursor.Render("›"))
	} else {
		b.WriteString(" ")
	}
	b.WriteString(" ")
	b.WriteString(styles.CheckboxMark(p.task.Checked))
	b.WriteString(" ")

	text := ansi.Truncate(p.task.Text, p.maxWidth, "…")
	if p.task.Checked {
		b.WriteString(styles.RowTextChecked.Render(text))
	} else {
		b.WriteString(styles.RowText.Render(text))
	}
	b.WriteString("  ")

	if row != nil && row.deleting {
		b.WriteString(row.spinner.View())
		b.WriteString(styles.Deleting.Render(" deleting"))
	} else {
		b.WriteString(styles.Control.Render("[del]"))
	}

	if !(p.isFirst && p.isLast) {
		b.WriteString(" ")
		b.WriteString(moveControl("↑", !p.isFirst))
		b.WriteString(moveControl("↓", !p.isLast))
	}
	return b.String()
}

func moveControl(glyph string, enabled bool) string {
	if enabled {
		return styles.Control.Render("[" + glyph + "]")
	}
	return styles.ControlDisabled.Render("[" + glyph + "]")
}
