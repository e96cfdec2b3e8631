package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/todolist/internal/event"
	"github.com/Iron-Ham/todolist/internal/logging"
	"github.com/Iron-Ham/todolist/internal/todo"
	"github.com/Iron-Ham/todolist/internal/tui/msg"
	"github.com/Iron-Ham/todolist/internal/tui/styles"
)

// ListOptions selects the task list variant.
type ListOptions struct {
	// RemoteDelete sends DELETE and removes the row only on success.
	RemoteDelete bool
	// PersistAdds sends PUT after each local add.
	PersistAdds bool
	// DiscardStaleFetches applies only the response of the latest fetch.
	DiscardStaleFetches bool
	// FallbackOwnerID owns tasks added while no user is selected.
	FallbackOwnerID int
	// MaxTextWidth caps the rendered width of task text.
	MaxTextWidth int
}

// TaskList owns the tasks of the selected user and everything that mutates them.
type TaskList struct {
	backend msg.Backend
	opts    ListOptions
	bus     *event.Bus
	logger  *logging.Logger

	list  *todo.List
	rows  map[todo.Key]*taskRow
	input textinput.Model

	cursor   int
	selected *int
	fetchSeq uint64
}

// NewTaskList creates a TaskList holding initial. backend may be nil when
// neither RemoteDelete nor PersistAdds is set and no user is ever selected.
func NewTaskList(backend msg.Backend, opts ListOptions, initial []todo.Task, bus *event.Bus, logger *logging.Logger) TaskList {
	ti := textinput.New()
	ti.Placeholder = "Enter a task..."
	ti.CharLimit = 0 // no limit; only blank text is rejected
	ti.Width = max(opts.MaxTextWidth, 20)
	ti.Prompt = ""

	if logger == nil {
		logger = logging.NopLogger()
	}
	if bus == nil {
		bus = event.NewBus(logger)
	}
	return TaskList{
		backend: backend,
		opts:    opts,
		bus:     bus,
		logger:  logger.WithComponent("tasklist"),
		list:    todo.NewList(initial),
		rows:    make(map[todo.Key]*taskRow),
		input:   ti,
	}
}

// Tasks returns a copy of the current tasks in display order.
func (l *TaskList) Tasks() []todo.Task {
	return l.list.Tasks()
}

// Cursor returns the focused row position.
func (l *TaskList) Cursor() int {
	return l.cursor
}

// InputValue returns the text typed into the add input.
func (l *TaskList) InputValue() string {
	return l.input.Value()
}

// SetInputValue replaces the add input's text.
func (l *TaskList) SetInputValue(s string) {
	l.input.SetValue(s)
}

// CheckedCount is the derived count of checked tasks.
func (l *TaskList) CheckedCount() int {
	return l.list.CheckedCount()
}

// CanAdd reports whether the Add control is enabled.
func (l *TaskList) CanAdd() bool {
	return strings.TrimSpace(l.input.Value()) != ""
}

// CanDeleteAll reports whether Delete All is shown and enabled. It is only
// shown while some task is checked.
func (l *TaskList) CanDeleteAll() bool {
	return l.list.CheckedCount() > 0 && l.list.Len() > 0
}

// CanDeleteSelected reports whether Delete Selected is shown.
func (l *TaskList) CanDeleteSelected() bool {
	return l.list.CheckedCount() > 0
}

// IsDeleting reports whether the row at position i has a delete in flight.
func (l *TaskList) IsDeleting(i int) bool {
	row, ok := l.rows[l.list.KeyAt(i)]
	return ok && row.deleting
}

// FocusInput focuses the add input.
func (l *TaskList) FocusInput() tea.Cmd {
	return l.input.Focus()
}

// BlurInput removes focus from the add input.
func (l *TaskList) BlurInput() {
	l.input.Blur()
}

// SetSelection reacts to a selection change. A non-nil id starts a fetch of
// that user's tasks; nil leaves the list as it is.
func (l *TaskList) SetSelection(userID *int) tea.Cmd {
	l.selected = userID
	l.bus.Publish(event.NewUserSelectedEvent(userID))
	if userID == nil {
		l.logger.Info("no user selected")
		return nil
	}

	l.fetchSeq++
	l.logger.WithUser(*userID).Debug("fetching tasks", "seq", l.fetchSeq)
	return msg.FetchTasks(l.backend, l.fetchSeq, *userID)
}

func (l *TaskList) handleTasksLoaded(m msg.TasksLoadedMsg) {
	log := l.logger.WithUser(m.UserID)
	if l.opts.DiscardStaleFetches && m.Seq != l.fetchSeq {
		log.Debug("discarding stale task fetch", "seq", m.Seq, "latest", l.fetchSeq)
		return
	}

	var tasks []todo.Task
	if m.Err != nil {
		log.Warn("task fetch failed", "error", m.Err)
	} else {
		tasks = todo.TasksFromAPI(m.Tasks)
		log.Debug("tasks loaded", "count", len(tasks), "tasks", m.Tasks)
	}

	l.list.Replace(tasks)
	clear(l.rows)
	l.cursor = 0
	l.bus.Publish(event.NewTasksReplacedEvent(m.UserID, len(tasks), m.Err))
}

func (l *TaskList) ownerID() int {
	if l.selected != nil {
		return *l.selected
	}
	return l.opts.FallbackOwnerID
}

// Add prepends a task built from the input text and clears the input.
// Blank input is ignored and left in place.
func (l *TaskList) Add() tea.Cmd {
	task, err := l.list.Add(l.input.Value(), l.ownerID())
	if err != nil {
		return nil
	}
	l.input.Reset()
	l.cursor = 0

	l.logger.Info("task added", "task_id", task.ID, "owner_id", task.OwnerID)
	l.bus.Publish(event.NewTaskAddedEvent(task, l.opts.PersistAdds))

	if l.opts.PersistAdds && l.backend != nil {
		return msg.SaveTask(l.backend, task)
	}
	return nil
}

func (l *TaskList) handleTaskSaved(m msg.TaskSavedMsg) {
	if m.Err != nil {
		l.logger.Error("task save failed", "task_id", m.Task.ID, "error", m.Err)
		return
	}
	l.logger.Debug("task saved", "task_id", m.Task.ID)
}

// DeleteAll empties the list and clears the input. It never calls the API.
func (l *TaskList) DeleteAll() {
	removed := l.list.Tasks()
	l.list.DeleteAll()
	clear(l.rows)
	l.input.Reset()
	l.cursor = 0
	l.bus.Publish(event.NewTaskDeletedEvent(event.DeleteAll, removed))
}

// DeleteSelected removes every checked task.
func (l *TaskList) DeleteSelected() {
	var removed []todo.Task
	for _, t := range l.list.Tasks() {
		if t.Checked {
			removed = append(removed, t)
		}
	}
	l.list.DeleteSelected()
	l.pruneRows()
	l.clampCursor()
	l.bus.Publish(event.NewTaskDeletedEvent(event.DeleteSelected, removed))
}

// Delete removes the task at position i. With remote deletes the row first
// enters the deleting state and is removed only when the API confirms.
func (l *TaskList) Delete(i int) tea.Cmd {
	task, ok := l.list.At(i)
	if !ok {
		return nil
	}

	if !l.opts.RemoteDelete {
		l.list.DeleteAt(i)
		l.pruneRows()
		l.clampCursor()
		l.bus.Publish(event.NewTaskDeletedEvent(event.DeleteOne, []todo.Task{task}))
		return nil
	}

	key := l.list.KeyAt(i)
	row := l.row(key)
	tick, started := row.startDeleting()
	if !started {
		return nil
	}
	return tea.Batch(msg.DeleteTask(l.backend, key, task), tick)
}

func (l *TaskList) handleTaskDeleted(m msg.TaskDeletedMsg) {
	if row, ok := l.rows[m.Key]; ok {
		row.finishDeleting()
	}

	if m.Err != nil {
		l.logger.Error("task delete failed", "task_id", m.Task.ID, "error", m.Err)
		l.bus.Publish(event.NewTaskDeleteFailedEvent(m.Task, m.Err))
		return
	}

	if _, ok := l.list.Remove(m.Key); !ok {
		l.logger.Debug("deleted task no longer listed", "task_id", m.Task.ID)
		return
	}
	delete(l.rows, m.Key)
	l.clampCursor()
	l.bus.Publish(event.NewTaskDeletedEvent(event.DeleteOne, []todo.Task{m.Task}))
}

// MoveUp swaps the task at i with its predecessor; the cursor follows it.
func (l *TaskList) MoveUp(i int) {
	if l.list.MoveUp(i) && l.cursor == i {
		l.cursor--
	}
}

// MoveDown swaps the task at i with its successor; the cursor follows it.
func (l *TaskList) MoveDown(i int) {
	if l.list.MoveDown(i) && l.cursor == i {
		l.cursor++
	}
}

// Toggle flips the checked flag of the task at i.
func (l *TaskList) Toggle(i int) {
	_ = l.list.Toggle(i)
}

// MoveCursor moves the row focus by delta, clamped to the list.
func (l *TaskList) MoveCursor(delta int) {
	l.cursor += delta
	l.clampCursor()
}

func (l *TaskList) clampCursor() {
	l.cursor = max(0, min(l.list.Len()-1, l.cursor))
}

func (l *TaskList) row(key todo.Key) *taskRow {
	row, ok := l.rows[key]
	if !ok {
		row = newTaskRow()
		l.rows[key] = row
	}
	return row
}

// pruneRows drops row state whose entry has left the list.
func (l *TaskList) pruneRows() {
	for key := range l.rows {
		if l.list.IndexOf(key) < 0 {
			delete(l.rows, key)
		}
	}
}

// Update handles network completions, spinner ticks and, while the input is
// focused, text editing.
func (l *TaskList) Update(m tea.Msg) tea.Cmd {
	switch m := m.(type) {
	case msg.TasksLoadedMsg:
		l.handleTasksLoaded(m)
		return nil
	case msg.TaskDeletedMsg:
		l.handleTaskDeleted(m)
		return nil
	case msg.TaskSavedMsg:
		l.handleTaskSaved(m)
		return nil
	case spinner.TickMsg:
		for _, row := range l.rows {
			if cmd, mine := row.updateSpinner(m); mine {
				return cmd
			}
		}
		return nil
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(m)
	return cmd
}

// View renders the title, the input with its controls, and the rows.
func (l *TaskList) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("To-Do-List"))
	b.WriteString("\n")

	inputStyle := styles.InputBox
	if l.input.Focused() {
		inputStyle = styles.InputBoxFocused
	}
	b.WriteString(inputStyle.Render(l.input.View()))
	b.WriteString("\n")

	b.WriteString(styles.ButtonStyle(l.CanAdd(), false).Render("Add"))
	if n := l.CheckedCount(); n > 0 {
		b.WriteString(styles.ButtonStyle(l.CanDeleteAll(), true).Render("Delete All"))
		b.WriteString(styles.ButtonStyle(true, true).Render(fmt.Sprintf("Delete Selected (%d)", n)))
	}
	b.WriteString("\n\n")

	if l.list.Len() == 0 {
		b.WriteString(styles.EmptyState.Render("Add your first task"))
		return b.String()
	}

	tasks := l.list.Tasks()
	for i, task := range tasks {
		props := rowProps{
			task:     task,
			index:    i,
			isFirst:  l.list.IsFirst(i),
			isLast:   l.list.IsLast(i),
			focused:  !l.input.Focused() && i == l.cursor,
			maxWidth: l.opts.MaxTextWidth,
		}
		b.WriteString(fmt.Sprintf("%2d. ", i+1))
		b.WriteString(renderRow(props, l.rows[l.list.KeyAt(i)]))
		if i < len(tasks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
