package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/Iron-Ham/todolist/internal/errors"
	"github.com/Iron-Ham/todolist/internal/event"
	"github.com/Iron-Ham/todolist/internal/todo"
	"github.com/Iron-Ham/todolist/internal/tui/msg"
)

func remoteOptions() ListOptions {
	return ListOptions{
		RemoteDelete:        true,
		DiscardStaleFetches: true,
		FallbackOwnerID:     1,
		MaxTextWidth:        40,
	}
}

// loadedList returns a TaskList that has completed a fetch for user 1.
func loadedList(t *testing.T, b *fakeBackend, opts ListOptions) TaskList {
	t.Helper()
	l := NewTaskList(b, opts, nil, nil, nil)
	msgs := runCmd(t, l.SetSelection(intPtr(1)))
	if len(msgs) != 1 {
		t.Fatalf("SetSelection produced %d messages", len(msgs))
	}
	l.Update(msgs[0])
	return l
}

func texts(tasks []todo.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Text
	}
	return out
}

func TestTaskList_SelectionReplacesTasks(t *testing.T) {
	b := newFakeBackend()
	l := loadedList(t, b, remoteOptions())

	got := l.Tasks()
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got))
	}
	want := todo.Task{OwnerID: 1, ID: 2, Text: "quis ut nam", Checked: true}
	if got[1] != want {
		t.Errorf("Tasks()[1] = %+v, want %+v", got[1], want)
	}
	if l.CheckedCount() != 1 {
		t.Errorf("CheckedCount() = %d, want 1", l.CheckedCount())
	}
}

func TestTaskList_NilSelectionKeepsTasks(t *testing.T) {
	b := newFakeBackend()
	l := loadedList(t, b, remoteOptions())

	if cmd := l.SetSelection(nil); cmd != nil {
		t.Error("selecting no user should not fetch")
	}
	if len(l.Tasks()) != 2 {
		t.Errorf("tasks changed to %v", l.Tasks())
	}
}

func TestTaskList_StaleFetches(t *testing.T) {
	tests := []struct {
		name         string
		discardStale bool
		wantFirst    string
	}{
		{name: "latest selection wins", discardStale: true, wantFirst: "suscipit repellat"},
		{name: "last response wins", discardStale: false, wantFirst: "delectus aut autem"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend()
			opts := remoteOptions()
			opts.DiscardStaleFetches = tt.discardStale
			l := NewTaskList(b, opts, nil, nil, nil)

			first := runCmd(t, l.SetSelection(intPtr(1)))
			second := runCmd(t, l.SetSelection(intPtr(2)))

			// The response for user 2 arrives before the one for user 1.
			l.Update(second[0])
			l.Update(first[0])

			got := l.Tasks()
			if len(got) == 0 || got[0].Text != tt.wantFirst {
				t.Errorf("Tasks() = %v, want first %q", texts(got), tt.wantFirst)
			}
		})
	}
}

func TestTaskList_FetchFailureEmptiesList(t *testing.T) {
	b := newFakeBackend()
	l := loadedList(t, b, remoteOptions())

	var replaced []event.TasksReplacedEvent
	l.bus.Subscribe(event.TypeTasksReplaced, func(e event.Event) {
		replaced = append(replaced, e.(event.TasksReplacedEvent))
	})

	b.tasksErr = errBoom
	msgs := runCmd(t, l.SetSelection(intPtr(2)))
	l.Update(msgs[0])

	if len(l.Tasks()) != 0 {
		t.Errorf("Tasks() = %v, want empty", l.Tasks())
	}
	if len(replaced) != 1 || !errors.Is(replaced[0].Err, errors.ErrTransport) {
		t.Errorf("replaced events = %+v", replaced)
	}
}

func TestTaskList_Add(t *testing.T) {
	t.Run("prepends with next id and clears input", func(t *testing.T) {
		l := loadedList(t, newFakeBackend(), remoteOptions())
		l.SetInputValue("Buy milk")

		if cmd := l.Add(); cmd != nil {
			t.Error("Add without persistence should not issue a request")
		}

		got := l.Tasks()
		want := todo.Task{OwnerID: 1, ID: 3, Text: "Buy milk"}
		if got[0] != want {
			t.Errorf("Tasks()[0] = %+v, want %+v", got[0], want)
		}
		if l.InputValue() != "" {
			t.Errorf("InputValue() = %q, want empty", l.InputValue())
		}
	})

	t.Run("blank input is ignored", func(t *testing.T) {
		l := loadedList(t, newFakeBackend(), remoteOptions())
		l.SetInputValue("   ")
		if l.CanAdd() {
			t.Error("CanAdd() should be false for blank input")
		}
		l.Add()
		if len(l.Tasks()) != 2 {
			t.Errorf("Tasks() = %v", texts(l.Tasks()))
		}
		if l.InputValue() != "   " {
			t.Errorf("blank input should be left in place, got %q", l.InputValue())
		}
	})

	t.Run("persists when configured", func(t *testing.T) {
		b := newFakeBackend()
		opts := remoteOptions()
		opts.PersistAdds = true
		l := loadedList(t, b, opts)
		l.SetInputValue("Write report")

		msgs := runCmd(t, l.Add())
		if len(b.saved) != 1 || b.saved[0].Title != "Write report" || b.saved[0].ID != 3 {
			t.Fatalf("saved = %+v", b.saved)
		}
		if _, ok := msgs[0].(msg.TaskSavedMsg); !ok {
			t.Errorf("got %T, want TaskSavedMsg", msgs[0])
		}
	})

	t.Run("failed save keeps the task", func(t *testing.T) {
		b := newFakeBackend()
		b.saveErr = errBoom
		opts := remoteOptions()
		opts.PersistAdds = true
		l := loadedList(t, b, opts)
		l.SetInputValue("Write report")

		for _, m := range runCmd(t, l.Add()) {
			l.Update(m)
		}
		if l.Tasks()[0].Text != "Write report" {
			t.Errorf("Tasks() = %v", texts(l.Tasks()))
		}
	})

	t.Run("without selection uses fallback owner", func(t *testing.T) {
		opts := remoteOptions()
		opts.FallbackOwnerID = 7
		l := NewTaskList(nil, opts, nil, nil, nil)
		l.SetInputValue("x")
		l.Add()
		if got := l.Tasks()[0]; got.OwnerID != 7 || got.ID != 1 {
			t.Errorf("task = %+v", got)
		}
	})
}

func TestTaskList_RemoteDelete(t *testing.T) {
	t.Run("removes only after success", func(t *testing.T) {
		b := newFakeBackend()
		l := loadedList(t, b, remoteOptions())

		cmd := l.Delete(0)
		if !l.IsDeleting(0) {
			t.Fatal("row should be deleting while the request is in flight")
		}
		if len(l.Tasks()) != 2 {
			t.Fatal("task removed before confirmation")
		}
		if again := l.Delete(0); again != nil {
			t.Error("second delete of the same row should be ignored")
		}

		for _, m := range runCmd(t, cmd) {
			l.Update(m)
		}

		if len(b.deleted) != 1 || b.deleted[0] != 1 {
			t.Errorf("deleted = %v", b.deleted)
		}
		if got := texts(l.Tasks()); len(got) != 1 || got[0] != "quis ut nam" {
			t.Errorf("Tasks() = %v", got)
		}
	})

	t.Run("failure keeps the task and clears deleting", func(t *testing.T) {
		b := newFakeBackend()
		b.deleteErr = errBoom
		l := loadedList(t, b, remoteOptions())

		var failed int
		l.bus.Subscribe(event.TypeTaskDeleteFailed, func(event.Event) { failed++ })

		for _, m := range runCmd(t, l.Delete(1)) {
			l.Update(m)
		}

		if len(l.Tasks()) != 2 {
			t.Errorf("Tasks() = %v", texts(l.Tasks()))
		}
		if l.IsDeleting(1) {
			t.Error("deleting flag should clear on failure")
		}
		if failed != 1 {
			t.Errorf("delete_failed events = %d, want 1", failed)
		}
	})

	t.Run("completion finds the row after it moved", func(t *testing.T) {
		b := newFakeBackend()
		l := loadedList(t, b, remoteOptions())

		cmd := l.Delete(0)
		l.MoveDown(0)
		for _, m := range runCmd(t, cmd) {
			l.Update(m)
		}
		if got := texts(l.Tasks()); len(got) != 1 || got[0] != "quis ut nam" {
			t.Errorf("Tasks() = %v", got)
		}
	})
}

func TestTaskList_LocalDelete(t *testing.T) {
	b := newFakeBackend()
	opts := remoteOptions()
	opts.RemoteDelete = false
	l := loadedList(t, b, opts)

	if cmd := l.Delete(0); cmd != nil {
		t.Error("local delete should not issue a request")
	}
	if len(b.deleted) != 0 {
		t.Errorf("deleted = %v", b.deleted)
	}
	if len(l.Tasks()) != 1 {
		t.Errorf("Tasks() = %v", texts(l.Tasks()))
	}
}

func TestTaskList_BulkDeletes(t *testing.T) {
	t.Run("delete all clears tasks and input", func(t *testing.T) {
		b := newFakeBackend()
		l := loadedList(t, b, remoteOptions())
		l.SetInputValue("draft")

		if !l.CanDeleteAll() {
			t.Fatal("CanDeleteAll() should be true with a checked task")
		}
		l.DeleteAll()

		if len(l.Tasks()) != 0 || l.InputValue() != "" {
			t.Errorf("Tasks() = %v, input = %q", texts(l.Tasks()), l.InputValue())
		}
		if l.CanDeleteAll() || l.CanDeleteSelected() {
			t.Error("bulk controls should be hidden on an empty list")
		}
		if len(b.deleted) != 0 {
			t.Error("bulk delete should not call the API")
		}
	})

	t.Run("delete selected keeps unchecked", func(t *testing.T) {
		l := loadedList(t, newFakeBackend(), remoteOptions())
		l.DeleteSelected()
		if got := texts(l.Tasks()); len(got) != 1 || got[0] != "delectus aut autem" {
			t.Errorf("Tasks() = %v", got)
		}
		if l.CanDeleteSelected() {
			t.Error("CanDeleteSelected() should be false with nothing checked")
		}
	})
}

func TestTaskList_MoveAndToggle(t *testing.T) {
	l := loadedList(t, newFakeBackend(), remoteOptions())

	l.MoveDown(0)
	if l.Cursor() != 1 {
		t.Errorf("cursor should follow the moved task, got %d", l.Cursor())
	}
	if got := texts(l.Tasks()); got[0] != "quis ut nam" {
		t.Errorf("Tasks() = %v", got)
	}

	l.MoveDown(1)
	if l.Cursor() != 1 {
		t.Error("moving the last task down should be a no-op")
	}

	l.Toggle(0)
	if l.CheckedCount() != 0 {
		t.Errorf("CheckedCount() = %d, want 0", l.CheckedCount())
	}

	l.MoveCursor(10)
	if l.Cursor() != 1 {
		t.Errorf("cursor should clamp to the last row, got %d", l.Cursor())
	}
}

func TestTaskList_SpinnerTicks(t *testing.T) {
	b := newFakeBackend()
	l := loadedList(t, b, remoteOptions())

	msgs := runCmd(t, l.Delete(0))
	var tick spinner.TickMsg
	for _, m := range msgs {
		if tm, ok := m.(spinner.TickMsg); ok {
			tick = tm
		}
	}
	if tick.ID == 0 {
		t.Fatal("delete should start the row spinner")
	}
	if cmd := l.Update(tick); cmd == nil {
		t.Error("spinner should keep ticking while deleting")
	}

	for _, m := range msgs {
		if _, ok := m.(msg.TaskDeletedMsg); ok {
			l.Update(m)
		}
	}
	if cmd := l.Update(tick); cmd != nil {
		t.Error("spinner should stop once the row is gone")
	}
}

func TestTaskList_View(t *testing.T) {
	t.Run("empty state", func(t *testing.T) {
		l := NewTaskList(nil, remoteOptions(), nil, nil, nil)
		view := l.View()
		for _, want := range []string{"To-Do-List", "Add", "Add your first task"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
		if strings.Contains(view, "Delete All") {
			t.Error("bulk controls should be hidden with nothing checked")
		}
	})

	t.Run("rows and bulk controls", func(t *testing.T) {
		l := loadedList(t, newFakeBackend(), remoteOptions())
		view := l.View()
		for _, want := range []string{"delectus aut autem", "Delete All", "Delete Selected (1)", "[del]"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
	})

	t.Run("deleting row", func(t *testing.T) {
		l := loadedList(t, newFakeBackend(), remoteOptions())
		l.Delete(0)
		if !strings.Contains(l.View(), "deleting") {
			t.Error("view should show the deleting indicator")
		}
	})
}
