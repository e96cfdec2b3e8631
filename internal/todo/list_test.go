package todo

import (
	"slices"
	"testing"

	"github.com/Iron-Ham/todolist/internal/errors"
)

func texts(l *List) []string {
	var out []string
	for _, t := range l.Tasks() {
		out = append(out, t.Text)
	}
	return out
}

func listOf(items ...string) *List {
	tasks := make([]Task, len(items))
	for i, s := range items {
		tasks[i] = Task{OwnerID: 1, ID: i + 1, Text: s}
	}
	return NewList(tasks)
}

func TestList_ZeroValue(t *testing.T) {
	var l List
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if _, err := l.Add("first", 1); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestList_Add(t *testing.T) {
	t.Run("prepends unchecked task", func(t *testing.T) {
		l := &List{}
		for i, text := range []string{"one", "two", "three"} {
			before := l.Len()
			task, err := l.Add(text, 7)
			if err != nil {
				t.Fatalf("Add(%q) error = %v", text, err)
			}
			if l.Len() != before+1 {
				t.Errorf("Len() = %d, want %d", l.Len(), before+1)
			}
			first, _ := l.At(0)
			if first != task {
				t.Errorf("At(0) = %+v, want %+v", first, task)
			}
			if task.Checked {
				t.Error("new task should be unchecked")
			}
			if task.OwnerID != 7 {
				t.Errorf("OwnerID = %d, want 7", task.OwnerID)
			}
			if task.ID != i+1 {
				t.Errorf("ID = %d, want %d", task.ID, i+1)
			}
		}
		if got := texts(l); !slices.Equal(got, []string{"three", "two", "one"}) {
			t.Errorf("texts = %v", got)
		}
	})

	t.Run("buy milk on empty list", func(t *testing.T) {
		l := &List{}
		if _, err := l.Add("Buy milk", 1); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		want := []Task{{OwnerID: 1, ID: 1, Text: "Buy milk", Checked: false}}
		if got := l.Tasks(); !slices.Equal(got, want) {
			t.Errorf("Tasks() = %+v, want %+v", got, want)
		}
	})

	t.Run("keeps text as typed", func(t *testing.T) {
		l := &List{}
		task, _ := l.Add("  padded ", 1)
		if task.Text != "  padded " {
			t.Errorf("Text = %q", task.Text)
		}
	})

	t.Run("rejects blank text", func(t *testing.T) {
		for _, text := range []string{"", " ", "\t\n  "} {
			l := listOf("A")
			_, err := l.Add(text, 1)
			if !errors.Is(err, errors.ErrEmptyTaskText) {
				t.Errorf("Add(%q) error = %v, want ErrEmptyTaskText", text, err)
			}
			if got := texts(l); !slices.Equal(got, []string{"A"}) {
				t.Errorf("list changed to %v", got)
			}
		}
	})

	t.Run("id can collide after delete", func(t *testing.T) {
		l := listOf("A", "B")
		l.DeleteAt(0)
		task, _ := l.Add("C", 1)
		if task.ID != 2 {
			t.Errorf("ID = %d, want 2 (len+1)", task.ID)
		}
		if other, _ := l.At(1); other.ID != task.ID {
			t.Errorf("expected duplicate id, got %d and %d", task.ID, other.ID)
		}
	})
}

func TestList_DeleteAll(t *testing.T) {
	for _, l := range []*List{{}, listOf("A"), listOf("A", "B", "C")} {
		l.DeleteAll()
		if l.Len() != 0 {
			t.Errorf("Len() after DeleteAll = %d", l.Len())
		}
	}
}

func TestList_DeleteSelected(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []Task
		want    []Task
		removed int
	}{
		{
			name:  "no checked tasks",
			tasks: []Task{{Text: "A"}},
			want:  []Task{{Text: "A"}},
		},
		{
			name:    "first checked",
			tasks:   []Task{{Text: "A", Checked: true}, {Text: "B"}},
			want:    []Task{{Text: "B"}},
			removed: 1,
		},
		{
			name: "interleaved",
			tasks: []Task{
				{Text: "A", Checked: true}, {Text: "B"}, {Text: "C", Checked: true},
				{Text: "D"}, {Text: "E"},
			},
			want:    []Task{{Text: "B"}, {Text: "D"}, {Text: "E"}},
			removed: 2,
		},
		{
			name:    "all checked",
			tasks:   []Task{{Text: "A", Checked: true}, {Text: "B", Checked: true}},
			want:    []Task{},
			removed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList(tt.tasks)
			if got := l.DeleteSelected(); got != tt.removed {
				t.Errorf("DeleteSelected() = %d, want %d", got, tt.removed)
			}
			if got := l.Tasks(); !slices.Equal(got, tt.want) {
				t.Errorf("Tasks() = %+v, want %+v", got, tt.want)
			}
			if l.CheckedCount() != 0 {
				t.Errorf("CheckedCount() = %d, want 0", l.CheckedCount())
			}
		})
	}
}

func TestList_DeleteAt(t *testing.T) {
	l := listOf("A", "B", "C")
	task, err := l.DeleteAt(1)
	if err != nil {
		t.Fatalf("DeleteAt(1) error = %v", err)
	}
	if task.Text != "B" {
		t.Errorf("deleted %q, want B", task.Text)
	}
	if got := texts(l); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("texts = %v", got)
	}

	for _, i := range []int{-1, 2, 10} {
		if _, err := l.DeleteAt(i); !errors.Is(err, errors.ErrIndexOutOfRange) {
			t.Errorf("DeleteAt(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestList_Move(t *testing.T) {
	tests := []struct {
		name string
		op   func(*List) bool
		ok   bool
		want []string
	}{
		{"up from 1", func(l *List) bool { return l.MoveUp(1) }, true, []string{"B", "A", "C"}},
		{"up from 2", func(l *List) bool { return l.MoveUp(2) }, true, []string{"A", "C", "B"}},
		{"up at first", func(l *List) bool { return l.MoveUp(0) }, false, []string{"A", "B", "C"}},
		{"down from 0", func(l *List) bool { return l.MoveDown(0) }, true, []string{"B", "A", "C"}},
		{"down from 1", func(l *List) bool { return l.MoveDown(1) }, true, []string{"A", "C", "B"}},
		{"down at last", func(l *List) bool { return l.MoveDown(2) }, false, []string{"A", "B", "C"}},
		{"up out of range", func(l *List) bool { return l.MoveUp(3) }, false, []string{"A", "B", "C"}},
		{"down negative", func(l *List) bool { return l.MoveDown(-1) }, false, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listOf("A", "B", "C")
			if got := tt.op(l); got != tt.ok {
				t.Errorf("moved = %v, want %v", got, tt.ok)
			}
			if got := texts(l); !slices.Equal(got, tt.want) {
				t.Errorf("texts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestList_MoveKeepsKeysWithTasks(t *testing.T) {
	l := listOf("A", "B")
	keyA := l.KeyAt(0)
	l.MoveDown(0)
	if got := l.IndexOf(keyA); got != 1 {
		t.Errorf("IndexOf(A) = %d, want 1", got)
	}
}

func TestList_Toggle(t *testing.T) {
	l := listOf("A", "B", "C")
	if err := l.Toggle(1); err != nil {
		t.Fatalf("Toggle(1) error = %v", err)
	}
	for i, want := range []bool{false, true, false} {
		task, _ := l.At(i)
		if task.Checked != want {
			t.Errorf("At(%d).Checked = %v, want %v", i, task.Checked, want)
		}
	}
	if got := texts(l); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Errorf("order changed: %v", got)
	}
	if l.CheckedCount() != 1 {
		t.Errorf("CheckedCount() = %d, want 1", l.CheckedCount())
	}

	l.Toggle(1)
	if l.CheckedCount() != 0 {
		t.Errorf("CheckedCount() after second toggle = %d, want 0", l.CheckedCount())
	}
	if err := l.Toggle(3); !errors.Is(err, errors.ErrIndexOutOfRange) {
		t.Errorf("Toggle(3) error = %v", err)
	}
}

func TestList_Remove(t *testing.T) {
	l := listOf("A", "B", "C")
	keyB := l.KeyAt(1)
	l.MoveUp(1)

	task, ok := l.Remove(keyB)
	if !ok || task.Text != "B" {
		t.Fatalf("Remove(B) = %+v, %v", task, ok)
	}
	if got := texts(l); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("texts = %v", got)
	}
	if _, ok := l.Remove(keyB); ok {
		t.Error("second Remove should report false")
	}
}

func TestList_ReplaceIssuesFreshKeys(t *testing.T) {
	l := listOf("A")
	old := l.KeyAt(0)
	l.Replace([]Task{{Text: "X"}})
	if l.IndexOf(old) != -1 {
		t.Error("key from before Replace should not be found")
	}
	if l.KeyAt(0) == old || l.KeyAt(0) == 0 {
		t.Errorf("KeyAt(0) = %d after Replace", l.KeyAt(0))
	}
	if l.KeyAt(5) != 0 {
		t.Error("KeyAt out of range should be 0")
	}
}

func TestList_TasksReturnsCopy(t *testing.T) {
	l := listOf("A")
	tasks := l.Tasks()
	tasks[0].Text = "changed"
	if got, _ := l.At(0); got.Text != "A" {
		t.Errorf("list mutated through Tasks(): %q", got.Text)
	}
}

func TestList_Boundaries(t *testing.T) {
	l := listOf("A", "B")
	if !l.IsFirst(0) || l.IsFirst(1) {
		t.Error("IsFirst wrong")
	}
	if !l.IsLast(1) || l.IsLast(0) {
		t.Error("IsLast wrong")
	}

	single := listOf("only")
	if !single.IsFirst(0) || !single.IsLast(0) {
		t.Error("single entry should be both first and last")
	}
}
