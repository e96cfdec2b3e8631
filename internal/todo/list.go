package todo

import (
	"slices"
	"strings"

	"github.com/Iron-Ham/todolist/internal/errors"
)

// Key identifies an entry of a List for as long as the entry exists. Keys are
// never reused within a List, so a completion that arrives after the list has
// been reordered or replaced can still find (or fail to find) its row.
type Key uint64

// List is an ordered collection of tasks. The zero value is an empty list
// ready for use. A List is not safe for concurrent use; it is owned by the
// task list view and mutated from its update loop only.
type List struct {
	tasks   []Task
	keys    []Key
	nextKey Key
}

// NewList returns a list holding a copy of tasks in the given order.
func NewList(tasks []Task) *List {
	l := &List{}
	l.Replace(tasks)
	return l
}

func (l *List) newKey() Key {
	l.nextKey++
	return l.nextKey
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// At returns the task at position i.
func (l *List) At(i int) (Task, bool) {
	if i < 0 || i >= len(l.tasks) {
		return Task{}, false
	}
	return l.tasks[i], true
}

// KeyAt returns the key of the entry at position i, or 0 when out of range.
func (l *List) KeyAt(i int) Key {
	if i < 0 || i >= len(l.keys) {
		return 0
	}
	return l.keys[i]
}

// IndexOf returns the current position of key, or -1.
func (l *List) IndexOf(key Key) int {
	return slices.Index(l.keys, key)
}

// Tasks returns a copy of the tasks in display order.
func (l *List) Tasks() []Task {
	return slices.Clone(l.tasks)
}

// Keys returns a copy of the entry keys in display order.
func (l *List) Keys() []Key {
	return slices.Clone(l.keys)
}

// Replace discards every entry and loads tasks in the given order.
func (l *List) Replace(tasks []Task) {
	l.tasks = slices.Clone(tasks)
	l.keys = make([]Key, len(tasks))
	for i := range l.keys {
		l.keys[i] = l.newKey()
	}
}

// Add prepends an unchecked task with the given text and owner. The id is
// Len()+1, which can collide with an existing id once tasks have been
// deleted. The text is stored as typed; it is only trimmed for the emptiness
// check.
func (l *List) Add(text string, ownerID int) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, errors.ErrEmptyTaskText
	}

	task := Task{
		OwnerID: ownerID,
		ID:      len(l.tasks) + 1,
		Text:    text,
		Checked: false,
	}
	l.tasks = slices.Insert(l.tasks, 0, task)
	l.keys = slices.Insert(l.keys, 0, l.newKey())
	return task, nil
}

// DeleteAll removes every task.
func (l *List) DeleteAll() {
	l.tasks = nil
	l.keys = nil
}

// DeleteSelected removes every checked task, preserving the order of the
// rest, and returns how many were removed.
func (l *List) DeleteSelected() int {
	tasks := l.tasks[:0:0]
	keys := l.keys[:0:0]
	for i, t := range l.tasks {
		if t.Checked {
			continue
		}
		tasks = append(tasks, t)
		keys = append(keys, l.keys[i])
	}
	removed := len(l.tasks) - len(tasks)
	l.tasks = tasks
	l.keys = keys
	return removed
}

// DeleteAt removes and returns the task at position i.
func (l *List) DeleteAt(i int) (Task, error) {
	if i < 0 || i >= len(l.tasks) {
		return Task{}, errors.ErrIndexOutOfRange
	}
	task := l.tasks[i]
	l.tasks = slices.Delete(l.tasks, i, i+1)
	l.keys = slices.Delete(l.keys, i, i+1)
	return task, nil
}

// Remove deletes the entry with the given key wherever it currently is.
// It reports false when the entry no longer exists.
func (l *List) Remove(key Key) (Task, bool) {
	i := l.IndexOf(key)
	if i < 0 {
		return Task{}, false
	}
	task, _ := l.DeleteAt(i)
	return task, true
}

// MoveUp swaps the task at i with the one before it. It is a no-op, returning
// false, at position 0 or out of range.
func (l *List) MoveUp(i int) bool {
	if i <= 0 || i >= len(l.tasks) {
		return false
	}
	l.swap(i, i-1)
	return true
}

// MoveDown swaps the task at i with the one after it. It is a no-op, returning
// false, at the last position or out of range.
func (l *List) MoveDown(i int) bool {
	if i < 0 || i >= len(l.tasks)-1 {
		return false
	}
	l.swap(i, i+1)
	return true
}

func (l *List) swap(i, j int) {
	l.tasks[i], l.tasks[j] = l.tasks[j], l.tasks[i]
	l.keys[i], l.keys[j] = l.keys[j], l.keys[i]
}

// Toggle flips the checked flag of the task at position i in place.
func (l *List) Toggle(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return errors.ErrIndexOutOfRange
	}
	l.tasks[i].Checked = !l.tasks[i].Checked
	return nil
}

// CheckedCount returns the number of checked tasks.
func (l *List) CheckedCount() int {
	n := 0
	for _, t := range l.tasks {
		if t.Checked {
			n++
		}
	}
	return n
}

// IsFirst reports whether i is the first position.
func (l *List) IsFirst(i int) bool {
	return i == 0
}

// IsLast reports whether i is the last position.
func (l *List) IsLast(i int) bool {
	return i == len(l.tasks)-1
}
