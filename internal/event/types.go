package event

import (
	"time"

	"github.com/Iron-Ham/todolist/internal/todo"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns "category.action", e.g. "task.added".
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// Event type names.
const (
	TypeUserSelected     = "user.selected"
	TypeTasksReplaced    = "tasks.replaced"
	TypeTaskAdded        = "task.added"
	TypeTaskDeleted      = "task.deleted"
	TypeTaskDeleteFailed = "task.delete_failed"
)

// UserSelectedEvent is emitted when the selector reports a selection.
type UserSelectedEvent struct {
	baseEvent
	UserID *int // nil means no user
}

// NewUserSelectedEvent creates a UserSelectedEvent.
func NewUserSelectedEvent(userID *int) UserSelectedEvent {
	return UserSelectedEvent{
		baseEvent: newBaseEvent(TypeUserSelected),
		UserID:    userID,
	}
}

// TasksReplacedEvent is emitted when a completed fetch replaced the list.
type TasksReplacedEvent struct {
	baseEvent
	UserID int
	Count  int
	Err    error // set when the fetch failed and the list was emptied
}

// NewTasksReplacedEvent creates a TasksReplacedEvent.
func NewTasksReplacedEvent(userID, count int, err error) TasksReplacedEvent {
	return TasksReplacedEvent{
		baseEvent: newBaseEvent(TypeTasksReplaced),
		UserID:    userID,
		Count:     count,
		Err:       err,
	}
}

// TaskAddedEvent is emitted after a task is prepended.
type TaskAddedEvent struct {
	baseEvent
	Task      todo.Task
	Persisted bool // a PUT was issued for it
}

// NewTaskAddedEvent creates a TaskAddedEvent.
func NewTaskAddedEvent(task todo.Task, persisted bool) TaskAddedEvent {
	return TaskAddedEvent{
		baseEvent: newBaseEvent(TypeTaskAdded),
		Task:      task,
		Persisted: persisted,
	}
}

// DeleteKind says which action removed tasks.
type DeleteKind string

const (
	DeleteOne      DeleteKind = "one"
	DeleteSelected DeleteKind = "selected"
	DeleteAll      DeleteKind = "all"
)

// TaskDeletedEvent is emitted after tasks leave the list.
type TaskDeletedEvent struct {
	baseEvent
	Kind  DeleteKind
	Tasks []todo.Task
}

// NewTaskDeletedEvent creates a TaskDeletedEvent.
func NewTaskDeletedEvent(kind DeleteKind, tasks []todo.Task) TaskDeletedEvent {
	return TaskDeletedEvent{
		baseEvent: newBaseEvent(TypeTaskDeleted),
		Kind:      kind,
		Tasks:     tasks,
	}
}

// TaskDeleteFailedEvent is emitted when a remote delete fails. The task stays.
type TaskDeleteFailedEvent struct {
	baseEvent
	Task todo.Task
	Err  error
}

// NewTaskDeleteFailedEvent creates a TaskDeleteFailedEvent.
func NewTaskDeleteFailedEvent(task todo.Task, err error) TaskDeleteFailedEvent {
	return TaskDeleteFailedEvent{
		baseEvent: newBaseEvent(TypeTaskDeleteFailed),
		Task:      task,
		Err:       err,
	}
}
