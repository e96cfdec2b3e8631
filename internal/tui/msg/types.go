package msg

import (
	"github.com/Iron-Ham/todolist/internal/api"
	"github.com/Iron-Ham/todolist/internal/todo"
)

// UsersLoadedMsg carries the result of GET /users.
type UsersLoadedMsg struct {
	Users []api.User
	Err   error
}

// TasksLoadedMsg carries the result of GET /users/{id}/todos.
// Seq is the fetch sequence number the request was issued with.
type TasksLoadedMsg struct {
	Seq    uint64
	UserID int
	Tasks  []api.Task
	Err    error
}

// TaskDeletedMsg carries the result of DELETE /todos/{id} for the list entry Key.
type TaskDeletedMsg struct {
	Key  todo.Key
	Task todo.Task
	Err  error
}

// TaskSavedMsg carries the result of PUT /todos/{id}.
type TaskSavedMsg struct {
	Task todo.Task
	Err  error
}
