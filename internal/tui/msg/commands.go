package msg

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/todolist/internal/api"
	"github.com/Iron-Ham/todolist/internal/todo"
)

// Backend is the remote API as the TUI uses it. *api.Client implements it.
type Backend interface {
	ListUsers(ctx context.Context) ([]api.User, error)
	ListTasks(ctx context.Context, userID int) ([]api.Task, error)
	DeleteTask(ctx context.Context, id int) error
	SaveTask(ctx context.Context, task api.Task) error
}

// FetchUsers returns a command that loads the user list.
func FetchUsers(b Backend) tea.Cmd {
	return func() tea.Msg {
		users, err := b.ListUsers(context.Background())
		return UsersLoadedMsg{Users: users, Err: err}
	}
}

// FetchTasks returns a command that loads userID's tasks, tagged with seq.
func FetchTasks(b Backend, seq uint64, userID int) tea.Cmd {
	return func() tea.Msg {
		tasks, err := b.ListTasks(context.Background(), userID)
		return TasksLoadedMsg{Seq: seq, UserID: userID, Tasks: tasks, Err: err}
	}
}

// DeleteTask returns a command that deletes task remotely on behalf of the
// list entry key.
func DeleteTask(b Backend, key todo.Key, task todo.Task) tea.Cmd {
	return func() tea.Msg {
		err := b.DeleteTask(context.Background(), task.ID)
		return TaskDeletedMsg{Key: key, Task: task, Err: err}
	}
}

// SaveTask returns a command that PUTs task.
func SaveTask(b Backend, task todo.Task) tea.Cmd {
	return func() tea.Msg {
		err := b.SaveTask(context.Background(), todo.TaskToAPI(task))
		return TaskSavedMsg{Task: task, Err: err}
	}
}
