package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/todolist/internal/api"
	"github.com/Iron-Ham/todolist/internal/errors"
)

// fakeBackend serves canned users and per-user tasks and records mutations.
type fakeBackend struct {
	users     []api.User
	usersErr  error
	tasks     map[int][]api.Task
	tasksErr  error
	deleteErr error
	saveErr   error

	listCalls []int
	deleted   []int
	saved     []api.Task
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users: []api.User{
			{ID: 1, Name: "Leanne Graham"},
			{ID: 2, Name: "Ervin Howell"},
		},
		tasks: map[int][]api.Task{
			1: {
				{UserID: 1, ID: 1, Title: "delectus aut autem"},
				{UserID: 1, ID: 2, Title: "quis ut nam", Completed: true},
			},
			2: {
				{UserID: 2, ID: 21, Title: "suscipit repellat"},
			},
		},
	}
}

func (f *fakeBackend) ListUsers(context.Context) ([]api.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeBackend) ListTasks(_ context.Context, userID int) ([]api.Task, error) {
	f.listCalls = append(f.listCalls, userID)
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	return f.tasks[userID], nil
}

func (f *fakeBackend) DeleteTask(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeBackend) SaveTask(_ context.Context, t api.Task) error {
	f.saved = append(f.saved, t)
	return f.saveErr
}

var errBoom = errors.NewAPIError("GET", "/users/1/todos", errors.ErrTransport)

// runCmd executes cmd and returns the messages it produces, expanding
// batches one level. The only timer it can reach is the spinner tick that
// remote deletes batch with the request, which costs about 100ms; cursor
// blink commands from the add input are not reached by these paths.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	m := cmd()
	batch, ok := m.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{m}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func intPtr(v int) *int {
	return &v
}
