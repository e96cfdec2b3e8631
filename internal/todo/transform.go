package todo

import "github.com/Iron-Ham/todolist/internal/api"

// UserFromAPI maps a remote user record to a selector entry. Fields other than
// id and name are dropped.
func UserFromAPI(u api.User) User {
	return User{
		ID:   u.ID,
		Name: u.Name,
	}
}

// TaskFromAPI maps a remote todo record to a Task.
func TaskFromAPI(t api.Task) Task {
	return Task{
		OwnerID: t.UserID,
		ID:      t.ID,
		Text:    t.Title,
		Checked: t.Completed,
	}
}

// TaskToAPI is the inverse of TaskFromAPI. It builds the payload for PUT /todos/{id}.
func TaskToAPI(t Task) api.Task {
	return api.Task{
		UserID:    t.OwnerID,
		ID:        t.ID,
		Title:     t.Text,
		Completed: t.Checked,
	}
}

// UsersFromAPI maps every record through UserFromAPI, keeping order.
func UsersFromAPI(users []api.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = UserFromAPI(u)
	}
	return out
}

// TasksFromAPI maps every record through TaskFromAPI, keeping order.
func TasksFromAPI(tasks []api.Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = TaskFromAPI(t)
	}
	return out
}
