package todo

import "fmt"

// Task is one to-do entry.
type Task struct {
	OwnerID int    `json:"ownerId" yaml:"ownerId"`
	ID      int    `json:"id" yaml:"id"`
	Text    string `json:"text" yaml:"text"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// String renders the task as a single checklist line.
func (t Task) String() string {
	mark := " "
	if t.Checked {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s", mark, t.Text)
}

// User is a selectable owner of tasks.
type User struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Label is the text shown for the user in the selector.
func (u User) Label() string {
	return "User: " + u.Name
}
