package todo

// SeedTexts are the tasks the local variant starts with.
var SeedTexts = []string{"Eat breakfast", "Go shower", "Walk the dog"}

// SeedTasks returns the starting tasks of the local variant, unchecked, with
// ids 1..n in display order.
func SeedTasks(ownerID int) []Task {
	tasks := make([]Task, len(SeedTexts))
	for i, text := range SeedTexts {
		tasks[i] = Task{OwnerID: ownerID, ID: i + 1, Text: text}
	}
	return tasks
}
