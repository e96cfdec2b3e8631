package mockapi

import "github.com/Iron-Ham/todolist/internal/api"

// SeedUsers returns the users the mock server starts with.
func SeedUsers() []api.User {
	return []api.User{
		{
			ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz",
			Phone: "1-770-736-8031 x56442", Website: "hildegard.org",
			Address: &api.Address{Street: "Kulas Light", Suite: "Apt. 556", City: "Gwenborough", Zipcode: "92998-3874",
				Geo: api.Geo{Lat: "-37.3159", Lng: "81.1496"}},
			Company: &api.Company{Name: "Romaguera-Crona", CatchPhrase: "Multi-layered client-server neural-net", BS: "harness real-time e-markets"},
		},
		{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv", Website: "anastasia.net"},
		{ID: 3, Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net", Website: "ramiro.info"},
		{ID: 4, Name: "Patricia Lebsack", Username: "Karianne", Email: "Julianne.OConner@kory.org", Website: "kale.biz"},
		{ID: 5, Name: "Chelsey Dietrich", Username: "Kamren", Email: "Lucio_Hettinger@annie.ca", Website: "demarco.info"},
	}
}

var seedTitles = []string{
	"delectus aut autem",
	"quis ut nam facilis et officia qui",
	"fugiat veniam minus",
	"et porro tempora",
}

// SeedTasks returns the todos the mock server starts with: four per seed
// user, ids assigned in order, every third one completed.
func SeedTasks() []api.Task {
	var tasks []api.Task
	id := 1
	for _, u := range SeedUsers() {
		for _, title := range seedTitles {
			tasks = append(tasks, api.Task{
				UserID:    u.ID,
				ID:        id,
				Title:     title,
				Completed: id%3 == 0,
			})
			id++
		}
	}
	return tasks
}
