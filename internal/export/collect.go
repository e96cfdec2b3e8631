// Package export gathers tasks for one or every user and writes them out as
// JSON, CSV, YAML or PDF.
package export

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Iron-Ham/todolist/internal/api"
	"github.com/Iron-Ham/todolist/internal/errors"
	"github.com/Iron-Ham/todolist/internal/logging"
	"github.com/Iron-Ham/todolist/internal/todo"
)

// Source is the part of the API client the collector needs.
type Source interface {
	ListUsers(ctx context.Context) ([]api.User, error)
	ListTasks(ctx context.Context, userID int) ([]api.Task, error)
}

// UserTasks is one user's section of a report.
type UserTasks struct {
	User  todo.User   `json:"user" yaml:"user"`
	Tasks []todo.Task `json:"tasks" yaml:"tasks"`
}

// Report is what the writers render.
type Report struct {
	GeneratedAt time.Time   `json:"generatedAt" yaml:"generatedAt"`
	Users       []UserTasks `json:"users" yaml:"users"`
}

// TaskCount returns the number of tasks across all users.
func (r Report) TaskCount() int {
	n := 0
	for _, u := range r.Users {
		n += len(u.Tasks)
	}
	return n
}

// Collector fetches report data.
type Collector struct {
	src         Source
	maxParallel int
	logger      *logging.Logger
	now         func() time.Time
}

// NewCollector returns a Collector running at most maxParallel task fetches
// at once. Values below 1 are treated as 1.
func NewCollector(src Source, maxParallel int, logger *logging.Logger) *Collector {
	if maxParallel < 1 {
		maxParallel = 1
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Collector{
		src:         src,
		maxParallel: maxParallel,
		logger:      logger.WithComponent("export"),
		now:         time.Now,
	}
}

// Collect fetches the user list and then, concurrently, the tasks of every
// user, or only of userID when it is non-nil. Users appear in ascending id
// order. The first failed fetch cancels the rest and is returned.
func (c *Collector) Collect(ctx context.Context, userID *int) (Report, error) {
	apiUsers, err := c.src.ListUsers(ctx)
	if err != nil {
		return Report{}, errors.Wrap(err, "list users")
	}
	users := todo.UsersFromAPI(apiUsers)

	if userID != nil {
		i := slices.IndexFunc(users, func(u todo.User) bool { return u.ID == *userID })
		if i < 0 {
			return Report{}, errors.NewNotFoundError("user", strconv.Itoa(*userID))
		}
		users = users[i : i+1]
	}

	p := pool.NewWithResults[UserTasks]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(c.maxParallel)

	for _, u := range users {
		p.Go(func(ctx context.Context) (UserTasks, error) {
			tasks, err := c.src.ListTasks(ctx, u.ID)
			if err != nil {
				c.logger.WithUser(u.ID).Warn("task fetch failed", "error", err)
				return UserTasks{}, errors.Wrapf(err, "list tasks for user %d", u.ID)
			}
			c.logger.WithUser(u.ID).Debug("tasks fetched", "count", len(tasks))
			return UserTasks{User: u, Tasks: todo.TasksFromAPI(tasks)}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return Report{}, err
	}

	slices.SortFunc(results, func(a, b UserTasks) int { return a.User.ID - b.User.ID })
	return Report{GeneratedAt: c.now().UTC(), Users: results}, nil
}
