// Package mockapi is an in-memory stand-in for the remote users/todos API.
// It serves the same four routes the client uses, starts from a fixed seed
// and can be told to fail individual routes.
package mockapi

import (
	"context"
	"encoding/json"
	"net"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/Iron-Ham/todolist/internal/api"
	"github.com/Iron-Ham/todolist/internal/logging"
)

// Route names a served endpoint for fault injection.
type Route string

const (
	RouteUsers  Route = "GET /users"
	RouteTasks  Route = "GET /users/{userId}/todos"
	RouteDelete Route = "DELETE /todos/{id}"
	RouteSave   Route = "PUT /todos/{id}"
)

// Fault replaces the normal response of a route.
// A zero Status keeps 200 (useful with Body to serve malformed JSON).
type Fault struct {
	Status int
	Body   string
	Delay  time.Duration
}

// Request is a record of one request the server handled.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Body      string
}

// Server holds the mock state. It is safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	users    []api.User
	tasks    []api.Task
	faults   map[Route]Fault
	requests []Request

	logger *logging.Logger
	router *router.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithData replaces the seed data.
func WithData(users []api.User, tasks []api.Task) Option {
	return func(s *Server) {
		s.users = slices.Clone(users)
		s.tasks = slices.Clone(tasks)
	}
}

// New returns a Server loaded with SeedUsers and SeedTasks.
func New(opts ...Option) *Server {
	s := &Server{
		users:  SeedUsers(),
		tasks:  SeedTasks(),
		faults: make(map[Route]Fault),
		logger: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("mockapi")

	r := router.New()
	r.GET("/users", s.wrap(RouteUsers, s.listUsers))
	r.GET("/users/{userId}/todos", s.wrap(RouteTasks, s.listTasks))
	r.DELETE("/todos/{id}", s.wrap(RouteDelete, s.deleteTask))
	r.PUT("/todos/{id}", s.wrap(RouteSave, s.saveTask))
	s.router = r
	return s
}

// Handler returns the fasthttp handler serving all routes.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.router.Handler
}

// Serve serves on ln until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &fasthttp.Server{
		Handler: s.Handler(),
		Name:    "todolist-mockapi",
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		return srv.Shutdown()
	case err := <-errCh:
		return err
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("mock api listening", "addr", ln.Addr().String())
	return s.Serve(ctx, ln)
}

// ServeInmemory serves over an in-memory listener, for tests and demos that
// must not open sockets. Clients connect through the returned dial function
// (any base URL host works). stop shuts the server down.
func (s *Server) ServeInmemory() (dial fasthttp.DialFunc, stop func()) {
	ln := fasthttputil.NewInmemoryListener()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Serve(ctx, ln)
	}()

	dial = func(string) (net.Conn, error) { return ln.Dial() }
	stop = func() {
		cancel()
		<-done
		ln.Close()
	}
	return dial, stop
}

// SetFault makes route answer with f until ClearFaults is called.
func (s *Server) SetFault(route Route, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = f
}

// ClearFaults restores normal responses on every route.
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.faults)
}

// Requests returns the requests handled so far, oldest first.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Tasks returns a copy of the stored todos.
func (s *Server) Tasks() []api.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// wrap records the request and applies any fault before calling h.
func (s *Server) wrap(route Route, h fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    string(ctx.Method()),
			Path:      string(ctx.Path()),
			RequestID: string(ctx.Request.Header.Peek(api.RequestIDHeader)),
			Body:      string(ctx.PostBody()),
		})
		fault, faulty := s.faults[route]
		s.mu.Unlock()

		s.logger.Debug("request",
			"route", string(route),
			"path", string(ctx.Path()),
			"request_id", string(ctx.Request.Header.Peek(api.RequestIDHeader)),
			"fault", faulty,
		)

		if !faulty {
			h(ctx)
			return
		}
		if fault.Delay > 0 {
			time.Sleep(fault.Delay)
		}
		status := fault.Status
		if status == 0 {
			status = fasthttp.StatusOK
		}
		ctx.SetStatusCode(status)
		ctx.Response.Header.SetContentType("application/json; charset=utf-8")
		ctx.SetBodyString(fault.Body)
	}
}

func respondJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	ctx.Response.Header.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func intParam(ctx *fasthttp.RequestCtx, name string) (int, bool) {
	raw, _ := ctx.UserValue(name).(string)
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

func (s *Server) listUsers(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	users := slices.Clone(s.users)
	s.mu.Unlock()
	respondJSON(ctx, fasthttp.StatusOK, users)
}

func (s *Server) listTasks(ctx *fasthttp.RequestCtx) {
	userID, ok := intParam(ctx, "userId")
	if !ok {
		respondJSON(ctx, fasthttp.StatusOK, []api.Task{})
		return
	}

	s.mu.Lock()
	out := []api.Task{}
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	s.mu.Unlock()
	respondJSON(ctx, fasthttp.StatusOK, out)
}

// deleteTask answers 200 with an empty object whether or not the id exists,
// as the public API does.
func (s *Server) deleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := intParam(ctx, "id")
	if ok {
		s.mu.Lock()
		s.tasks = slices.DeleteFunc(s.tasks, func(t api.Task) bool { return t.ID == id })
		s.mu.Unlock()
	}
	respondJSON(ctx, fasthttp.StatusOK, struct{}{})
}

// saveTask upserts the body under the path id and echoes it back.
func (s *Server) saveTask(ctx *fasthttp.RequestCtx) {
	id, ok := intParam(ctx, "id")
	if !ok {
		respondJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var task api.Task
	if err := json.Unmarshal(ctx.PostBody(), &task); err != nil {
		respondJSON(ctx, fasthttp.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	task.ID = id

	s.mu.Lock()
	if i := slices.IndexFunc(s.tasks, func(t api.Task) bool { return t.ID == id }); i >= 0 {
		s.tasks[i] = task
	} else {
		s.tasks = append(s.tasks, task)
	}
	s.mu.Unlock()

	respondJSON(ctx, fasthttp.StatusOK, task)
}
