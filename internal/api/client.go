package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/Iron-Ham/todolist/internal/errors"
	"github.com/Iron-Ham/todolist/internal/logging"
)

// RequestIDHeader carries the per-request id that also tags the log entry.
const RequestIDHeader = "X-Request-ID"

// Client talks to the remote API over fasthttp. It is safe for concurrent use.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *logging.Logger
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the diagnostic logger. Raw response bodies are logged at DEBUG.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDial replaces the dialer, e.g. with an in-memory listener in tests.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *Client) { c.http.Dial = dial }
}

// WithRequestIDFunc replaces the request id generator.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// NewClient returns a Client for baseURL, e.g. "https://jsonplaceholder.typicode.com".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: &fasthttp.Client{
			Name:                "todolist",
			MaxIdleConnDuration: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.NopLogger(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("api")
	return c
}

// BaseURL returns the API root the client was built for.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListUsers fetches GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/users", "users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListTasks fetches GET /users/{userID}/todos.
func (c *Client) ListTasks(ctx context.Context, userID int) ([]Task, error) {
	var tasks []Task
	path := fmt.Sprintf("/users/%d/todos", userID)
	if err := c.getJSON(ctx, path, "todos", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteTask sends DELETE /todos/{id}. The response body is ignored.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	_, err := c.do(ctx, fasthttp.MethodDelete, fmt.Sprintf("/todos/%d", id), nil)
	return err
}

// SaveTask sends PUT /todos/{id} with the task as the body. The response body
// is ignored; callers keep their own copy of the task.
func (c *Client) SaveTask(ctx context.Context, task Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return errors.Wrap(err, "encode task")
	}
	_, err = c.do(ctx, fasthttp.MethodPut, fmt.Sprintf("/todos/%d", task.ID), body)
	return err
}

func (c *Client) getJSON(ctx context.Context, path, resource string, out any) error {
	body, err := c.do(ctx, fasthttp.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewDecodeError(resource, body, err)
	}
	return nil
}

// do performs one request and returns a copy of the response body on 2xx.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	requestID := c.newID()
	log := c.logger.WithRequest(requestID).With("method", method, "path", path)

	if err := ctx.Err(); err != nil {
		return nil, errors.NewAPIError(method, path, fmt.Errorf("%w: %w", errors.ErrTransport, err)).
			WithRequestID(requestID)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if body != nil {
		req.Header.SetContentType("application/json; charset=UTF-8")
		req.SetBody(body)
	}

	start := time.Now()
	if err := c.send(ctx, req, resp); err != nil {
		log.Warn("request failed", "error", err)
		return nil, errors.NewAPIError(method, path, fmt.Errorf("%w: %w", errors.ErrTransport, err)).
			WithRequestID(requestID)
	}

	status := resp.StatusCode()
	respBody := append([]byte(nil), resp.Body()...)
	log.Debug("response",
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
		"body", json.RawMessage(rawOrQuoted(respBody)),
	)

	if status < 200 || status > 299 {
		return nil, errors.NewAPIError(method, path, errors.ErrRemoteRejected).
			WithStatus(status).
			WithRequestID(requestID)
	}
	return respBody, nil
}

// send applies the tighter of the context deadline and the client timeout.
func (c *Client) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	deadline, hasDeadline := ctx.Deadline()
	if c.timeout > 0 {
		if d := time.Now().Add(c.timeout); !hasDeadline || d.Before(deadline) {
			deadline, hasDeadline = d, true
		}
	}
	if hasDeadline {
		return c.http.DoDeadline(req, resp, deadline)
	}
	return c.http.Do(req, resp)
}

// rawOrQuoted keeps valid JSON bodies structured in the log and quotes anything else.
func rawOrQuoted(body []byte) []byte {
	if len(body) == 0 {
		return []byte(`""`)
	}
	if json.Valid(body) {
		return body
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
