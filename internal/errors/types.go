package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// detail carries the message, cause and classification shared by the
// concrete error types.
type detail struct {
	msg        string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

func (d *detail) Unwrap() error {
	return d.cause
}

func (d *detail) Severity() Severity {
	return d.severity
}

func (d *detail) IsRetryable() bool {
	return d.retryable
}

func (d *detail) IsUserFacing() bool {
	return d.userFacing
}

func (d *detail) causeIs(t error) bool {
	return d.cause != nil && Is(d.cause, t)
}

// render builds "label [k=v, ...]: msg: cause", omitting empty pieces.
func (d *detail) render(label string, context ...string) string {
	var b strings.Builder
	b.WriteString(label)
	if len(context) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(context, ", "))
		b.WriteByte(']')
	}
	if d.msg != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(d.msg)
	}
	if d.cause != nil {
		b.WriteString(": ")
		b.WriteString(d.cause.Error())
	}
	return b.String()
}

// APIError is a failed call to the task API.
//
//	errors.NewAPIError("GET", "/users", errors.ErrTransport)
//	// api error [GET /users]: request failed: transport failure
type APIError struct {
	detail
	Method    string
	Path      string
	Status    int
	RequestID string
}

// NewAPIError reports a failed method+path request. Transport failures are
// retryable.
func NewAPIError(method, path string, cause error) *APIError {
	return &APIError{
		detail: detail{
			msg:       "request failed",
			cause:     cause,
			severity:  SeverityError,
			retryable: cause != nil && Is(cause, ErrTransport),
		},
		Method: method,
		Path:   path,
	}
}

// WithStatus sets the HTTP status; 5xx is retryable, anything else is not.
func (e *APIError) WithStatus(status int) *APIError {
	e.Status = status
	e.retryable = status >= 500
	return e
}

// WithRequestID sets the X-Request-ID the request carried.
func (e *APIError) WithRequestID(id string) *APIError {
	e.RequestID = id
	return e
}

func (e *APIError) Error() string {
	ctx := []string{e.Method + " " + e.Path}
	if e.Status != 0 {
		ctx = append(ctx, "status="+strconv.Itoa(e.Status))
	}
	if e.RequestID != "" {
		ctx = append(ctx, "request="+e.RequestID)
	}
	return e.render("api error", ctx...)
}

func (e *APIError) Is(target error) bool {
	_, same := target.(*APIError)
	return same || e.causeIs(target)
}

const maxBodySnippet = 200

// DecodeError is a response body that did not decode.
type DecodeError struct {
	detail
	Resource string

	// Body is the raw body, cut to 200 bytes plus "...".
	Body string
}

func NewDecodeError(resource string, body []byte, cause error) *DecodeError {
	snippet := string(body)
	if len(snippet) > maxBodySnippet {
		snippet = snippet[:maxBodySnippet] + "..."
	}
	return &DecodeError{
		detail: detail{
			msg:      "cannot decode " + resource,
			cause:    cause,
			severity: SeverityWarning,
		},
		Resource: resource,
		Body:     snippet,
	}
}

func (e *DecodeError) Error() string { return e.render("") }

func (e *DecodeError) Is(target error) bool {
	if _, same := target.(*DecodeError); same {
		return true
	}
	return target == ErrMalformedResponse || e.causeIs(target)
}

// NotFoundError is a user or task that does not exist.
type NotFoundError struct {
	detail
	ResourceType string
	ResourceID   string
}

// NewNotFoundError renders as "user '42' not found".
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		detail: detail{
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

func (e *NotFoundError) Error() string {
	return e.render(fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID))
}

func (e *NotFoundError) Is(target error) bool {
	_, same := target.(*NotFoundError)
	return same || e.causeIs(target)
}

// ValidationError is input the user has to fix. It matches ErrInvalidInput.
//
//	errors.NewValidationError("user id must be an integer").WithField("userId").WithValue("abc")
type ValidationError struct {
	detail
	Field string
	Value any
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{detail: detail{
		msg:        message,
		severity:   SeverityWarning,
		userFacing: true,
	}}
}

func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

func (e *ValidationError) Error() string {
	var ctx []string
	if e.Field != "" {
		ctx = append(ctx, "field="+e.Field)
	}
	if e.Value != nil {
		ctx = append(ctx, fmt.Sprintf("value=%v", e.Value))
	}
	return e.render("validation error", ctx...)
}

func (e *ValidationError) Is(target error) bool {
	if _, same := target.(*ValidationError); same {
		return true
	}
	return target == ErrInvalidInput || e.causeIs(target)
}
