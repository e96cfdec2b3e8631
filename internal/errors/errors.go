// Package errors holds the error values and types shared across the
// todolist packages.
//
// Failures talking to the task API are *APIError (wrapping ErrTransport or
// ErrRemoteRejected) or *DecodeError (matching ErrMalformedResponse).
// Bad user input is *ValidationError, which matches ErrInvalidInput. A
// missing user or task is *NotFoundError.
//
//	var apiErr *errors.APIError
//	if errors.As(err, &apiErr) && apiErr.Status == 404 { ... }
//
// Nothing in the task list retries on error; IsRetryable exists so callers
// and logs can classify failures.
package errors

import (
	"errors"
	"fmt"
)

// Aliases so callers need only one errors import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity ranks how loudly an error should be reported.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = [...]string{"debug", "info", "warning", "error", "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Remote API failures.
var (
	// ErrRemoteRejected means the API answered with a non-2xx status.
	ErrRemoteRejected = New("remote rejected request")
	// ErrTransport means no response arrived at all.
	ErrTransport = New("transport failure")
	// ErrMalformedResponse means the body was not the expected JSON.
	ErrMalformedResponse = New("malformed response")
)

// Task list failures.
var (
	ErrEmptyTaskText   = New("task text is empty")
	ErrIndexOutOfRange = New("task index out of range")
)

var (
	ErrInvalidInput    = New("invalid input")
	ErrOperationFailed = New("operation failed")
)

// Classified is implemented by every error type in this package.
type Classified interface {
	error
	Severity() Severity
	IsRetryable() bool
	IsUserFacing() bool
}

// IsRetryable reports whether err is transient. Errors from outside this
// package count as retryable only when they wrap ErrTransport.
func IsRetryable(err error) bool {
	if c, ok := classify(err); ok {
		return c.IsRetryable()
	}
	return err != nil && Is(err, ErrTransport)
}

// IsUserFacing reports whether err's message can be shown as is.
func IsUserFacing(err error) bool {
	c, ok := classify(err)
	return ok && c.IsUserFacing()
}

// GetSeverity returns err's severity; SeverityError for foreign errors and
// SeverityDebug for nil.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	if c, ok := classify(err); ok {
		return c.Severity()
	}
	return SeverityError
}

func classify(err error) (Classified, bool) {
	if err == nil {
		return nil, false
	}
	var c Classified
	return c, As(err, &c)
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
