package api

import (
	"errors"
	"fmt"
)

// Error categories for the gateway. Callers branch with errors.Is; the
// concrete *Error carries the status code and server message.
var (
	// ErrNetwork indicates no response was received (connection refused,
	// timeout, DNS failure)
	ErrNetwork = errors.New("network error")

	// ErrAuth indicates an expired or invalid token (401) - the caller
	// should force a re-login
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound indicates the resource does not exist or is not visible
	// to this user (404)
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the server rejected a stale mutation (409)
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates the request was rejected client-side before
	// any network call was issued
	ErrValidation = errors.New("validation failed")

	// ErrServer indicates a 5xx or otherwise unexpected status
	ErrServer = errors.New("server error")
)

// Error is the concrete error returned for failed requests
type Error struct {
	// StatusCode is the HTTP status, or 0 when no response was received
	StatusCode int

	// Message is the server's error message when one was parseable,
	// otherwise a generic description
	Message string

	category error
	cause    error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap lets errors.Is match both the category sentinel and, for network
// and validation errors, the underlying cause.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.category, e.cause}
	}
	return []error{e.category}
}

// statusError maps an HTTP status and server message onto the taxonomy
func statusError(status int, message string) *Error {
	var category error
	switch {
	case status == 401:
		category = ErrAuth
	case status == 404:
		category = ErrNotFound
	case status == 409:
		category = ErrConflict
	default:
		category = ErrServer
	}
	if message == "" {
		message = "request failed"
	}
	return &Error{StatusCode: status, Message: message, category: category}
}

// networkError wraps a transport failure
func networkError(err error) *Error {
	return &Error{Message: err.Error(), category: ErrNetwork, cause: err}
}

// validationError wraps a client-side rejection
func validationError(err error) *Error {
	return &Error{Message: err.Error(), category: ErrValidation, cause: err}
}
