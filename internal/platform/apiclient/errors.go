package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultErrorMessage is used when the backend does not explain a failure.
const DefaultErrorMessage = "Request failed"

var (
	// ErrTransport marks failures where no response was received.
	ErrTransport = errors.New("backend unreachable")
	// ErrUnauthorized matches 401 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrConflict matches 409 and 412 responses (stale revision).
	ErrConflict = errors.New("conflict")
)

// APIError is returned for every non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict || e.Status == http.StatusPreconditionFailed
	}
	return false
}

// TransportError wraps network level failures (dial, timeout, reset).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
