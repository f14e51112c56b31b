package listeditor

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
)

var (
	// ErrValidation marks drafts rejected before any request is sent.
	ErrValidation = errors.New("listeditor: validation failed")
	// ErrNotInCollection is returned for ids the instance does not hold.
	ErrNotInCollection = errors.New("listeditor: not in collection")
	// ErrDeleteNotConfirmed is returned when a delete skips the confirmation step.
	ErrDeleteNotConfirmed = errors.New("listeditor: delete not confirmed")
	// ErrUnkeyedResult is returned when a create answers 2xx without an id.
	ErrUnkeyedResult = errors.New("listeditor: saved record has no id")
)

const (
	// ConflictMessage is shown when the backend rejects a stale revision.
	ConflictMessage = "This record was changed by someone else. Reload and try again."
	// TransportMessage is shown when the backend could not be reached.
	TransportMessage = "Unable to reach the server. Check your connection and try again."
)

// ValidationError carries per-field messages keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message turns any failure into the plain inline text shown on the page.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}
	if errors.Is(err, apiclient.ErrConflict) {
		return ConflictMessage
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, apiclient.ErrTransport) {
		return TransportMessage
	}
	switch {
	case errors.Is(err, ErrNotInCollection):
		return "That record is no longer in this list."
	case errors.Is(err, ErrDeleteNotConfirmed):
		return "Please confirm the delete first."
	case errors.Is(err, ErrUnkeyedResult):
		return "The record was saved but the server did not return it. Reload the page to see it."
	}
	return err.Error()
}

// StatusFor maps a failure onto the response status of the page that reports it.
func StatusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotInCollection):
		return http.StatusNotFound
	case errors.Is(err, ErrDeleteNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, ErrUnkeyedResult):
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	case errors.Is(err, apiclient.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
