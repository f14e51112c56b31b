// Package httpx writes the dashboard JSON responses: health probes, the
// product lookup and RFC 7807 problems.
package httpx

import (
	"errors"
	"net/http"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
)

// ErrBadRequest marks malformed JSON endpoint input.
var ErrBadRequest = errors.New("bad request")

// RespondError maps backend failures to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, ErrBadRequest):
		Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, apiclient.ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "Sign in again to continue.")
	case errors.Is(err, apiclient.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, apiclient.ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		Problem(w, apiErr.Status, http.StatusText(apiErr.Status), apiErr.Message)
	case errors.As(err, &apiErr), errors.Is(err, apiclient.ErrTransport):
		Problem(w, http.StatusBadGateway, "Bad Gateway", "The inventory service is unavailable.")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
