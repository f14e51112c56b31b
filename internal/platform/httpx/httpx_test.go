package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"bad request", fmt.Errorf("q: %w", ErrBadRequest), http.StatusBadRequest, "q: bad request"},
		{"unauthorized", &apiclient.APIError{Status: 401, Message: "jwt expired"}, http.StatusUnauthorized, "Sign in again to continue."},
		{"not found", &apiclient.APIError{Status: 404, Message: "Product not found"}, http.StatusNotFound, "Product not found"},
		{"conflict", &apiclient.APIError{Status: 412, Message: "stale"}, http.StatusConflict, "stale"},
		{"other 4xx", &apiclient.APIError{Status: 422, Message: "bad sku"}, http.StatusUnprocessableEntity, "bad sku"},
		{"upstream 5xx", &apiclient.APIError{Status: 500, Message: "boom"}, http.StatusBadGateway, "The inventory service is unavailable."},
		{"transport", &apiclient.TransportError{Method: "GET", URL: "x", Err: errors.New("refused")}, http.StatusBadGateway, "The inventory service is unavailable."},
		{"unknown", errors.New("nope"), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var body ProblemDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.detail, body.Detail)
		})
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]int{"n": 1})
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
