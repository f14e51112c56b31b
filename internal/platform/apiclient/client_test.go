package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	codes []int
}

func (o *recordingObserver) ObserveUpstream(method, resource string, status int, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, method+" "+resource)
	o.codes = append(o.codes, status)
}

func TestDoAttachesBearerAndJSON(t *testing.T) {
	var gotAuth, gotType string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		assert.Equal(t, "/api/vendors", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vendor":{"_id":"v1","name":"Acme"}}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := New(Options{BaseURL: srv.URL + "/api/", Observer: obs}).WithToken("tok-1")

	var out map[string]map[string]string
	err := client.Do(context.Background(), http.MethodPost, "/vendors", map[string]string{"name": "Acme"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "Acme", gotBody["name"])
	assert.Equal(t, "v1", out["vendor"]["_id"])
	assert.Equal(t, []string{"POST vendors"}, obs.calls)
	assert.Equal(t, []int{http.StatusOK}, obs.codes)
}

func TestDoWithoutTokenOmitsAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(Options{BaseURL: srv.URL})
	var out map[string]any
	require.NoError(t, client.Do(context.Background(), "", "settings", nil, &out))
	assert.Nil(t, out)
}

func TestDoReturnsAPIErrorWithServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Vendor not found"}`))
	}))
	defer srv.Close()

	err := New(Options{BaseURL: srv.URL}).Do(context.Background(), http.MethodDelete, "/vendors/v1", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Vendor not found", apiErr.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestDoFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>boom</html>`))
	}))
	defer srv.Close()

	err := New(Options{BaseURL: srv.URL}).Do(context.Background(), http.MethodGet, "/products", nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, DefaultErrorMessage, apiErr.Message)
}

func TestDoUsesMessageFieldWhenErrorMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"name is required"}`))
	}))
	defer srv.Close()

	err := New(Options{BaseURL: srv.URL}).Do(context.Background(), http.MethodPost, "/categories", map[string]string{}, nil)
	assert.EqualError(t, err, "name is required")
}

func TestDoClassifiesConflictsAndUnauthorized(t *testing.T) {
	status := http.StatusConflict
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()
	client := New(Options{BaseURL: srv.URL})

	err := client.Do(context.Background(), http.MethodPut, "/vendors/v1", map[string]string{}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	status = http.StatusPreconditionFailed
	err = client.Do(context.Background(), http.MethodPut, "/vendors/v1", map[string]string{}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	status = http.StatusUnauthorized
	err = client.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestDoSendsIfMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"3"`, r.Header.Get("If-Match"))
		assert.Equal(t, "x", r.Header.Get("X-Trace"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := New(Options{BaseURL: srv.URL}).Do(context.Background(), http.MethodPut, "/vendors/v1", map[string]string{}, nil, IfMatch(3), WithHeader("X-Trace", "x"))
	require.NoError(t, err)
}

func TestDoTransportFailureIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	err := New(Options{BaseURL: url, Observer: obs}).Do(context.Background(), http.MethodGet, "/vendors", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, []int{0}, obs.codes)
}

func TestDoTimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	err := client.Do(context.Background(), http.MethodGet, "/vendors", nil, nil)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestWithTokenDoesNotMutateParent(t *testing.T) {
	parent := New(Options{BaseURL: "http://example.test/api"})
	child := parent.WithToken("abc")
	assert.Empty(t, parent.Token())
	assert.Equal(t, "abc", child.Token())
	assert.Equal(t, "http://example.test/api", child.BaseURL())
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "vendors", resourceOf("/vendors/abc"))
	assert.Equal(t, "products", resourceOf("/products?q=x"))
	assert.Equal(t, "root", resourceOf("/"))
}
