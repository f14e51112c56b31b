package settings

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-pro/dashboard/internal/auth"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

type accountBackend struct {
	changes   []map[string]string
	rejectOld bool
	tokens    []string
}

func (b *accountBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.tokens = append(b.tokens, r.Header.Get("Authorization"))
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/auth/me":
		_, _ = w.Write([]byte(`{"user":{"_id":"u1","name":"Ada Lovelace","email":"ada@example.test","role":"admin"}}`))
	case "/auth/change-password":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.changes = append(b.changes, body)
		if b.rejectOld {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Current password is incorrect"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newAccountRouter(t *testing.T, backend http.Handler) (http.Handler, *shared.Session) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	templates, err := view.NewEngine(view.Options{})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(apiclient.New(apiclient.Options{BaseURL: srv.URL}))
	h := NewAccountHandler(logger, view.NewResponder(logger, templates, nil), service)

	sess := &shared.Session{ID: "s1"}
	sess.SetCredential("tok-1", "Ada Lovelace")
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
		})
	})
	r.Route(AccountPath, h.MountRoutes)
	return r, sess
}

func postPassword(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, AccountPath+"/password", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestAccountShowsProfile(t *testing.T) {
	backend := &accountBackend{}
	router, _ := newAccountRouter(t, backend)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, AccountPath, nil))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "ada@example.test")
	assert.Contains(t, res.Body.String(), "admin")
	assert.Equal(t, []string{"Bearer tok-1"}, backend.tokens)
}

func TestChangePasswordValidatesLocally(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"missing", url.Values{"old_password": {"a"}, "new_password": {""}, "confirm_password": {""}}, msgFillAll},
		{"mismatch", url.Values{"old_password": {"a"}, "new_password": {"b"}, "confirm_password": {"c"}}, msgMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &accountBackend{}
			router, _ := newAccountRouter(t, backend)
			res := postPassword(router, tc.values)
			assert.Equal(t, http.StatusBadRequest, res.Code)
			assert.Contains(t, res.Body.String(), tc.want)
			assert.Empty(t, backend.changes)
		})
	}
}

func TestChangePasswordSuccess(t *testing.T) {
	backend := &accountBackend{}
	router, sess := newAccountRouter(t, backend)

	res := postPassword(router, url.Values{"old_password": {"old"}, "new_password": {"new"}, "confirm_password": {"new"}})
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, AccountPath, res.Header().Get("Location"))
	require.Len(t, backend.changes, 1)
	assert.Equal(t, map[string]string{"oldPassword": "old", "newPassword": "new"}, backend.changes[0])
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, msgPasswordUpdated, flash.Message)
}

func TestChangePasswordBackendRejection(t *testing.T) {
	backend := &accountBackend{rejectOld: true}
	router, _ := newAccountRouter(t, backend)

	res := postPassword(router, url.Values{"old_password": {"wrong"}, "new_password": {"new"}, "confirm_password": {"new"}})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Current password is incorrect")
}

func TestAccountExpiredTokenSignsOut(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"jwt expired"}`))
	})
	router, sess := newAccountRouter(t, backend)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(http.MethodGet, AccountPath, nil))
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, view.LoginPath, res.Header().Get("Location"))
	assert.Empty(t, sess.Token())
}
