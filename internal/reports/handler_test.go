package reports

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

func newTestRouter(t *testing.T, backendURL string) (http.Handler, *shared.Session) {
	t.Helper()
	templates, err := view.NewEngine(view.Options{})
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, view.NewResponder(logger, templates, nil), NewSource(nil),
		apiclient.New(apiclient.Options{BaseURL: backendURL}), Options{LowStockThreshold: 5})

	sess := &shared.Session{ID: "s1"}
	sess.SetCredential("tok", "Ada")
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
		})
	})
	r.Route("/reports", h.MountRoutes)
	r.Route("/analytics", h.MountRoutes)
	return r, sess
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest(http.MethodGet, path, nil))
	return res
}

func TestHandlerShowsReportOnEitherMount(t *testing.T) {
	var calls atomic.Int32
	srv := backend(t, &calls)
	router, _ := newTestRouter(t, srv.URL)

	res := serve(router, "/analytics")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	assert.Contains(t, body, "Sales Report")
	assert.Contains(t, body, `href="/analytics/export.csv?kind=sales"`)
	assert.Contains(t, body, "<svg")

	res = serve(router, "/reports?kind=inventory")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Inventory Report")
	assert.Contains(t, res.Body.String(), `href="/reports/export.xlsx?kind=inventory"`)
}

func TestHandlerUnknownKindIsNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := backend(t, &calls)
	router, _ := newTestRouter(t, srv.URL)

	assert.Equal(t, http.StatusNotFound, serve(router, "/reports?kind=payroll").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, "/reports/export.csv?kind=payroll").Code)
	assert.Zero(t, calls.Load())
}

func TestHandlerExportsCSV(t *testing.T) {
	var calls atomic.Int32
	srv := backend(t, &calls)
	router, _ := newTestRouter(t, srv.URL)

	res := serve(router, "/reports/export.csv?kind=vendors")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "text/csv; charset=utf-8", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Header().Get("Content-Disposition"), `filename="inventory-pro-vendors-`)
	assert.Contains(t, res.Body.String(), "Vendor Report")
}

func TestHandlerExportsXLSX(t *testing.T) {
	var calls atomic.Int32
	srv := backend(t, &calls)
	router, _ := newTestRouter(t, srv.URL)

	res := serve(router, "/analytics/export.xlsx?kind=customers")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "PK", res.Body.String()[:2])
}

func TestHandlerBackendFailureRendersInline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"Maintenance window"}`))
	}))
	defer srv.Close()
	router, sess := newTestRouter(t, srv.URL)

	res := serve(router, "/reports")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Maintenance window")

	res = serve(router, "/reports/export.csv?kind=sales")
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/reports?kind=sales", res.Header().Get("Location"))
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Maintenance window", flash.Message)
}

func TestHandlerUnauthorizedSignsOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	router, sess := newTestRouter(t, srv.URL)

	res := serve(router, "/reports")
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, view.LoginPath, res.Header().Get("Location"))
	assert.Empty(t, sess.Token())
}
