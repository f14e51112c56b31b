package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inventory-pro/dashboard/internal/auth"
	"github.com/inventory-pro/dashboard/internal/dashboard"
	"github.com/inventory-pro/dashboard/internal/inventory"
	"github.com/inventory-pro/dashboard/internal/invoices"
	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/masterdata/categories"
	"github.com/inventory-pro/dashboard/internal/masterdata/customers"
	"github.com/inventory-pro/dashboard/internal/masterdata/products"
	"github.com/inventory-pro/dashboard/internal/masterdata/vendors"
	"github.com/inventory-pro/dashboard/internal/observability"
	"github.com/inventory-pro/dashboard/internal/platform/httpx"
	"github.com/inventory-pro/dashboard/internal/reports"
	"github.com/inventory-pro/dashboard/internal/settings"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
	"github.com/inventory-pro/dashboard/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Responder      *view.Responder
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics

	Guard            *auth.Guard
	AuthHandler      *auth.Handler
	AccountHandler   *settings.AccountHandler
	DashboardHandler *dashboard.Handler
	ReportsHandler   *reports.Handler
	DocumentHandler  *invoices.DocumentHandler
	LookupHandler    *products.LookupHandler
	PDFHealth        http.Handler

	// ListEditor is shared by every list-editor page.
	ListEditor listeditor.Deps
}

// NewRouter constructs the chi.Router with dashboard defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.PDFHealth != nil {
		r.Method(http.MethodGet, "/healthz/pdf", params.PDFHealth)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, auth.HomePath, http.StatusSeeOther)
	})
	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(params.Guard.RequireCredential)

		deps := params.ListEditor
		r.Route("/categories", listeditor.NewPage(deps, categories.Binding{}).Routes)
		r.Route("/vendors", listeditor.NewPage(deps, vendors.Binding{}).Routes)
		r.Route("/customers", listeditor.NewPage(deps, customers.Binding{}).Routes)
		r.Route("/transactions", listeditor.NewPage(deps, inventory.Binding{}).Routes)
		r.Route("/settings", listeditor.NewPage(deps, settings.Binding{}).Routes)
		r.Route("/products", func(r chi.Router) {
			if params.LookupHandler != nil {
				r.Method(http.MethodGet, "/lookup", params.LookupHandler)
			}
			listeditor.NewPage(deps, products.Binding{}).Routes(r)
		})
		r.Route("/invoices", func(r chi.Router) {
			if params.DocumentHandler != nil {
				params.DocumentHandler.MountRoutes(r)
			}
			listeditor.NewPage(deps, invoices.Binding{}).Routes(r)
		})

		r.Method(http.MethodGet, auth.HomePath, params.DashboardHandler)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
		r.Route("/analytics", params.ReportsHandler.MountRoutes)
		r.Route(settings.AccountPath, params.AccountHandler.MountRoutes)
	})

	fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(web.Static())))
	r.Handle("/static/*", staticCacheHandler(fileServer))

	r.NotFound(params.Responder.NotFound)

	return r
}

// staticCacheHandler lets browsers keep static assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
