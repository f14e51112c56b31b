package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/reports"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

// Handler serves GET /dashboard.
type Handler struct {
	logger    *slog.Logger
	responder *view.Responder
	source    *reports.Source
	api       *apiclient.Client
	lowStock  int
	now       func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, responder *view.Responder, source *reports.Source, api *apiclient.Client, lowStockThreshold int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, responder: responder, source: source, api: api, lowStock: lowStockThreshold, now: time.Now}
}

// PageView is the template data of pages/dashboard.html.
type PageView struct {
	Stats     Stats
	Threshold int
	Error     string
}

// ServeHTTP renders the dashboard. ?refresh=1 drops the cached figures first.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	session := ""
	if sess != nil {
		session = sess.ID
	}
	if r.URL.Query().Get("refresh") != "" {
		if err := h.source.Invalidate(ctx, session); err != nil {
			h.logger.Warn("invalidate dashboard cache", slog.Any("error", err))
		}
	}

	pv := PageView{Threshold: h.lowStock}
	ds, err := h.source.Dataset(ctx, session, h.api.WithToken(sess.Token()))
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		h.responder.SignInAgain(w, r)
		return
	case err != nil:
		h.logger.Warn("load dashboard", slog.Any("error", err))
		pv.Error = listeditor.Message(err)
	default:
		pv.Stats = Compute(ds, h.lowStock, h.now())
	}
	h.responder.Render(w, r, "pages/dashboard.html", "Dashboard", pv, http.StatusOK)
}
