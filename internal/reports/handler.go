package reports

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

// Handler serves the report pages and their downloads.
type Handler struct {
	logger    *slog.Logger
	responder *view.Responder
	source    *Source
	api       *apiclient.Client
	opts      Options
}

// NewHandler constructs a Handler. opts.Now is ignored; reports are dated
// when requested.
func NewHandler(logger *slog.Logger, responder *view.Responder, source *Source, api *apiclient.Client, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	opts.Now = time.Time{}
	return &Handler{logger: logger, responder: responder, source: source, api: api, opts: opts}
}

// MountRoutes registers the report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Get("/export.csv", h.exportCSV)
	r.Get("/export.xlsx", h.exportXLSX)
}

// PageView is the template data of pages/reports.html.
type PageView struct {
	Catalog  []Entry
	Selected Kind
	Report   Report
	Base     string
	Error    string
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	pv := PageView{Catalog: Catalog, Base: basePath(r)}
	kind, err := ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	pv.Selected = kind

	report, err := h.build(r, kind)
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		h.responder.SignInAgain(w, r)
		return
	case err != nil:
		h.logger.Warn("build report", slog.String("kind", string(kind)), slog.Any("error", err))
		pv.Error = listeditor.Message(err)
	default:
		pv.Report = report
	}
	h.responder.Render(w, r, "pages/reports.html", "Reports & Analytics", pv, http.StatusOK)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv; charset=utf-8", WriteCSV)
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", WriteXLSX)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, ext, contentType string, write func(io.Writer, Report) error) {
	kind, err := ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		h.responder.NotFound(w, r)
		return
	}
	report, err := h.build(r, kind)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		h.responder.SignInAgain(w, r)
		return
	}
	if err != nil {
		h.logger.Warn("export report", slog.String("kind", string(kind)), slog.Any("error", err))
		h.responder.RedirectWithFlash(w, r, basePath(r)+"?kind="+string(kind), "error", listeditor.Message(err))
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, report); err != nil {
		h.logger.Error("write report", slog.String("format", ext), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+FileName(report, ext)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) build(r *http.Request, kind Kind) (Report, error) {
	sess := shared.SessionFromContext(r.Context())
	session := ""
	if sess != nil {
		session = sess.ID
	}
	ds, err := h.source.Dataset(r.Context(), session, h.api.WithToken(sess.Token()))
	if err != nil {
		return Report{}, err
	}
	opts := h.opts
	opts.Now = time.Now()
	return Build(kind, ds, opts)
}

// basePath keeps links on whichever mount served the request.
func basePath(r *http.Request) string {
	p := r.URL.Path
	if strings.HasPrefix(path.Base(p), "export.") {
		p = path.Dir(p)
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/reports"
	}
	return p
}
