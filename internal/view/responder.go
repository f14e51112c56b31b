package view

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/inventory-pro/dashboard/internal/shared"
)

// LoginPath is where unauthenticated requests are sent.
const LoginPath = "/auth/login"

// Responder renders pages with the per-request shell data filled in.
type Responder struct {
	logger    *slog.Logger
	templates *Engine
	csrf      *shared.CSRFManager
}

// NewResponder constructs a Responder.
func NewResponder(logger *slog.Logger, templates *Engine, csrf *shared.CSRFManager) *Responder {
	return &Responder{logger: logger, templates: templates, csrf: csrf}
}

// Render writes template with status.
func (rs *Responder) Render(w http.ResponseWriter, r *http.Request, template, title string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	var csrfToken string
	if rs.csrf != nil && sess != nil {
		csrfToken, _ = rs.csrf.EnsureToken(r.Context(), sess)
	}
	var flash *shared.FlashMessage
	var user string
	if sess != nil {
		flash = sess.PopFlash()
		user = sess.UserName()
	}
	viewData := TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		User:        user,
		Data:        data,
	}
	var buf bytes.Buffer
	if err := rs.templates.Execute(&buf, template, viewData); err != nil {
		rs.logger.Error("render template", slog.Any("error", err), slog.String("template", template))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RedirectWithFlash queues a flash message and answers 303.
func (rs *Responder) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil && message != "" {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// SignInAgain drops the session credential after the backend refused it.
func (rs *Responder) SignInAgain(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.ClearCredential()
	}
	rs.RedirectWithFlash(w, r, LoginPath, "error", "Your session has expired. Please sign in again.")
}

// NotFound renders the 404 page.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rs.Render(w, r, "pages/404.html", "Not Found", nil, http.StatusNotFound)
}
