package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/platform/httpx"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

const expiredMessage = "Your session has expired. Please sign in again."

// Guard keeps signed-out visitors away from dashboard pages.
type Guard struct {
	logger  *slog.Logger
	service *Service
	now     func() time.Time
}

// NewGuard constructs a Guard. service may be nil, in which case the topbar
// name is never refreshed from the backend.
func NewGuard(logger *slog.Logger, service *Service) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{logger: logger, service: service, now: time.Now}
}

// RequireCredential redirects to the login page unless the session holds a
// usable bearer token. A JWT whose exp has passed counts as absent and is
// cleared. JSON callers get a 401 problem instead of a redirect.
func (g *Guard) RequireCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		token := ""
		if sess != nil {
			token = sess.Token()
		}
		if token == "" {
			g.deny(w, r, "")
			return
		}
		if shared.CredentialExpired(token, g.now()) {
			sess.ClearCredential()
			g.deny(w, r, expiredMessage)
			return
		}
		if sess.UserName() == "" && g.service != nil {
			user, err := g.service.Me(r.Context(), token)
			switch {
			case errors.Is(err, apiclient.ErrUnauthorized):
				sess.ClearCredential()
				g.deny(w, r, expiredMessage)
				return
			case err != nil:
				g.logger.Warn("load current user", slog.Any("error", err))
			default:
				sess.SetUserName(user.DisplayName())
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Guard) deny(w http.ResponseWriter, r *http.Request, message string) {
	if wantsJSON(r) {
		httpx.RespondError(w, apiclient.ErrUnauthorized)
		return
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil && message != "" {
		sess.AddFlash(shared.FlashMessage{Kind: "error", Message: message})
	}
	target := view.LoginPath
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
