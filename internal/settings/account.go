package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inventory-pro/dashboard/internal/auth"
	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

// AccountPath hosts the profile panel and the password form.
const AccountPath = "/account"

const (
	msgFillAll         = "Please fill all fields"
	msgMismatch        = "Passwords do not match"
	msgPasswordUpdated = "Password updated successfully"
)

// AccountHandler serves the signed-in user's profile and password change.
type AccountHandler struct {
	logger    *slog.Logger
	responder *view.Responder
	service   *auth.Service
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(logger *slog.Logger, responder *view.Responder, service *auth.Service) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{logger: logger, responder: responder, service: service}
}

// MountRoutes registers the account routes.
func (h *AccountHandler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
	r.Post("/password", h.changePassword)
}

// AccountView is the template data of pages/account.html.
type AccountView struct {
	Profile auth.User
	Error   string
}

func (h *AccountHandler) show(w http.ResponseWriter, r *http.Request) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	h.responder.Render(w, r, "pages/account.html", "Account", data, http.StatusOK)
}

func (h *AccountHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	oldPassword := r.PostFormValue("old_password")
	newPassword := r.PostFormValue("new_password")
	confirm := r.PostFormValue("confirm_password")

	problem := ""
	switch {
	case oldPassword == "" || newPassword == "":
		problem = msgFillAll
	case newPassword != confirm:
		problem = msgMismatch
	}
	if problem != "" {
		h.reject(w, r, problem, http.StatusBadRequest)
		return
	}

	token := shared.TokenFromContext(r.Context())
	if err := h.service.ChangePassword(r.Context(), token, oldPassword, newPassword); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			h.responder.SignInAgain(w, r)
			return
		}
		h.logger.Warn("change password", slog.Any("error", err))
		h.reject(w, r, listeditor.Message(err), listeditor.StatusFor(err))
		return
	}
	h.responder.RedirectWithFlash(w, r, AccountPath, "success", msgPasswordUpdated)
}

func (h *AccountHandler) reject(w http.ResponseWriter, r *http.Request, message string, status int) {
	data, ok := h.load(w, r)
	if !ok {
		return
	}
	data.Error = message
	h.responder.Render(w, r, "pages/account.html", "Account", data, status)
}

// load fetches the profile. A failure other than 401 still renders the page.
func (h *AccountHandler) load(w http.ResponseWriter, r *http.Request) (AccountView, bool) {
	token := shared.TokenFromContext(r.Context())
	user, err := h.service.Me(r.Context(), token)
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		h.responder.SignInAgain(w, r)
		return AccountView{}, false
	case err != nil:
		h.logger.Warn("load profile", slog.Any("error", err))
		return AccountView{Error: listeditor.Message(err)}, true
	}
	return AccountView{Profile: user}, true
}
