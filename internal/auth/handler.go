package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

// HomePath is where a fresh sign-in lands.
const HomePath = "/dashboard"

const invalidCredentials = "Invalid email or password"

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	responder      *view.Responder
	sessionManager *shared.SessionManager
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, responder *view.Responder, sessions *shared.SessionManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		service:        service,
		responder:      responder,
		sessionManager: sessions,
		validator:      listeditor.NewValidator(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Get("/signup", h.showSignup)
	r.Post("/signup", h.handleSignup)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Email    string `form:"email" label:"Email" validate:"required,email"`
	Password string `form:"password" label:"Password" validate:"required"`
}

type signupForm struct {
	Name     string `form:"name" label:"Full name" validate:"required"`
	Email    string `form:"email" label:"Email" validate:"required,email"`
	Password string `form:"password" label:"Password" validate:"required"`
}

type loginPageData struct {
	Form   loginForm
	Next   string
	Errors map[string]string
}

type signupPageData struct {
	Form   signupForm
	Errors map[string]string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if h.signedIn(r) {
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
		return
	}
	data := loginPageData{Next: safeNext(r.URL.Query().Get("next"))}
	h.responder.Render(w, r, "pages/login.html", "Sign in", data, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	data := loginPageData{Form: form, Next: safeNext(r.PostFormValue("next"))}
	if errs := h.check(form); errs != nil {
		data.Errors = errs
		h.responder.Render(w, r, "pages/login.html", "Sign in", data, http.StatusBadRequest)
		return
	}

	grant, err := h.service.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		h.logger.Info("login rejected", slog.String("email", form.Email), slog.Any("error", err))
		data.Form.Password = ""
		data.Errors = map[string]string{"general": h.failure(err)}
		h.responder.Render(w, r, "pages/login.html", "Sign in", data, statusFor(err))
		return
	}
	h.signIn(r, grant)
	target := data.Next
	if target == "" {
		target = HomePath
	}
	h.responder.RedirectWithFlash(w, r, target, "success", "Welcome back, "+grant.User.DisplayName())
}

func (h *Handler) showSignup(w http.ResponseWriter, r *http.Request) {
	if h.signedIn(r) {
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
		return
	}
	h.responder.Render(w, r, "pages/signup.html", "Sign up", signupPageData{}, http.StatusOK)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := signupForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	data := signupPageData{Form: form}
	if errs := h.check(form); errs != nil {
		data.Errors = errs
		h.responder.Render(w, r, "pages/signup.html", "Sign up", data, http.StatusBadRequest)
		return
	}

	grant, err := h.service.Register(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		h.logger.Info("signup rejected", slog.String("email", form.Email), slog.Any("error", err))
		data.Form.Password = ""
		data.Errors = map[string]string{"general": listeditor.Message(err)}
		h.responder.Render(w, r, "pages/signup.html", "Sign up", data, statusFor(err))
		return
	}
	if grant.User.Name == "" {
		grant.User.Name = form.Name
	}
	h.signIn(r, grant)
	h.responder.RedirectWithFlash(w, r, HomePath, "success", "Account created")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.ClearCredential()
		h.sessionManager.Destroy(sess)
	}
	http.Redirect(w, r, view.LoginPath, http.StatusSeeOther)
}

func (h *Handler) signIn(r *http.Request, grant Grant) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during sign in")
		return
	}
	h.sessionManager.Renew(sess)
	sess.SetCredential(grant.Token, grant.User.DisplayName())
}

func (h *Handler) signedIn(r *http.Request) bool {
	sess := shared.SessionFromContext(r.Context())
	return sess != nil && sess.Token() != ""
}

func (h *Handler) check(form any) map[string]string {
	err := listeditor.Check(h.validator, form)
	if err == nil {
		return nil
	}
	var verr *listeditor.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return map[string]string{"general": err.Error()}
}

func (h *Handler) failure(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError && apiErr.Message == apiclient.DefaultErrorMessage {
		return invalidCredentials
	}
	if errors.Is(err, ErrNoToken) {
		return invalidCredentials
	}
	return listeditor.Message(err)
}

func statusFor(err error) int {
	if errors.Is(err, apiclient.ErrTransport) || apiclient.StatusOf(err) >= http.StatusInternalServerError {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

// safeNext keeps post-login redirects on this host.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, view.LoginPath) {
		return ""
	}
	return next
}

// ShowLoginForTest exposes the GET handler for tests.
func (h *Handler) ShowLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.showLogin(w, r)
}

// HandleLoginForTest exposes the POST handler for tests.
func (h *Handler) HandleLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}
