package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
)

// Service calls the backend auth endpoints.
type Service struct {
	api *apiclient.Client
}

// NewService constructs a new Service. api must not carry a token.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Login exchanges email and password for a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (Grant, error) {
	body := map[string]string{"email": strings.TrimSpace(email), "password": password}
	return s.grant(ctx, "/auth/login", body)
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (Grant, error) {
	body := map[string]string{
		"name":     strings.TrimSpace(name),
		"email":    strings.TrimSpace(email),
		"password": password,
	}
	return s.grant(ctx, "/auth/register", body)
}

// Me loads the account behind token.
func (s *Service) Me(ctx context.Context, token string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := s.api.WithToken(token).Do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return User{}, fmt.Errorf("auth: me: %w", err)
	}
	return out.User, nil
}

// ChangePassword replaces the password of the account behind token.
func (s *Service) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	if err := s.api.WithToken(token).Do(ctx, http.MethodPost, "/auth/change-password", body, nil); err != nil {
		return fmt.Errorf("auth: change password: %w", err)
	}
	return nil
}

func (s *Service) grant(ctx context.Context, path string, body any) (Grant, error) {
	var out Grant
	if err := s.api.WithToken("").Do(ctx, http.MethodPost, path, body, &out); err != nil {
		return Grant{}, fmt.Errorf("auth: %s: %w", strings.TrimPrefix(path, "/auth/"), err)
	}
	if out.Token == "" {
		return Grant{}, ErrNoToken
	}
	return out, nil
}
