package auth

import "errors"

// ErrNoToken is returned when the backend accepted the credentials but sent
// no bearer token back.
var ErrNoToken = errors.New("auth: backend returned no token")

// User is the account as the backend describes it.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// DisplayName falls back to the email when the account has no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Grant is the answer to a successful login or registration.
type Grant struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
