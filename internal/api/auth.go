package api

import (
	"context"

	"github.com/helpdesk-io/helpdesk-cli/internal/models"
)

// AuthService handles registration, login, and the profile endpoint.
type AuthService struct {
	client *Client
}

// RegisterRequest is the body for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleName string `json:"role_name"`
}

// Register creates a new account. It does not log the user in; the
// caller is expected to follow with Login.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	return s.client.Post(ctx, "/auth/register", req, nil)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var result tokenResponse
	err := s.client.Post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &result)
	if err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

// Profile fetches the authenticated user's email and role.
func (s *AuthService) Profile(ctx context.Context) (*models.Profile, error) {
	var result models.Profile
	if err := s.client.Get(ctx, "/auth/me", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
