package api

import (
	"context"
	"fmt"
	"net/http"
)

// AuthClient exchanges credentials for a bearer token.
type AuthClient struct {
	c *Client
}

// NewAuthClient creates an auth client on the shared connection.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// GetToken authenticates with the daemon and returns a bearer token.
// Rejected credentials are reported as ErrInvalidLogin.
func (a *AuthClient) GetToken(ctx context.Context, user, pass string) (string, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: user, Password: pass}

	var resp struct {
		Token string `json:"token"`
	}
	if err := a.c.postJSON(ctx, "/api/auth/token", payload, &resp); err != nil {
		switch statusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", fmt.Errorf("%w for user %q", ErrInvalidLogin, user)
		}
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("auth response contained no token")
	}
	return resp.Token, nil
}
