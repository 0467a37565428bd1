package api

import (
	"context"
	"net/http"
)

// Login authenticates against the backend and returns the issued token
// alongside the user profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	httpReq, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/login", req)
	if err != nil {
		return nil, err
	}
	return doJSON[LoginResponse](c, httpReq)
}

// Register creates a new account. The backend responds without a
// token; the caller must log in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	httpReq, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}
	return doJSON[RegisterResponse](c, httpReq)
}
