package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/bujo/internal/client/models"
)

// Client is the account API used by the session services.
type Client interface {
	Login(ctx context.Context, data models.LoginData) (*models.LoginResponse, error)
	Logout(ctx context.Context, refresh string) error
	Register(ctx context.Context, data models.RegisterData) (json.RawMessage, error)
	ForgotPassword(ctx context.Context, data models.ForgotPasswordData) error
	EditUser(ctx context.Context, userID string, fields map[string]any) (*models.User, error)

	// SetAuthHeader sets the Authorization value sent when no stored access
	// token is available. An empty token clears it.
	SetAuthHeader(token string)
}

var _ Client = (*HTTPClient)(nil)

func (c *HTTPClient) Login(ctx context.Context, data models.LoginData) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.do(ctx, c.plain, http.MethodPost, "auth/login/", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout blacklists the refresh token on the server.
func (c *HTTPClient) Logout(ctx context.Context, refresh string) error {
	return c.Do(ctx, http.MethodPost, "auth/logout/", models.RefreshRequest{Refresh: refresh}, nil)
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, c.plain, http.MethodPost, "auth/register/", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, data models.ForgotPasswordData) error {
	return c.do(ctx, c.plain, http.MethodPost, "auth/password/reset/", data, nil)
}

func (c *HTTPClient) EditUser(ctx context.Context, userID string, fields map[string]any) (*models.User, error) {
	var out models.User
	if err := c.Do(ctx, http.MethodPatch, "user/"+userID+"/", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
