// Package services contains application services for the journaling client.
// This file defines the session facade: login, logout, profile edits and
// the predicates the router uses to decide whether a screen may be shown.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bujo/internal/client/client"
	"github.com/dmitrijs2005/bujo/internal/client/models"
	"github.com/dmitrijs2005/bujo/internal/client/state"
	"github.com/dmitrijs2005/bujo/internal/client/tokens"
	"github.com/dmitrijs2005/bujo/internal/client/tokenstore"
	"github.com/dmitrijs2005/bujo/internal/logging"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Login: authenticate, persist the session and publish the user.
//   - Logout: best-effort server logout, then always drop the local session.
//   - EditProfile: patch the user and refresh the cached profile.
//   - Register / ForgotPassword: account requests that never log in.
//   - IsLoggedIn / HasFreshSession: the two session policies.
//
// Invalid input is rejected with client.ErrValidation before any request.
type AuthService interface {
	Login(ctx context.Context, data models.LoginData) (*models.User, error)
	Logout(ctx context.Context) error
	EditProfile(ctx context.Context, fields map[string]any, userID string) (*models.User, error)
	Register(ctx context.Context, data models.RegisterData) (json.RawMessage, error)
	ForgotPassword(ctx context.Context, data models.ForgotPasswordData) error

	CurrentUser(ctx context.Context) *models.User
	CurrentUserID(ctx context.Context) string
	IsLoggedIn(ctx context.Context) bool
	HasFreshSession(ctx context.Context) bool
}

type authService struct {
	client    client.Client
	store     *tokenstore.Store
	validator *tokens.Validator
	state     *state.LoginState
	log       logging.Logger
}

func NewAuthService(c client.Client, store *tokenstore.Store, v *tokens.Validator, st *state.LoginState, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, store: store, validator: v, state: st, log: log.With("component", "auth")}
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", client.ErrValidation, err)
}

// Login leaves an existing session untouched when the request fails.
func (a *authService) Login(ctx context.Context, data models.LoginData) (*models.User, error) {
	if err := data.Validate(); err != nil {
		return nil, validationError(err)
	}

	resp, err := a.client.Login(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.Write(ctx, resp.Credentials()); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.client.SetAuthHeader(resp.Access)
	a.state.SetUser(resp.User)

	a.log.Info(ctx, "logged in", "user", resp.User.DisplayName())
	return resp.User, nil
}

// Logout only fails when the local session cannot be removed.
func (a *authService) Logout(ctx context.Context) error {
	if rt := a.store.RefreshToken(ctx); rt != "" {
		if err := a.client.Logout(ctx, rt); err != nil {
			a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
		}
	}

	err := a.store.Clear(ctx)
	a.client.SetAuthHeader("")
	a.state.SetUser(nil)
	if err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) EditProfile(ctx context.Context, fields map[string]any, userID string) (*models.User, error) {
	if userID == "" {
		return nil, validationError(&models.FieldError{Field: "id", Err: models.ErrMissingField})
	}
	if len(fields) == 0 {
		return nil, validationError(&models.FieldError{Field: "fields", Err: models.ErrMissingField})
	}
	if a.store.Read(ctx) == nil {
		return nil, client.ErrUnauthenticated
	}

	u, err := a.client.EditUser(ctx, userID, fields)
	if err != nil {
		return nil, fmt.Errorf("edit profile error: %w", err)
	}

	// the store swaps the user under its lock, so an access token refreshed
	// meanwhile is kept
	if err := a.store.SetUser(ctx, u); err != nil {
		if errors.Is(err, tokenstore.ErrNoSession) {
			return nil, client.ErrUnauthenticated
		}
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.state.SetUser(u)
	return u, nil
}

func (a *authService) Register(ctx context.Context, data models.RegisterData) (json.RawMessage, error) {
	if err := data.Validate(); err != nil {
		return nil, validationError(err)
	}
	out, err := a.client.Register(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return out, nil
}

func (a *authService) ForgotPassword(ctx context.Context, data models.ForgotPasswordData) error {
	if err := data.Validate(); err != nil {
		return validationError(err)
	}
	if err := a.client.ForgotPassword(ctx, data); err != nil {
		return fmt.Errorf("password reset error: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) *models.User {
	return a.store.User(ctx)
}

// CurrentUserID prefers the cached profile and falls back to the user id
// carried by the access token.
func (a *authService) CurrentUserID(ctx context.Context) string {
	creds := a.store.Read(ctx)
	if creds == nil {
		return ""
	}
	if creds.User != nil && creds.User.ID != "" {
		return creds.User.ID.String()
	}
	p, err := a.validator.DecodePayload(creds.Access)
	if err != nil {
		return ""
	}
	return p.UserID
}

// IsLoggedIn is the presence-only policy: a stored session with a user.
// Token expiry is not checked.
func (a *authService) IsLoggedIn(ctx context.Context) bool {
	creds := a.store.Read(ctx)
	return creds != nil && creds.User != nil
}

// HasFreshSession additionally requires an unexpired access token.
func (a *authService) HasFreshSession(ctx context.Context) bool {
	creds := a.store.Read(ctx)
	if creds == nil || creds.User == nil || creds.Access == "" {
		return false
	}
	return a.validator.IsValid(creds.Access)
}
