// Package resources provides typed access to the journal's REST collections.
//
// Every collection follows the same shape (list, get, create, patch, delete
// under a path ending in a slash), so one generic Resource serves them all.
// Requests go through the authenticated HTTP client and share its
// refresh-and-retry behaviour.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bujo/internal/client/client"
	"github.com/dmitrijs2005/bujo/internal/client/models"
)

// Doer sends JSON or pre-encoded requests relative to the API base URL.
type Doer interface {
	Do(ctx context.Context, method, path string, in, out any) error
	Send(ctx context.Context, method, path, contentType string, body []byte, out any) error
}

// UserIDSource reports the id of the logged-in user, or "" when there is none.
type UserIDSource interface {
	CurrentUserID(ctx context.Context) string
}

type validatable interface {
	Validate() error
}

// Resource is a REST collection of T, created from C and patched with U.
type Resource[T, C, U any] struct {
	doer  Doer
	path  string
	users UserIDSource
}

// NewResource binds a collection at path. When users is non-nil every call
// fails with client.ErrUnauthenticated while nobody is logged in.
func NewResource[T, C, U any](d Doer, path string, users UserIDSource) *Resource[T, C, U] {
	return &Resource[T, C, U]{doer: d, path: strings.Trim(path, "/") + "/", users: users}
}

func (r *Resource[T, C, U]) Path() string { return r.path }

func (r *Resource[T, C, U]) item(id string) string {
	return r.path + url.PathEscape(id) + "/"
}

func (r *Resource[T, C, U]) guard(ctx context.Context) error {
	if r.users != nil && r.users.CurrentUserID(ctx) == "" {
		return client.ErrUnauthenticated
	}
	return nil
}

func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	return r.ListQuery(ctx, nil)
}

// ListQuery lists the collection with query parameters.
func (r *Resource[T, C, U]) ListQuery(ctx context.Context, q url.Values) ([]T, error) {
	p := r.path
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	return listAt[T](ctx, r, p)
}

func listAt[T, C, U any](ctx context.Context, r *Resource[T, C, U], path string) ([]T, error) {
	if err := r.guard(ctx); err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := r.doer.Do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.path, err)
	}
	return models.DecodeList[T](raw)
}

func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	if err := r.guard(ctx); err != nil {
		return nil, err
	}
	var out T
	if err := r.doer.Do(ctx, http.MethodGet, r.item(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get %s%s: %w", r.path, id, err)
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := r.guard(ctx); err != nil {
		return nil, err
	}
	var out T
	if err := r.doer.Do(ctx, http.MethodPost, r.path, in, &out); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.path, err)
	}
	return &out, nil
}

// Update sends a partial update (PATCH).
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, in U) (*T, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if err := r.guard(ctx); err != nil {
		return nil, err
	}
	var out T
	if err := r.doer.Do(ctx, http.MethodPatch, r.item(id), in, &out); err != nil {
		return nil, fmt.Errorf("update %s%s: %w", r.path, id, err)
	}
	return &out, nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	if err := r.guard(ctx); err != nil {
		return err
	}
	if err := r.doer.Do(ctx, http.MethodDelete, r.item(id), nil, nil); err != nil {
		return fmt.Errorf("delete %s%s: %w", r.path, id, err)
	}
	return nil
}

func validate(v any) error {
	if x, ok := v.(validatable); ok {
		if err := x.Validate(); err != nil {
			return fmt.Errorf("%w: %w", client.ErrValidation, err)
		}
	}
	return nil
}
