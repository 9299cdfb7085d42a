package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bujo/internal/client/models"
)

const requestIDHeader = "X-Request-ID"

var errNoRefreshToken = errors.New("no refresh token stored")

type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	stampRequestID(r)
	return t.base.RoundTrip(r)
}

func stampRequestID(r *http.Request) {
	if r.Header.Get(requestIDHeader) == "" {
		r.Header.Set(requestIDHeader, uuid.NewString())
	}
}

// authTransport attaches the stored access token to every request and
// retries once after refreshing it when the backend answers 401.
type authTransport struct {
	base http.RoundTripper
	c    *HTTPClient
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	body, err := readBody(req)
	if err != nil {
		return nil, err
	}
	requestID := req.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	sent := t.c.tokens.AccessToken(ctx)
	resp, err := t.base.RoundTrip(t.prepare(req, body, sent, requestID))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	fresh, ok := t.c.renewAccess(ctx, sent)
	if !ok {
		// the caller sees the original 401
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
	resp.Body.Close()

	t.c.log.Debug(ctx, "retrying request with refreshed token",
		"method", req.Method, "path", req.URL.Path, "request_id", requestID)
	return t.base.RoundTrip(t.prepare(req, body, fresh, requestID))
}

func (t *authTransport) prepare(req *http.Request, body []byte, token, requestID string) *http.Request {
	r := req.Clone(req.Context())
	if body != nil {
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
	}

	switch def := t.c.AuthHeader(); {
	case token != "":
		r.Header.Set("Authorization", "Bearer "+token)
	case def != "":
		r.Header.Set("Authorization", def)
	default:
		r.Header.Del("Authorization")
	}
	r.Header.Set(requestIDHeader, requestID)
	return r
}

func readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("buffer request body: %w", err)
	}
	return b, nil
}

// renewAccess returns an access token to replay a rejected request with.
// If another request already replaced the token that was rejected, the
// stored one is used as is. Otherwise the refresh token is exchanged, with
// concurrent callers sharing a single exchange. On failure the session and
// the default Authorization header are cleared and ok is false.
func (c *HTTPClient) renewAccess(ctx context.Context, rejected string) (string, bool) {
	if current := c.tokens.AccessToken(ctx); current != "" && current != rejected {
		return current, true
	}

	v, err, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		c.log.Warn(ctx, "token refresh failed, clearing session", "error", err)
		if cerr := c.tokens.Clear(ctx); cerr != nil {
			c.log.Error(ctx, "failed to clear session", "error", cerr)
		}
		c.SetAuthHeader("")
		return "", false
	}
	c.log.Debug(ctx, "access token refreshed", "shared", shared)
	return v.(string), true
}

func (c *HTTPClient) refresh(ctx context.Context) (string, error) {
	rt := c.tokens.RefreshToken(ctx)
	if rt == "" {
		return "", errNoRefreshToken
	}

	var out models.RefreshResponse
	if err := c.do(ctx, c.plain, http.MethodPost, "auth/refresh/", models.RefreshRequest{Refresh: rt}, &out); err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	if out.Access == "" {
		return "", errors.New("refresh: empty access token in response")
	}
	if err := c.tokens.SetAccessToken(ctx, out.Access); err != nil {
		return "", fmt.Errorf("store refreshed token: %w", err)
	}
	return out.Access, nil
}
