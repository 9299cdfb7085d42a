package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/bujo/internal/logging"
)

// DefaultTimeout bounds a single HTTP exchange when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxResponseBody caps how much of a response body is read into memory.
const maxResponseBody = 10 << 20

// TokenStore is the part of the credential store the client needs.
type TokenStore interface {
	AccessToken(ctx context.Context) string
	RefreshToken(ctx context.Context) string
	SetAccessToken(ctx context.Context, access string) error
	Clear(ctx context.Context) error
}

// HTTPClient is safe for concurrent use.
type HTTPClient struct {
	baseURL *url.URL
	tokens  TokenStore
	log     logging.Logger

	// api sends through authTransport, plain is used for the endpoints
	// that must not trigger a refresh (login, register, refresh itself).
	api   *http.Client
	plain *http.Client

	refreshGroup singleflight.Group

	mu         sync.RWMutex
	authHeader string
}

type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
	log       logging.Logger
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport replaces http.DefaultTransport as the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// New returns a client for the backend at baseURL. The URL is normalised
// to end with exactly one slash so relative paths resolve under it.
func New(baseURL string, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	o := options{timeout: DefaultTimeout, transport: http.DefaultTransport, log: logging.Nop()}
	for _, fn := range opts {
		fn(&o)
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		tokens:  tokens,
		log:     o.log.With("component", "http-client"),
	}
	c.plain = &http.Client{
		Timeout:   o.timeout,
		Transport: &requestIDTransport{base: o.transport},
	}
	c.api = &http.Client{
		Timeout:   o.timeout,
		Transport: &authTransport{base: o.transport, c: c},
	}
	return c, nil
}

func (c *HTTPClient) SetAuthHeader(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" {
		c.authHeader = ""
		return
	}
	c.authHeader = "Bearer " + token
}

// AuthHeader returns the current default Authorization value.
func (c *HTTPClient) AuthHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authHeader
}

// Do sends in as a JSON body (when non-nil) to path, relative to the base
// URL, and decodes a 2xx JSON response into out (when non-nil).
func (c *HTTPClient) Do(ctx context.Context, method, path string, in, out any) error {
	return c.do(ctx, c.api, method, path, in, out)
}

// Send is Do for pre-encoded bodies such as multipart uploads.
func (c *HTTPClient) Send(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	return c.exchange(c.api, req, out)
}

func (c *HTTPClient) do(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	var body []byte
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body, contentType = b, "application/json"
	}

	req, err := c.newRequest(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	return c.exchange(hc, req, out)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, contentType string, body []byte) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *HTTPClient) exchange(hc *http.Client, req *http.Request, out any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug(req.Context(), "request failed",
			"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
