// Package api provides the typed HTTP client for the patrio backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/patrio-app/patrio/internal/common"
)

// Backend selects which backend database target requests run against.
type Backend string

// Backend targets.
const (
	BackendMain    Backend = "main"
	BackendSandbox Backend = "sandbox"
)

// ParseBackend validates a backend target name.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(s)) {
	case BackendMain:
		return BackendMain, nil
	case BackendSandbox:
		return BackendSandbox, nil
	}
	return "", fmt.Errorf("%w: %q (want main or sandbox)", common.ErrInvalidBackend, s)
}

// Header names the backend contract requires on every request.
const (
	headerDatabase  = "X-Patrio-Database"
	headerRequestID = "X-Request-ID"
)

// Config holds the settings needed to construct a Client.
type Config struct {
	BaseURL string
	Token   string
	Backend Backend
	Timeout time.Duration
}

// Client is the shared HTTP client for all backend endpoints. The bearer
// token and active backend are guarded by a single-writer mutex and read at
// request-build time, so a backend switch applies to every request issued
// after it without rebuilding the client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL

	mu      sync.RWMutex
	token   string
	backend Backend

	// Slow-endpoint behavior: retry exactly once after a fixed delay, and
	// only on timeout.
	retryOnTimeout bool
	retryDelay     time.Duration
}

// NewClient creates a client for normal request traffic.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: api base URL", common.ErrMissingConfig)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL %q must be http(s)", common.ErrInvalidConfig, cfg.BaseURL)
	}

	backend := cfg.Backend
	if backend == "" {
		backend = BackendMain
	}
	if _, err := ParseBackend(string(backend)); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		token:   cfg.Token,
		backend: backend,
	}, nil
}

// SetAuthToken replaces the bearer token. Intended to be called from a
// single writer (login / token refresh).
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// SetActiveBackend switches which backend database subsequent requests hit.
func (c *Client) SetActiveBackend(b Backend) error {
	if _, err := ParseBackend(string(b)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend = b
	return nil
}

// ActiveBackend returns the currently selected backend target.
func (c *Client) ActiveBackend() Backend {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backend
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method string
	URL    string
	Body   string
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// Unwrap maps well-known statuses onto sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return common.ErrBackendDown
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do issues one request, logging method/URL/status at the boundary and
// wrapping failures for the caller to surface. The slow-client variant
// re-issues the request once after a fixed delay when the first attempt
// timed out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !c.retryOnTimeout {
		return c.doOnce(ctx, method, path, query, body, out)
	}

	opts := common.RetryOptions{
		MaxAttempts:  2,
		InitialDelay: c.retryDelay,
		MaxDelay:     c.retryDelay,
		Multiplier:   1.0,
	}
	return common.WithRetry(ctx, func() error {
		err := c.doOnce(ctx, method, path, query, body, out)
		if err != nil && !isTimeout(err) {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		return err
	}, opts)
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.mu.RLock()
	token := c.token
	backend := c.backend
	c.mu.RUnlock()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(headerDatabase, string(backend))
	req.Header.Set(headerRequestID, uuid.NewString())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Request failed",
			"method", method,
			"url", u.String(),
			"backend", backend,
			"error", err)
		if isTimeout(err) {
			return fmt.Errorf("%w: %s %s: %v", common.ErrRequestTimeout, method, u.String(), err)
		}
		return fmt.Errorf("request failed: %s %s: %w", method, u.String(), err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	slog.Debug("Request completed",
		"method", method,
		"url", u.String(),
		"backend", backend,
		"status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{
			Method: method,
			URL:    u.String(),
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
		slog.Error("Backend returned error",
			"method", method,
			"url", u.String(),
			"status", resp.StatusCode)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, u.String(), err)
	}
	return nil
}

// isTimeout reports whether err is a request timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, common.ErrRequestTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
