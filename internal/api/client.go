package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"atsbuddy/internal/config"
	"atsbuddy/internal/errors"
	"atsbuddy/internal/token"
	"atsbuddy/internal/types"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the single choke point for all backend calls. It attaches the
// bearer credential, decodes the response envelope, and runs the session
// expiry protocol: any 401 clears the token store and notifies unauthorized
// observers before the error is returned to the caller.
type Client struct {
	baseURL string
	hc      *http.Client
	store   *token.Store
	logger  *errors.Logger
	breaker *RequestBreaker

	mu           sync.Mutex
	unauthorized []func()
}

// NewClient builds a backend client from configuration. The transport is
// wrapped with otelhttp so every outbound call carries a span.
func NewClient(cfg *config.APIConfig, store *token.Store, logger *errors.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "API base URL is required", nil)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &Client{
		baseURL: baseURL,
		hc:      hc,
		store:   store,
		logger:  logger,
		breaker: NewRequestBreaker(cfg.Breaker, logger),
	}, nil
}

// OnUnauthorized subscribes fn to the session expiry signal. Dispatch is
// synchronous and fire-and-forget: observers registered after a 401 has
// fired miss that event. Observers must not call back into the client.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unauthorized = append(c.unauthorized, fn)
}

// Do issues a JSON request and decodes the envelope data into T.
// A payload of nil sends an empty body. authenticated controls whether the
// bearer header is attached (and only when a token is actually present).
func Do[T any](ctx context.Context, c *Client, method, path string, payload any, authenticated bool) (T, error) {
	var zero T

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return zero, errors.NewInternalError(errors.ErrCodeRequestFailed, "cannot encode request payload", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return zero, errors.NewInternalError(errors.ErrCodeRequestFailed, "cannot build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		if tok := c.store.Get(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	env, err := c.send(req)
	if err != nil {
		return zero, err
	}

	var data T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return zero, errors.NewAPIError("invalid response from server", http.StatusOK, err)
		}
	}
	return data, nil
}

// send applies the response protocol in order: transport failure, 401,
// other non-2xx, then envelope decode with a success check.
func (c *Client) send(req *http.Request) (*types.Envelope, error) {
	start := time.Now()

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("Failed to close response body", "path", req.URL.Path, "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeTransport, "cannot read server response", err)
	}

	c.logger.Debug("Backend call completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	// 401 always means "drop the session", whatever the body says.
	if resp.StatusCode == http.StatusUnauthorized {
		c.dropSession(req.URL.Path)
		return nil, errors.NewSessionExpiredError(nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewAPIError(errorMessage(raw, resp.StatusCode), resp.StatusCode, nil)
	}

	var env types.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.NewAPIError("invalid response from server", resp.StatusCode, err)
	}
	if !env.Success {
		return nil, errors.NewAPIError(envelopeMessage(&env, resp.StatusCode), resp.StatusCode, nil)
	}
	return &env, nil
}

// do runs the transport call, through the circuit breaker when one is
// configured, and normalizes transport failures into network errors.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.hc.Do(req)
	})
	if err != nil {
		if IsBreakerOpen(err) {
			return nil, errors.NewNetworkError(errors.ErrCodeBackendRefused, "server is temporarily unavailable", err)
		}
		return nil, errors.NewNetworkError(errors.ErrCodeTransport, "cannot reach the server", err)
	}
	return resp, nil
}

// dropSession clears the token store and fans the expiry signal out to the
// observers registered at this moment. The clear is idempotent, so
// overlapping 401 responses each dispatch once and converge on an empty
// store.
func (c *Client) dropSession(path string) {
	if err := c.store.Clear(); err != nil {
		c.logger.LogError(err, "Failed to clear stored credentials after 401", "path", path)
	}

	c.mu.Lock()
	observers := make([]func(), len(c.unauthorized))
	copy(observers, c.unauthorized)
	c.mu.Unlock()

	c.logger.Info("Session expired, credentials dropped", "path", path, "observers", len(observers))
	for _, fn := range observers {
		fn()
	}
}

// errorBody is the defensive shape for non-2xx reply bodies. The backend
// uses detail or error depending on the layer that failed; a proxy may
// return something else entirely.
type errorBody struct {
	Detail  any    `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// errorMessage extracts a human message from a failed reply, tolerating
// missing, invalid, or non-JSON bodies (for example HTML error pages).
func errorMessage(raw []byte, status int) string {
	fallback := fmt.Sprintf("request failed (status %d)", status)
	if len(raw) == 0 {
		return fallback
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}

	if detail, ok := body.Detail.(string); ok && strings.TrimSpace(detail) != "" {
		return detail
	}
	if strings.TrimSpace(body.Message) != "" {
		return body.Message
	}
	if strings.TrimSpace(body.Error) != "" {
		return body.Error
	}
	return fallback
}

func envelopeMessage(env *types.Envelope, status int) string {
	if strings.TrimSpace(env.Message) != "" {
		return env.Message
	}
	if strings.TrimSpace(env.Error) != "" {
		return env.Error
	}
	return fmt.Sprintf("request failed (status %d)", status)
}
