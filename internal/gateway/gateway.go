// Package gateway is the single chokepoint for every call to the LightShop
// backend. It injects the bearer credential, unwraps the response envelope,
// and classifies failures exactly once so callers never double-surface them.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/SeimoDev/LightShop/domain"
	"github.com/SeimoDev/LightShop/internal/config"
)

// User-facing classification messages. These are toasted by the gateway;
// callers receive them inside the returned *domain.APIError.
const (
	MsgSessionExpired = "session expired, please log in again"
	MsgAccessDenied   = "access denied"
	MsgNotFound       = "resource not found"
	MsgServerError    = "server error, please try again later"
	MsgNetworkError   = "network error, please check your connection"
	MsgRequestFailed  = "request failed"
)

// Client implements domain.Gateway over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  domain.TokenSource
	notify  domain.Notifier
	logger  *slog.Logger
	metrics *Collector
	limiter *rate.Limiter

	// autoToast controls envelope-level (code != 200) toasting only;
	// transport-level classification always notifies.
	autoToast bool

	// onUnauthorized tears down the session. Late-bound by the container to
	// break the gateway/session cycle.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets the per-request credential lookup.
func WithTokenSource(ts domain.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithNotifier sets the toast sink for classified failures.
func WithNotifier(n domain.Notifier) Option {
	return func(c *Client) { c.notify = n }
}

// WithOnUnauthorized sets the hook invoked when a 401 arrives.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying transport, keeping the configured
// timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		timeout := c.http.Timeout
		c.http = h
		if c.http.Timeout == 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics attaches a prometheus collector.
func WithMetrics(m *Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// New builds a gateway client for the given variant configuration.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL:   cfg.BaseURL,
		http:      &http.Client{Timeout: cfg.Timeout},
		autoToast: cfg.AutoToast,
		logger:    slog.Default(),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notify == nil {
		c.notify = noopNotifier{}
	}
	return c
}

// BindSession late-binds the credential lookup and the 401 teardown hook.
// The session store needs the gateway to log in, and the gateway needs the
// session store's token; the container constructs the gateway first and
// calls BindSession once the store exists.
func (c *Client) BindSession(tokens domain.TokenSource, onUnauthorized func()) {
	c.tokens = tokens
	c.onUnauthorized = onUnauthorized
}

// Get implements domain.Gateway.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post implements domain.Gateway.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put implements domain.Gateway.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete implements domain.Gateway.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.networkFailure(method, path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// The token is read per request, not captured at construction: it
	// changes whenever the session store logs in or out.
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveFailure(method, string(domain.KindNetwork))
		return c.networkFailure(method, path, err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveRequest(method, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.networkFailure(method, path, err)
	}

	var env domain.Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= 400 {
		return c.classifyStatus(method, path, resp.StatusCode, &env, decodeErr)
	}

	if decodeErr != nil {
		c.logger.Error("malformed response envelope",
			"method", method, "path", path, "error", decodeErr)
		c.notify.Error(MsgServerError)
		return &domain.APIError{
			Kind:    domain.KindServer,
			Status:  resp.StatusCode,
			Message: MsgServerError,
			Err:     decodeErr,
		}
	}

	if env.Code != 200 {
		return c.envelopeFailure(method, path, resp.StatusCode, &env)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// envelopeFailure handles a transport-level success carrying a domain-level
// failure code. The storefront toasts these automatically; the admin console
// leaves presentation to the caller.
func (c *Client) envelopeFailure(method, path string, status int, env *domain.Envelope) error {
	message := env.Message
	if message == "" {
		message = MsgRequestFailed
	}
	c.logger.Warn("request rejected",
		"method", method, "path", path, "code", env.Code, "message", env.Message)
	c.metrics.ObserveFailure(method, string(domain.KindValidation))
	if c.autoToast {
		c.notify.Error(message)
	}
	return &domain.APIError{
		Kind:    domain.KindValidation,
		Status:  status,
		Code:    env.Code,
		Message: message,
	}
}

// classifyStatus maps a transport-level failure onto the error taxonomy,
// surfacing each exactly once. 401 additionally tears down the session.
func (c *Client) classifyStatus(method, path string, status int, env *domain.Envelope, decodeErr error) error {
	kind := domain.KindValidation
	var message string

	switch {
	case status == http.StatusUnauthorized:
		kind = domain.KindUnauthorized
		message = MsgSessionExpired
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case status == http.StatusForbidden:
		kind = domain.KindForbidden
		message = MsgAccessDenied
	case status == http.StatusNotFound:
		kind = domain.KindNotFound
		message = MsgNotFound
	case status >= 500:
		kind = domain.KindServer
		message = MsgServerError
	default:
		message = MsgRequestFailed
		if decodeErr == nil && env.Message != "" {
			message = env.Message
		}
	}

	c.logger.Warn("request failed",
		"method", method, "path", path, "status", status, "kind", string(kind))
	c.metrics.ObserveFailure(method, string(kind))
	c.notify.Error(message)

	code := 0
	if decodeErr == nil {
		code = env.Code
	}
	return &domain.APIError{
		Kind:    kind,
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func (c *Client) networkFailure(method, path string, err error) error {
	c.logger.Warn("network failure", "method", method, "path", path, "error", err)
	c.notify.Error(MsgNetworkError)
	return &domain.APIError{
		Kind:    domain.KindNetwork,
		Message: MsgNetworkError,
		Err:     err,
	}
}

type noopNotifier struct{}

func (noopNotifier) Success(string) int64 { return 0 }
func (noopNotifier) Error(string) int64   { return 0 }
func (noopNotifier) Warning(string) int64 { return 0 }
func (noopNotifier) Info(string) int64    { return 0 }
