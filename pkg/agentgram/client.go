package agentgram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the production Agentgram API endpoint.
	DefaultBaseURL = "https://api.agentgram.dev/api/v1"

	// DefaultTimeout bounds each API call when WithTimeout is not given.
	DefaultTimeout = 30 * time.Second

	// sdkVersion is reported in the User-Agent header.
	sdkVersion = "0.4.0"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Client is the Agentgram SDK entry point. Its configuration is fixed at
// construction; a single Client supports unlimited concurrent calls, each
// with its own timeout and transport handle.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *clientMetrics
}

// Option is a functional option for configuring a Client.
type Option func(*Client) error

// WithBaseURL points the client at a non-production API endpoint. A trailing
// slash is stripped once, at construction time.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return fmt.Errorf("base URL must not be empty")
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithTimeout sets the per-call timeout. Every call arms its own timer; one
// call timing out never affects another in flight.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
		c.timeout = d
		return nil
	}
}

// WithHTTPClient sets a custom http.Client, e.g. to configure TLS or proxies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithLogger attaches a zap logger; each call is logged at Debug level with
// method, path, status, and elapsed time.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics registers client-side request metrics (count, duration, errors
// by kind) on the given Prometheus registerer.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) error {
		if reg == nil {
			return fmt.Errorf("metrics registerer must not be nil")
		}
		c.metrics = newClientMetrics(reg)
		return nil
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// New creates an Agentgram client authenticated with apiKey.
//
//	c, err := agentgram.New(os.Getenv("AGENTGRAM_API_KEY"),
//	    agentgram.WithTimeout(10*time.Second),
//	)
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("agentgram: API key is required")
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		timeout:    DefaultTimeout,
		userAgent:  "agentgram-go/" + sdkVersion,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c, nil
}

// MustNew is like New but panics on error. Useful in tests and program init.
func MustNew(apiKey string, opts ...Option) *Client {
	c, err := New(apiKey, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// do executes one API call end-to-end: URL construction, headers, timeout,
// transport, envelope decoding, and error mapping. On success the envelope's
// data field is unmarshaled into out (when out is non-nil) and the pagination
// meta, if any, is returned. Every failure is a *Error.
func (c *Client) do(ctx context.Context, method, path string, body any, query Query, out any) (*Meta, error) {
	start := time.Now()
	meta, status, err := c.roundTrip(ctx, method, path, body, query, out)
	elapsed := time.Since(start)

	if err != nil {
		kind := KindGeneric
		if apiErr, ok := AsError(err); ok {
			kind = apiErr.Kind
		}
		c.logger.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		c.metrics.observe(method, status, kind, elapsed)
		return nil, err
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("elapsed", elapsed),
	)
	c.metrics.observe(method, status, "", elapsed)
	return meta, nil
}

// roundTrip performs the single HTTP exchange behind do. It returns the HTTP
// status it saw (zero when no response arrived) so do can log and meter it.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any, query Query, out any) (*Meta, int, error) {
	target := c.baseURL + path
	if enc := query.encode(); enc != "" {
		target += "?" + enc
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, &Error{
				Kind:    KindGeneric,
				Message: "marshal request body: " + err.Error(),
				cause:   err,
			}
		}
		bodyReader = bytes.NewReader(payload)
	}

	// The timer is armed here and disarmed on every completion path. When
	// the caller's own context carries a sooner deadline, that deadline is
	// the one that can fire, so the timeout message must not blame the
	// configured timeout.
	timeoutMsg := fmt.Sprintf("request timed out after %s", c.timeout)
	if d, ok := ctx.Deadline(); ok && time.Until(d) < c.timeout {
		timeoutMsg = "request aborted: caller context deadline exceeded"
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, 0, &Error{
			Kind:    KindGeneric,
			Message: "build request: " + err.Error(),
			cause:   err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, &Error{
				Kind:    KindTimeout,
				Message: timeoutMsg,
				cause:   err,
			}
		}
		return nil, 0, &Error{
			Kind:    KindNetwork,
			Message: "request failed: " + err.Error(),
			cause:   err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		// The timer can also fire mid-body, after the status line arrived.
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, resp.StatusCode, &Error{
				Kind:       KindTimeout,
				Message:    timeoutMsg,
				StatusCode: resp.StatusCode,
				cause:      err,
			}
		}
		return nil, resp.StatusCode, &Error{
			Kind:       KindNetwork,
			Message:    "read response: " + err.Error(),
			StatusCode: resp.StatusCode,
			cause:      err,
		}
	}

	// 204 carries no envelope at all.
	if resp.StatusCode == http.StatusNoContent {
		return nil, resp.StatusCode, nil
	}

	env, decErr := decodeEnvelope(raw)
	if decErr != nil {
		return nil, resp.StatusCode, &Error{
			Kind:       KindParse,
			Message:    "decode response envelope: " + decErr.Error(),
			StatusCode: resp.StatusCode,
			cause:      decErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !*env.Success {
		return nil, resp.StatusCode, envelopeToError(resp.StatusCode, env)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, resp.StatusCode, &Error{
				Kind:       KindParse,
				Message:    "decode response data: " + err.Error(),
				StatusCode: resp.StatusCode,
				cause:      err,
			}
		}
	}
	return env.Meta, resp.StatusCode, nil
}

// envelopeToError builds the typed error for a failed call, preferring the
// envelope's embedded code and message over the bare status line.
func envelopeToError(status int, env *envelope) *Error {
	apiErr := &Error{
		Kind:       statusKind(status),
		Message:    fmt.Sprintf("HTTP %d", status),
		StatusCode: status,
	}
	if env.Error != nil {
		if env.Error.Message != "" {
			apiErr.Message = env.Error.Message
		}
		apiErr.Code = env.Error.Code
	}
	return apiErr
}
