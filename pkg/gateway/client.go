package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/skillsphere/backend/pkg/apperr"
)

// Client wraps the Ollama API client with a per-call timeout and a circuit
// breaker. It never retries: a failed call is reported to the caller, who may
// resubmit.
type Client struct {
	api    *api.Client
	cfg    Config
	client *http.Client

	// simple circuit breaker state
	failures  int32
	openUntil int64 // unix nano
	closed    int32 // atomic flag for Close()
}

// package-level logger for pkg/gateway; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/gateway. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// NewClient creates a new gateway client wrapper.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		api:    api.NewClient(u, httpClient),
		cfg:    cfg,
		client: httpClient,
	}
	logger.Info("gateway: client created", slog.String("base_url", cfg.BaseURL), slog.Duration("timeout", cfg.Timeout))
	return c, nil
}

func NewDefaultClient(cfg Config) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.failures) < int32(c.cfg.CircuitFailureThreshold) {
		return false
	}

	if time.Now().UnixNano() < atomic.LoadInt64(&c.openUntil) {
		return true
	}

	// attempt half-open: reset failures and allow a request
	atomic.StoreInt32(&c.failures, 0)
	return false
}

func (c *Client) recordFailure() {
	v := atomic.AddInt32(&c.failures, 1)
	if v >= int32(c.cfg.CircuitFailureThreshold) {
		atomic.StoreInt64(&c.openUntil, time.Now().Add(c.cfg.CircuitReset).UnixNano())
	}
}

// Close releases resources held by the client: it closes idle connections on
// the underlying HTTP transport when supported. Close is idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// Health pings the gateway root endpoint.
func (c *Client) Health(ctx context.Context) error {
	if c.isCircuitOpen() {
		return fmt.Errorf("%w: circuit open", apperr.ErrGateway)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrGateway, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.recordFailure()
		return fmt.Errorf("%w: %v", apperr.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recordFailure()
		return fmt.Errorf("%w: health endpoint returned status %d", apperr.ErrGateway, resp.StatusCode)
	}

	atomic.StoreInt32(&c.failures, 0)
	return nil
}

// Generate sends a prompt to the model and returns the accumulated response
// text. The call is bounded by the configured timeout; failures surface as
// ErrGateway and are never retried here.
func (c *Client) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if c.isCircuitOpen() {
		return "", fmt.Errorf("%w: circuit open", apperr.ErrGateway)
	}

	ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var sb strings.Builder
	req := &api.GenerateRequest{Model: model, Prompt: prompt}
	start := time.Now()
	err := c.api.Generate(ctxReq, req, func(r api.GenerateResponse) error {
		sb.WriteString(r.Response)
		return nil
	})
	latency := time.Since(start)

	if err != nil {
		c.recordFailure()
		return "", fmt.Errorf("%w: generate: %v", apperr.ErrGateway, err)
	}

	atomic.StoreInt32(&c.failures, 0)
	logger.Info("gateway: generate",
		slog.String("model", model),
		slog.Int64("latency_ms", latency.Milliseconds()),
		slog.Int("response_len", sb.Len()),
	)
	return sb.String(), nil
}
