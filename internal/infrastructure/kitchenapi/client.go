package kitchenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/pantrylens/kitchen/internal/metrics"
	"github.com/pantrylens/kitchen/internal/requestid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds the kitchen API connection settings
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit float64 // requests per second
	Burst     int
}

// Client handles communication with the kitchen API.
// Requests are never retried; failures surface to the caller.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	metrics     *metrics.Metrics
	debug       bool
}

// NewClient creates a new kitchen API client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		token:       cfg.Token,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		logger:      logger.Named("kitchenapi"),
	}
}

// SetDebug enables request/response body logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetMetrics attaches request counters
func (c *Client) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

// apiError is the error body returned by the kitchen API
type apiError struct {
	Detail json.RawMessage `json:"detail"`
}

func (e apiError) message() string {
	var s string
	if err := json.Unmarshal(e.Detail, &s); err == nil {
		return s
	}
	return string(e.Detail)
}

// do executes one request and decodes the JSON response into out (when non-nil)
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) (err error) {
	defer func() { c.metrics.ObserveRequest(op, err) }()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", domain.ErrTransient, err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
		if c.debug {
			c.logger.Debug("request body", zap.String("op", op), zap.ByteString("body", payload))
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PantryLens/1.0")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", domain.ErrTransient, op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: reading body: %v", domain.ErrTransient, op, err)
	}

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	if c.debug {
		c.logger.Debug("response body", zap.String("op", op), zap.ByteString("body", data))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", domain.ErrTransient, op, err)
	}
	return nil
}

// statusError maps a non-2xx response onto the error taxonomy.
// The pantry create endpoint reports a duplicate ingredient with 400.
func statusError(op string, status int, body []byte) error {
	var apiErr apiError
	detail := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiErr); err == nil && len(apiErr.Detail) > 0 {
		detail = apiErr.message()
	}

	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s: %s", domain.ErrNotFound, op, detail)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, detail)
	case status == http.StatusBadRequest && op == opPantryCreate:
		return fmt.Errorf("%w: %s", domain.ErrConflict, detail)
	case status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s: %s", domain.ErrValidation, op, detail)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s: %s", domain.ErrInvalidRequest, op, detail)
	default:
		return fmt.Errorf("%w: %s: status %d: %s", domain.ErrTransient, op, status, detail)
	}
}
