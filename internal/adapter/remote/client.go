package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
)

// MaxBodyBytes caps the size of a downloaded catalog.
const MaxBodyBytes = 8 << 20

// Retry defaults for transient failures.
const (
	DefaultAttempts   = 3
	DefaultBackoff    = 250 * time.Millisecond
	DefaultMaxBackoff = 2 * time.Second
)

var ErrBodyTooLarge = errors.New("response body exceeds limit")

// statusError is a non-200 response. 5xx responses are retried.
type statusError struct {
	code int
	body []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("catalog server error: status %d: %s", e.code, e.body)
}

// Client downloads a catalog CSV over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger

	attempts   int
	backoff    time.Duration
	maxBackoff time.Duration
}

// NewClient creates a client for the given URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:     logger,
		attempts:   DefaultAttempts,
		backoff:    DefaultBackoff,
		maxBackoff: DefaultMaxBackoff,
	}
}

// WithRetry overrides the retry policy. attempts below 1 are treated as 1.
func (c *Client) WithRetry(attempts int, backoff, maxBackoff time.Duration) *Client {
	c.attempts = max(attempts, 1)
	c.backoff = backoff
	c.maxBackoff = maxBackoff
	return c
}

// URL is the address the client fetches.
func (c *Client) URL() string { return c.url }

// Fetch downloads the document. Non-200 responses are errors; network
// failures and 5xx responses are retried with exponential backoff.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	backoff := c.backoff
	for attempt := 1; ; attempt++ {
		data, err := c.fetchOnce(req)
		if err == nil || attempt >= c.attempts || !retryable(ctx, err) {
			return data, err
		}
		c.logger.Warn("catalog download failed, retrying",
			"url", c.url,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)
		if !retry.SleepWithContext(ctx, backoff) {
			return nil, fmt.Errorf("fetch catalog: %w", ctx.Err())
		}
		backoff = retry.NextBackoff(backoff, c.maxBackoff)
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, ErrBodyTooLarge) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

func (c *Client) fetchOnce(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, body: bytes.TrimSpace(body)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(data) > MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}

	c.logger.Debug("catalog downloaded",
		"url", c.url,
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}
