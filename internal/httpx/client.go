package httpx

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
	"strconv"
	"time"

	"github.com/amishk599/jobhunter/internal/model"
)

const maxAttempts = 4

// Client wraps an *http.Client with exponential backoff on 429/5xx and a
// fixed 1s pause on transport errors. Other 4xx are never retried. One
// Client (and its connection pool) is shared by every adapter in a phase.
type Client struct {
	http    *http.Client
	headers map[string]string
	logger  *slog.Logger
	// sleep is swapped out in tests so backoff doesn't slow them down.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a retrying client over a pooled transport with a 30s
// total / 10s connect budget. Default headers are sent on every request.
func NewClient(headers map[string]string, logger *slog.Logger) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		headers: headers,
		logger:  logger,
		sleep:   sleepCtx,
	}
}

// NewClientWithTimeout is NewClient with a custom total budget; the Workday
// phase uses a shorter one.
func NewClientWithTimeout(headers map[string]string, total time.Duration, logger *slog.Logger) *Client {
	c := NewClient(headers, logger)
	c.http.Timeout = total
	return c
}

// SetTransport replaces the underlying transport. Tests use it to reroute
// adapter requests to an httptest server.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.http.Transport = rt
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Do performs the request with retries and returns the response body. A nil
// error means a non-retryable status was received; callers still check
// StatusCode for plain 4xx.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do sends method/url with optional extra headers and body. On 429 or ≥500
// it sleeps 2^attempt seconds and retries; on a transport error it sleeps
// 1s; both are capped at 4 attempts, after which the last error (wrapped in
// model.HTTPError for status failures) is returned.
func (c *Client) Do(ctx context.Context, method, url string, extraHeaders map[string]string, body []byte) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, err
		}
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}
		for k, v := range extraHeaders {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = err
			if err := c.sleep(ctx, time.Second); err != nil {
				return nil, err
			}
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = &model.HTTPError{
				StatusCode: resp.StatusCode,
				RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
				Err:        fmt.Errorf("%s %s", method, url),
			}
			delay := time.Duration(1<<attempt) * time.Second
			var httpErr *model.HTTPError
			if errors.As(lastErr, &httpErr) && httpErr.RetryAfter > 0 {
				delay = httpErr.RetryAfter
			}
			if c.logger != nil {
				c.logger.Debug("retrying after rate limit or server error",
					"status", resp.StatusCode,
					"attempt", attempt+1,
					"delay", delay,
				)
			}
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if readErr != nil {
			return nil, readErr
		}
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
	}
	return nil, lastErr
}

// GetJSON fetches url and decodes the JSON body into out. Non-200 statuses
// are returned as model.HTTPError without decoding.
func (c *Client) GetJSON(ctx context.Context, url string, extraHeaders map[string]string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, url, extraHeaders, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{StatusCode: resp.StatusCode, Err: fmt.Errorf("GET %s", url)}
	}
	return json.Unmarshal(resp.Body, out)
}

// PostJSON marshals in, POSTs it as application/json, and decodes the
// response into out.
func (c *Client) PostJSON(ctx context.Context, url string, extraHeaders map[string]string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range extraHeaders {
		headers[k] = v
	}
	resp, err := c.Do(ctx, http.MethodPost, url, headers, body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{StatusCode: resp.StatusCode, Err: fmt.Errorf("POST %s", url)}
	}
	return json.Unmarshal(resp.Body, out)
}

// IsNotFound reports whether err is a model.HTTPError with status 404.
// Adapters probing large slug rosters use it to skip boards that don't exist.
func IsNotFound(err error) bool {
	var httpErr *model.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
