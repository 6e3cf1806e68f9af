// Package outbound performs the calls a product makes to the URLs declared on
// it: stock validation, reservation and webhook notification.
//
// Calls are single attempts. There is no retry, backoff or idempotency key.
package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

var (
	// ErrUnreachable is returned when the request could not be completed.
	ErrUnreachable = errors.New("upstream unreachable")
	// ErrRejected is returned when the upstream answered with a non-2xx status.
	ErrRejected = errors.New("upstream rejected request")
	// ErrMalformedBody is returned when the response body is not the expected JSON.
	ErrMalformedBody = errors.New("upstream returned malformed body")
)

// Client issues JSON requests to product-declared URLs.
type Client struct {
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a Client. A zero timeout means no client-side timeout;
// the caller's context still bounds every call.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// GetJSON issues a GET and decodes the JSON response into out, keeping numbers
// as json.Number.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("outbound GET failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer drain(resp.Body)

	return decodeResponse(resp, out)
}

// ExchangeJSON posts body as JSON and decodes the JSON response into out.
// Unlike PostJSON it treats the call as a request for data and returns errors.
func (c *Client) ExchangeJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("outbound POST failed", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer drain(resp.Body)

	return decodeResponse(resp, out)
}

// PostJSON issues a POST with body encoded as JSON. The response body is not
// interpreted; only the status code decides the outcome.
func (c *Client) PostJSON(ctx context.Context, url string, body any) Outcome {
	payload, err := json.Marshal(body)
	if err != nil {
		return Outcome{Kind: KindUnreachable, Error: fmt.Sprintf("encode body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Outcome{Kind: KindUnreachable, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("outbound POST failed", zap.String("url", url), zap.Error(err))
		return Outcome{Kind: KindUnreachable, Error: err.Error()}
	}
	defer drain(resp.Body)

	c.logger.Debug("outbound POST",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{
			Kind:       KindRejected,
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("POST %s returned %d", url, resp.StatusCode),
		}
	}
	return Outcome{Kind: KindDelivered, StatusCode: resp.StatusCode}
}

// StatusError reports a non-2xx answer. It matches ErrRejected.
type StatusError struct {
	Method string
	URL    string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d", e.Method, e.URL, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrRejected
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: resp.Request.Method, URL: resp.Request.URL.String(), Code: resp.StatusCode}
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodyBytes))
	_ = body.Close()
}
