// Package inference talks to hosted model endpoints that answer a JSON POST
// with either generated text or raw image bytes.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnavailable is returned once every attempt against an endpoint failed.
	ErrUnavailable = errors.New("inference endpoint unavailable")
	// ErrMalformedResponse means the endpoint answered 200 with a body that
	// could not be decoded.
	ErrMalformedResponse = errors.New("malformed inference response")
)

const (
	DefaultRetries = 3
	DefaultWait    = 10 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Client struct {
	token   string
	client  *http.Client
	retries int
	wait    time.Duration
	sleep   SleepFunc
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRetries sets the attempt count. Values below 1 are ignored.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithWait sets the pause after a failed attempt and the fallback for a 503
// without estimated_time.
func WithWait(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.wait = d
		}
	}
}

func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		client:  &http.Client{Timeout: 120 * time.Second},
		retries: DefaultRetries,
		wait:    DefaultWait,
		sleep:   Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends payload as JSON to url. A 200 is returned at once. A 503 is
// treated as a model still loading and waits for the advertised
// estimated_time; other statuses and transport errors wait the configured
// interval. After the last attempt Post returns ErrUnavailable.
func (c *Client) Post(ctx context.Context, url string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		resp, err := c.do(ctx, url, body)

		wait := c.wait
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			log.Error().Err(err).Str("url", url).
				Int("attempt", attempt).Int("retries", c.retries).
				Dur("wait", wait).Msg("Inference request failed")
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		case resp.StatusCode == http.StatusServiceUnavailable:
			wait = estimatedTime(resp.Body, c.wait)
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			log.Warn().Str("url", url).
				Int("attempt", attempt).Int("retries", c.retries).
				Dur("wait", wait).Msg("Model is loading")
		default:
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, truncate(resp.Body, 512))
			log.Error().Str("url", url).Int("status", resp.StatusCode).
				Str("body", truncate(resp.Body, 512)).
				Int("attempt", attempt).Int("retries", c.retries).
				Dur("wait", wait).Msg("Inference endpoint returned an error")
		}

		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	log.Error().Str("url", url).Int("retries", c.retries).Msg("Inference endpoint failed after all attempts")
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, c.retries, lastErr)
}

func (c *Client) do(ctx context.Context, url string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// estimatedTime reads the estimated_time field (seconds) of a loading
// response, falling back when it is absent or not positive.
func estimatedTime(body []byte, fallback time.Duration) time.Duration {
	var loading struct {
		EstimatedTime *float64 `json:"estimated_time"`
	}
	if err := json.Unmarshal(body, &loading); err != nil || loading.EstimatedTime == nil || *loading.EstimatedTime <= 0 {
		return fallback
	}
	return time.Duration(*loading.EstimatedTime * float64(time.Second))
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
