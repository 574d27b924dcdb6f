// Package clubapi is the HTTP client for the club REST API. It owns the
// fixed catalog of calls the dashboard makes; every record it returns is a
// server-owned copy valid for one request.
package clubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"clubadmin/internal/adapters/http/perf"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 15 * time.Second

// DefaultSlowUpstreamMs is the threshold above which calls log at WARN.
const DefaultSlowUpstreamMs = 500

// maxErrorBody caps how much of a failed response is kept on APIError.
const maxErrorBody = 64 << 10

type ctxKey int

const (
	tokenKey ctxKey = iota
	requestIDKey
)

// WithToken attaches the caller's bearer token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token attached to ctx, or "".
func TokenFromContext(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey).(string)
	return s
}

// WithRequestID attaches the inbound request id so upstream calls carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id attached to ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

// Options configures a Client.
type Options struct {
	Timeout        time.Duration
	SlowUpstreamMs int
	Collector      *perf.Collector
	HTTPClient     *http.Client
}

// Client calls the club API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	collector *perf.Collector
	slowMs    float64
}

// New creates a client for the API rooted at baseURL.
// PRE: baseURL is an absolute http(s) URL
// POST: Returns a client with a bounded timeout; no request is made
func New(baseURL string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	slow := opts.SlowUpstreamMs
	if slow <= 0 {
		slow = DefaultSlowUpstreamMs
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      hc,
		collector: opts.Collector,
		slowMs:    float64(slow),
	}
}

// call describes one catalog entry invocation.
type call struct {
	method string
	path   string // concrete path, e.g. /players/12
	route  string // path template for timings, e.g. /players/:id
	body   any
	out    any
}

// do performs a single attempt: no retry, no cache.
func (c *Client) do(ctx context.Context, cl call) error {
	var reqBody io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", cl.method, cl.route, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", cl.method, cl.route, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	reqID := RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.record(cl, reqID, status, start)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.route, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, cl.method, cl.path, raw)
	}
	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, cl.method, cl.route, err)
	}
	return nil
}

func (c *Client) record(cl call, reqID string, status int, start time.Time) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	attrs := []any{
		"request_id", reqID,
		"method", cl.method,
		"route", cl.route,
		"status", status,
		"duration_ms", durationMs,
	}
	if durationMs >= c.slowMs {
		slog.Warn("slow_upstream_request", attrs...)
	} else {
		slog.Debug("upstream_request", attrs...)
	}
	if c.collector != nil {
		c.collector.Record(perf.Entry{
			Kind:       perf.KindUpstream,
			Path:       cl.method + " " + cl.route,
			StatusCode: status,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

func (c *Client) get(ctx context.Context, path, route string, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, route: route, out: out})
}

func (c *Client) post(ctx context.Context, path, route string, body, out any) error {
	return c.do(ctx, call{method: http.MethodPost, path: path, route: route, body: body, out: out})
}

func (c *Client) patch(ctx context.Context, path, route string, body, out any) error {
	return c.do(ctx, call{method: http.MethodPatch, path: path, route: route, body: body, out: out})
}

func (c *Client) delete(ctx context.Context, path, route string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: path, route: route})
}

// IsTransport reports whether err is a network failure rather than an API answer.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr) && !errors.Is(err, ErrDecode) &&
		!errors.Is(err, context.Canceled)
}
