// Package api is the single point of network I/O for the coaching backend.
//
// A Client is bound to one base origin at construction. Every backend
// operation is a typed wrapper over Request, which performs exactly one HTTP
// round trip: there is no retry, backoff, or de-duplication of concurrent
// calls. Failures come back as one error value that can be classified with
// errors.Is against ErrTransport, ErrRequestFailed, or ErrDecode.
package api

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

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/saadjs/fitcoach-cli/internal/logging"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 8 << 20

	HeaderRequestID = "X-Request-Id"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient substitutes the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrNop(c.logger)
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// RequestOptions describes one call. Body may be nil, pre-serialized
// ([]byte, string, json.RawMessage), or any value accepted by json.Marshal.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    any
}

// Request sends one HTTP request to base+path and returns the raw JSON body.
// A successful response with an empty body yields a nil message.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = http.MethodGet
	}

	payload, err := encodeBody(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}
	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, ksuid.New().String())
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	log := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get(HeaderRequestID)),
	)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("api request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn("api response read failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, fmt.Errorf("%w: read %s %s response: %w", ErrTransport, method, path, err)
	}
	log.Debug("api request complete", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("api request rejected", zap.Int("status", resp.StatusCode), zap.ByteString("body", truncate(raw, 512)))
		return nil, &StatusError{StatusCode: resp.StatusCode, Method: method, Path: path, Body: raw}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		log.Warn("api response is not json", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: %s %s returned invalid json", ErrDecode, method, path)
	}
	return json.RawMessage(raw), nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return json.Marshal(b)
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// do runs one request and decodes the response into a fresh T. A null or
// empty body yields (nil, nil).
func do[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	raw, err := c.Request(ctx, path, RequestOptions{Method: method, Body: body})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrDecode, method, path, err)
	}
	return out, nil
}

// doRequired is do for operations that must return a value.
func doRequired[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	out, err := do[T](ctx, c, method, path, body)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s %s returned an empty body", ErrDecode, method, path)
	}
	return out, nil
}
