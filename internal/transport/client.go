// Package transport is the single path every API request takes: it attaches
// the bearer token, picks the right content type, applies the request
// timeout, stamps a request ID, and intercepts unauthorized responses so
// callers never special-case 401.
package transport

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

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/pkg/logger"
	"github.com/robaa12/mawid-client/pkg/telemetry"
)

// DefaultTimeout is the fixed request timeout applied when none is configured.
const DefaultTimeout = 10 * time.Second

// RequestIDHeader is stamped on every outgoing request
const RequestIDHeader = "X-Request-ID"

// TokenSource yields the current bearer token, or "" when logged out. The
// session manager owns the token; the transport only reads it.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenSourceFunc adapts a function to a TokenSource
type TokenSourceFunc func(ctx context.Context) string

func (f TokenSourceFunc) Token(ctx context.Context) string {
	return f(ctx)
}

// Client shapes and executes requests against the mawid API
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
	log            *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource sets the bearer token source
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook sets the callback invoked once per 401 response
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// WithHTTPClient replaces the underlying http.Client (tests)
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for the given API base URL
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// Post issues a POST with a JSON body. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	reader, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	contentType := ""
	if reader != nil {
		contentType = "application/json"
	}
	return c.do(ctx, http.MethodPost, path, reader, contentType)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	reader, err := jsonBody(body)
	if err != nil {
		return nil, err
	}
	contentType := ""
	if reader != nil {
		contentType = "application/json"
	}
	return c.do(ctx, http.MethodPut, path, reader, contentType)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "")
}

// PostForm issues a multipart POST. The content type (with boundary) comes
// from the form encoder, never set by callers.
func (c *Client) PostForm(ctx context.Context, path string, form *Form) ([]byte, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, body, contentType)
}

// PutForm issues a multipart PUT
func (c *Client) PutForm(ctx context.Context, path string, form *Form) ([]byte, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, path, body, contentType)
}

func jsonBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	op := method + " " + strings.SplitN(path, "?", 2)[0]

	ctx, span := telemetry.StartSpan(ctx, "api."+op)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.New().String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		c.log.Warn("request failed",
			zap.String("op", op),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	telemetry.SetSpanAttributes(ctx, attribute.Int("http.status_code", resp.StatusCode))
	c.log.Debug("request completed",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode == http.StatusUnauthorized {
		// Central auth-failure interception: callers never handle 401
		// themselves.
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		msg := errorMessage(raw)
		if msg == "" {
			msg = "unauthorized"
		}
		return nil, &domain.AuthError{Message: msg, Status: resp.StatusCode}
	}

	if resp.StatusCode >= 400 {
		msg := errorMessage(raw)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &domain.APIError{Status: resp.StatusCode, Message: msg}
	}

	return raw, nil
}

// errorMessage pulls a user-displayable message out of the known server error
// payload shapes.
func errorMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if len(envelope.Error) == 0 {
		return ""
	}

	// error may be a bare string or the {code,message,details} object
	var s string
	if json.Unmarshal(envelope.Error, &s) == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
		Details string `json:"details"`
	}
	if json.Unmarshal(envelope.Error, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Details
	}
	return ""
}
