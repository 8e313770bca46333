package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// HeaderStoreToken carries the store-scoped API token.
	HeaderStoreToken = "X-Store-Token"

	contentTypeJSON = "application/json"

	// DefaultMaxResponseBytes bounds how much of a response body is read.
	DefaultMaxResponseBytes int64 = 10 << 20
)

// Transport sends a single HTTP request. Implementations must be safe for
// concurrent use when the Client is shared between goroutines.
type Transport interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// HTTPTransport adapts a standard *http.Client to Transport.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport wraps client. It panics if client is nil.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		panic("catalog: nil *http.Client")
	}

	return &HTTPTransport{client: client}
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return t.client.Do(req.WithContext(ctx))
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "https://catalog.example.com".
	// A path prefix is kept; a trailing slash is not required.
	BaseURL string

	// StoreToken is sent as X-Store-Token on every request.
	StoreToken string

	// Transport performs the requests. Required.
	Transport Transport

	// Logger receives debug records for each exchange. Defaults to a
	// discarding logger.
	Logger *slog.Logger

	// MaxResponseBytes caps the size of a response body.
	// Defaults to DefaultMaxResponseBytes.
	MaxResponseBytes int64
}

// Client is the product-catalog API facade. It holds no mutable state and
// is safe for concurrent use if its Transport is.
type Client struct {
	baseURL    string
	storeToken string
	transport  Transport
	logger     *slog.Logger
	maxBody    int64
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	if cfg.Transport == nil {
		return nil, errors.New("catalog: transport is required")
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("catalog: base URL is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing base URL: %w", err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("catalog: base URL must be http or https, got %q", cfg.BaseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		storeToken: cfg.StoreToken,
		transport:  cfg.Transport,
		logger:     logger.With(slog.String("component", "catalog.Client")),
		maxBody:    maxBody,
	}, nil
}

// request describes one exchange with the API.
type request struct {
	method string
	path   string
	query  url.Values
	body   *Value

	// discardBody skips decoding a successful response.
	discardBody bool
}

// send performs req and returns the response payload with any "data"
// envelope removed. Every failure is an *Error.
func (c *Client) send(ctx context.Context, req request) (Value, error) {
	start := time.Now()
	logger := c.logger.With(
		slog.String("method", req.method),
		slog.String("path", req.path),
	)

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return Value{}, classify(0, nil, err)
	}

	resp, err := c.transport.Do(ctx, httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		logger.DebugContext(ctx, "catalog request failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return Value{}, classify(0, nil, fmt.Errorf("%s %s: %w", req.method, req.path, err))
	}
	if resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	body, err := c.readBody(resp)
	if err != nil {
		return Value{}, &Error{
			Kind:       KindAPI,
			Message:    err.Error(),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	logger.DebugContext(ctx, "catalog request completed",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Value{}, classify(resp.StatusCode, body, &statusError{
			method:     req.method,
			url:        httpReq.URL.Redacted(),
			statusCode: resp.StatusCode,
		})
	}

	if req.discardBody || len(bytes.TrimSpace(body)) == 0 {
		return NullValue(), nil
	}

	parsed, err := ParseValue(body)
	if err != nil {
		return Value{}, &Error{
			Kind:       KindAPI,
			Message:    "decoding response body: " + err.Error(),
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	return extractPayload(parsed), nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req request) (*http.Request, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader = http.NoBody
	if req.body != nil {
		data, err := req.body.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set(HeaderStoreToken, c.storeToken)
	httpReq.Header.Set("Accept", contentTypeJSON)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", contentTypeJSON)
	}

	return httpReq, nil
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("response body exceeds %d bytes", c.maxBody)
	}

	return body, nil
}

// extractPayload unwraps a {"data": ...} envelope. Bodies without one are
// the payload themselves.
func extractPayload(v Value) Value {
	if data, ok := v.Field("data"); ok {
		return data
	}

	return v
}

// resourcePath joins escaped segments into an absolute path.
func resourcePath(segments ...string) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(segment))
	}

	return b.String()
}

// fetchOne performs req and decodes the payload as a single object.
func fetchOne[T any](ctx context.Context, c *Client, req request, root string, decode func(Value, string) (T, error)) (T, error) {
	var zero T

	payload, err := c.send(ctx, req)
	if err != nil {
		return zero, err
	}

	out, err := decode(payload, root)
	if err != nil {
		return zero, err
	}

	return out, nil
}

// fetchList performs req and decodes the payload as an array, keeping the
// server's ordering.
func fetchList[T any](ctx context.Context, c *Client, req request, root string, decode func(Value, string) (T, error)) ([]T, error) {
	payload, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	return decodeList(payload, root, decode)
}

// exec performs req and ignores the body of a successful response.
func (c *Client) exec(ctx context.Context, req request) error {
	req.discardBody = true
	_, err := c.send(ctx, req)

	return err
}

func bodyOf(v Value) *Value {
	return &v
}
