package clients

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/lumexa/product-sdk/internal/platform/config"
	"github.com/lumexa/product-sdk/internal/platform/logging"
	"github.com/lumexa/product-sdk/pkg/catalog"
)

const defaultTimeout = 30 * time.Second

var _ catalog.Transport = (*Client)(nil)

// Config configures a Client.
type Config struct {
	// ServiceName names the downstream in logs, spans, metrics and the
	// breaker gauge.
	ServiceName string

	// Timeout bounds each attempt, not the whole call.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig
	RateLimit config.RateLimitConfig

	// Logger is used when the request context carries none.
	Logger *slog.Logger
}

// ConfigFrom reads the catalog and client sections of cfg.
func ConfigFrom(cfg *config.Config, logger *slog.Logger) *Config {
	return &Config{
		ServiceName: cfg.Catalog.ServiceName,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		RateLimit:   cfg.Client.RateLimit,
		Logger:      logger,
	}
}

// Client is the catalog.Transport the SDK sends through. Around each call
// it applies, outermost first: a span, the circuit breaker, retries with
// jittered backoff, the outbound rate limit, and id propagation.
//
// A 5xx that survives retries comes back as a response so the SDK can
// read its message; the breaker still counts it as a failure.
type Client struct {
	http       *http.Client
	downstream string
	retry      backoff
	limiter    *rate.Limiter
	cb         *breaker[*http.Response]
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *instruments
}

// New builds a Client. Zero Timeout and MaxAttempts fall back to 30s and a
// single attempt.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	metrics, err := newInstruments()
	if err != nil {
		return nil, err
	}

	logger := cmp.Or(cfg.Logger, slog.Default())

	var limiter *rate.Limiter
	if cfg.RateLimit.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), max(cfg.RateLimit.Burst, 1))
	}

	return &Client{
		http: &http.Client{
			Timeout:   cmp.Or(cfg.Timeout, defaultTimeout),
			Transport: pooledTransport(cfg.Transport),
		},
		downstream: cfg.ServiceName,
		retry:      newBackoff(cfg.Retry),
		limiter:    limiter,
		cb:         newBreaker[*http.Response](cfg.ServiceName, cfg.Circuit, logger.With(slog.String("downstream", cfg.ServiceName))),
		logger:     logger,
		tracer:     otel.Tracer(scope),
		metrics:    metrics,
	}, nil
}

func pooledTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // stdlib guarantee

	t.MaxIdleConns = cmp.Or(cfg.MaxIdleConns, config.DefaultTransportMaxIdleConns)
	t.MaxIdleConnsPerHost = cmp.Or(cfg.MaxIdleConnsPerHost, config.DefaultTransportMaxIdleConnsPerHost)
	t.IdleConnTimeout = cmp.Or(cfg.IdleConnTimeout, 90*time.Second)

	return t
}

// Do implements catalog.Transport. Only replayable requests are retried: an
// idempotent method whose body, if any, can be rewound with GetBody.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logging.FromContextOr(ctx, c.logger).With(
		slog.String("downstream", c.downstream),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	ctx, span := c.tracer.Start(ctx, "catalog "+req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.Redacted()),
			attribute.String("peer.service", c.downstream),
		),
	)
	defer span.End()

	resp, err := c.cb.execute(func() (*http.Response, error) {
		resp, err := c.sendWithRetries(ctx, req, log)
		if err == nil && resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, err
	})
	if errors.Is(err, errServerStatus) {
		err = nil
	}

	elapsed := time.Since(start)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)

		outcome := "error"
		switch {
		case errors.Is(err, ErrCircuitOpen):
			outcome = "circuit_open"
			log.Warn("catalog request rejected by open circuit")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			outcome = "canceled"
			log.Debug("catalog request abandoned", slog.Any("error", err))
		default:
			log.Error("catalog request failed", slog.Duration("duration", elapsed), slog.Any("error", err))
		}

		c.metrics.record(ctx, c.downstream, req.Method, 0, elapsed, outcome)

		return nil, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}

	c.metrics.record(ctx, c.downstream, req.Method, resp.StatusCode, elapsed, statusClass(resp.StatusCode))
	log.Debug("catalog request completed", slog.Int("status", resp.StatusCode), slog.Duration("duration", elapsed))

	return resp, nil
}

// CircuitState returns the breaker's current state.
func (c *Client) CircuitState() gobreaker.State {
	return c.cb.state()
}
