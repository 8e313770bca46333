package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	scope = "github.com/lumexa/product-sdk/internal/platform/telemetry"

	// HeaderTraceID exposes the active trace to API callers.
	HeaderTraceID = "X-Trace-ID"

	unmatchedRoute = "unmatched"
)

// serverInstruments are the sandbox's OTel request instruments.
type serverInstruments struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

func newServerInstruments() (*serverInstruments, error) {
	meter := otel.Meter(scope)

	var (
		in  serverInstruments
		err error
		all []error
	)

	in.duration, err = meter.Float64Histogram("catalog.sandbox.request.duration",
		metric.WithDescription("Catalog API request duration"), metric.WithUnit("s"))
	all = append(all, err)

	in.requests, err = meter.Int64Counter("catalog.sandbox.requests",
		metric.WithDescription("Catalog API requests served"))
	all = append(all, err)

	in.inFlight, err = meter.Int64UpDownCounter("catalog.sandbox.requests.in_flight",
		metric.WithDescription("Catalog API requests being served"))
	all = append(all, err)

	for _, err := range all {
		if err != nil {
			return nil, err
		}
	}

	return &in, nil
}

// routeOf returns the matched route template so /api/products/:id is one
// series regardless of the id.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}

	return unmatchedRoute
}

// Middleware records OTel request metrics and echoes the trace id in
// X-Trace-ID. It expects TracingMiddleware to run first.
func Middleware() gin.HandlerFunc {
	in, err := newServerInstruments()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if in == nil {
			c.Next()
			return
		}

		route := metric.WithAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", routeOf(c)),
		)

		start := time.Now()
		in.inFlight.Add(ctx, 1, route)

		c.Next()

		in.inFlight.Add(ctx, -1, route)

		status := metric.WithAttributes(attribute.Int("http.status_code", c.Writer.Status()))
		in.duration.Record(ctx, time.Since(start).Seconds(), route, status)
		in.requests.Add(ctx, 1, route, status)
	}
}

// TracingMiddleware starts a server span per request.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}
