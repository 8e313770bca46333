package clients

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"

	"github.com/lumexa/product-sdk/internal/adapters/http/middleware"
)

const scope = "github.com/lumexa/product-sdk/internal/adapters/clients"

// instruments are the OTel client metrics. They are no-ops unless the
// telemetry package installed a meter provider.
type instruments struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
}

func newInstruments() (*instruments, error) {
	meter := otel.Meter(scope)

	duration, err := meter.Float64Histogram("catalog.client.request.duration",
		metric.WithDescription("Catalog API call duration, retries included"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("duration histogram: %w", err)
	}

	requests, err := meter.Int64Counter("catalog.client.requests",
		metric.WithDescription("Catalog API calls by outcome"))
	if err != nil {
		return nil, fmt.Errorf("request counter: %w", err)
	}

	return &instruments{duration: duration, requests: requests}, nil
}

// record counts one Do call. outcome is the status class such as "2xx", or
// circuit_open, canceled or error when no response arrived.
func (in *instruments) record(ctx context.Context, downstream, method string, status int, elapsed time.Duration, outcome string) {
	attrs := []attribute.KeyValue{
		attribute.String("peer.service", downstream),
		attribute.String("http.method", method),
		attribute.String("result", outcome),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	set := metric.WithAttributes(attrs...)
	in.duration.Record(ctx, elapsed.Seconds(), set)
	in.requests.Add(ctx, 1, set)
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// propagate copies the request and correlation ids and the W3C trace
// context from ctx onto req.
func propagate(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}
	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
