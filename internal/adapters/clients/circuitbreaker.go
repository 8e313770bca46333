package clients

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"

	"github.com/lumexa/product-sdk/internal/platform/config"
)

// defaultBreakerTimeout applies when no open-state timeout is configured.
const defaultBreakerTimeout = 30 * time.Second

// breakerStateGauge reports the breaker state per downstream.
var breakerStateGauge = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "catalog",
		Subsystem: "client",
		Name:      "circuit_breaker_state",
		Help:      "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"downstream"},
)

// RegisterMetrics registers the client collectors with reg. Registering
// twice with the same registry is not an error.
func RegisterMetrics(reg prometheus.Registerer) error {
	if err := reg.Register(breakerStateGauge); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return err
	}

	return nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// errServerStatus marks an exchange that ended in a 5xx response. It only
// travels through the breaker; callers still receive the response.
var errServerStatus = errors.New("server error status")

// breaker counts one outcome per Do call, after retries.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive failures
//   - Open → HalfOpen: after Timeout
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen → Open: on any failure
type breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

func newBreaker[T any](name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *breaker[T] {
	maxFailures := uint32(max(cfg.MaxFailures, 1))     //nolint:gosec // validated small positive
	halfOpenLimit := uint32(max(cfg.HalfOpenLimit, 1)) //nolint:gosec // validated small positive

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpenLimit,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerStateGauge.WithLabelValues(name).Set(stateToFloat(to))
		},
		// A caller giving up says nothing about the downstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	breakerStateGauge.WithLabelValues(name).Set(stateToFloat(gobreaker.StateClosed))

	return &breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

// execute runs fn unless the breaker is open. Rejections surface as
// ErrCircuitOpen.
func (b *breaker[T]) execute(fn func() (T, error)) (T, error) {
	out, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return out, ErrCircuitOpen
	}

	return out, err
}

func (b *breaker[T]) state() gobreaker.State {
	return b.cb.State()
}
