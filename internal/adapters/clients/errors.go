// Package clients provides the resilient HTTP transport used by the catalog
// SDK: retries, circuit breaking, rate limiting, and telemetry around
// net/http.
package clients

import "errors"

// Transport errors. The catalog SDK wraps them as API errors without a
// status code; errors.Is still reaches them.
var (
	// ErrCircuitOpen is returned while the circuit breaker rejects requests.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last network error once all attempts
	// of an idempotent request have failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
