package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/lumexa/product-sdk/internal/platform/config"
)

// backoff is the delay schedule between attempts: Initial, then growing by
// Multiplier up to Max, each delay shifted by up to ±Jitter of itself.
type backoff struct {
	attempts   int
	initial    time.Duration
	max        time.Duration
	multiplier float64
	jitter     float64
}

func newBackoff(cfg config.RetryConfig) backoff {
	b := backoff{
		attempts:   max(cfg.MaxAttempts, 1),
		initial:    cfg.InitialInterval,
		max:        cfg.MaxInterval,
		multiplier: cfg.Multiplier,
		jitter:     cfg.JitterFactor,
	}
	if b.multiplier < 1 {
		b.multiplier = config.DefaultClientRetryMultiplier
	}
	if b.jitter <= 0 {
		b.jitter = config.DefaultClientRetryJitterFactor
	}

	return b
}

// delay is the pause before retry n, counting from 1.
func (b backoff) delay(n int) time.Duration {
	d := float64(b.initial) * math.Pow(b.multiplier, float64(n-1))
	if b.max > 0 {
		d = math.Min(d, float64(b.max))
	}

	spread := rand.Float64()*2 - 1 //nolint:gosec // jitter needs no crypto randomness
	d += d * b.jitter * spread

	return time.Duration(d)
}

// wait blocks for delay(n) or until ctx is done.
func (b backoff) wait(ctx context.Context, n int) error {
	t := time.NewTimer(b.delay(n))
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// sendWithRetries runs the attempts of one Do call. Writes other than PUT
// and DELETE get a single attempt. A 5xx on the last attempt is returned as
// the response.
func (c *Client) sendWithRetries(ctx context.Context, req *http.Request, log *slog.Logger) (*http.Response, error) {
	attempts := 1
	if isReplayable(req) {
		attempts = c.retry.attempts
	}

	var lastErr error

	for n := range attempts {
		if n > 0 {
			if err := c.retry.wait(ctx, n); err != nil {
				return nil, err
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		attemptReq, err := c.attempt(ctx, req, n)
		if err != nil {
			return nil, err
		}

		final := n == attempts-1
		resp, err := c.http.Do(attemptReq)

		switch {
		case err != nil:
			lastErr = err
			if final || !isRetryable(err) {
				return nil, giveUp(attempts, err)
			}
			log.Debug("attempt failed", slog.Int("attempt", n+1), slog.Any("error", err))
		case resp.StatusCode >= http.StatusInternalServerError && !final:
			log.Debug("attempt got server error", slog.Int("attempt", n+1), slog.Int("status", resp.StatusCode))
			_ = resp.Body.Close()
		default:
			return resp, nil
		}
	}

	return nil, giveUp(attempts, lastErr)
}

// attempt clones req for attempt n with a rewound body and the
// propagation headers.
func (c *Client) attempt(ctx context.Context, req *http.Request, n int) (*http.Request, error) {
	out := req.Clone(ctx)

	if n > 0 && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		out.Body = body
	}

	propagate(ctx, out)

	return out, nil
}

// giveUp wraps a retryable error in ErrMaxRetriesExceeded when more than one
// attempt was allowed.
func giveUp(attempts int, err error) error {
	if attempts > 1 && isRetryable(err) {
		return fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, err)
	}

	return err
}

// isReplayable reports whether req may be sent more than once: an
// idempotent method with no body or a rewindable one.
func isReplayable(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
	default:
		return false
	}
}

// isRetryable accepts network timeouts and dial or connection errors.
// Cancellation by the caller is final.
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
