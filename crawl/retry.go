package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy controls how many times an operation is attempted and how
// long to wait between attempts.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration

	// Logger receives one warning per failed attempt. Nil disables logging.
	Logger *slog.Logger

	// Sleep replaces the context-aware wait between attempts.
	// Nil uses a timer.
	Sleep SleepFunc
}

// DefaultRetryPolicy returns a policy of 2 attempts spaced 1.5s apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 2,
		Delay:    1500 * time.Millisecond,
	}
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

// Retry runs op until it succeeds or the policy's attempts are exhausted.
// The name identifies the operation in log records.
func Retry[T any](ctx context.Context, policy RetryPolicy, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := max(policy.Attempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if policy.Logger != nil {
			policy.Logger.Warn("attempt failed",
				"op", name,
				"attempt", attempt,
				"attempts", attempts,
				"err", err,
			)
		}

		if attempt == attempts {
			break
		}
		if err := policy.sleep(ctx, policy.Delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%s: failed after %d attempts: %w", name, attempts, lastErr)
}

// RetryOr is like Retry but returns fallback instead of an error once the
// attempts are exhausted. Context cancellation is still reported as an error.
func RetryOr[T any](ctx context.Context, policy RetryPolicy, name string, fallback T, op func(ctx context.Context) (T, error)) (T, error) {
	v, err := Retry(ctx, policy, name, op)
	if err != nil {
		if ctx.Err() != nil {
			return fallback, ctx.Err()
		}
		return fallback, nil
	}
	return v, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
