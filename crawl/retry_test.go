package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docassist/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleep returns a sleep hook that records requested delays
// without waiting.
func recordingSleep(delays *[]time.Duration) crawl.SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	}
}

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns value on first success without sleeping", func(t *testing.T) {
		t.Parallel()

		var delays []time.Duration
		policy := crawl.RetryPolicy{Attempts: 3, Delay: time.Second, Sleep: recordingSleep(&delays)}

		calls := 0
		got, err := crawl.Retry(context.Background(), policy, "op", func(_ context.Context) (string, error) {
			calls++
			return "ok", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, calls)
		assert.Empty(t, delays)
	})

	t.Run("succeeds on the last allowed attempt", func(t *testing.T) {
		t.Parallel()

		var delays []time.Duration
		policy := crawl.RetryPolicy{Attempts: 3, Delay: 1500 * time.Millisecond, Sleep: recordingSleep(&delays)}

		calls := 0
		got, err := crawl.Retry(context.Background(), policy, "op", func(_ context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{1500 * time.Millisecond, 1500 * time.Millisecond}, delays)
	})

	t.Run("always failing op is called exactly Attempts times", func(t *testing.T) {
		t.Parallel()

		var delays []time.Duration
		policy := crawl.RetryPolicy{Attempts: 2, Delay: time.Second, Sleep: recordingSleep(&delays)}
		failure := errors.New("boom")

		calls := 0
		_, err := crawl.Retry(context.Background(), policy, "op", func(_ context.Context) (string, error) {
			calls++
			return "", failure
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, failure)
		assert.Contains(t, err.Error(), "2 attempts")
		assert.Equal(t, 2, calls)
		assert.Len(t, delays, 1)
	})

	t.Run("stops when context is canceled during sleep", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		policy := crawl.RetryPolicy{
			Attempts: 5,
			Delay:    time.Second,
			Sleep: func(_ context.Context, _ time.Duration) error {
				cancel()
				return context.Canceled
			},
		}

		calls := 0
		_, err := crawl.Retry(ctx, policy, "op", func(_ context.Context) (string, error) {
			calls++
			return "", errors.New("fail")
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not call op when context is already canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		_, err := crawl.Retry(ctx, crawl.DefaultRetryPolicy(), "op", func(_ context.Context) (string, error) {
			calls++
			return "", nil
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, calls)
	})

	t.Run("uses real timer when no sleep hook is set", func(t *testing.T) {
		t.Parallel()

		policy := crawl.RetryPolicy{Attempts: 2, Delay: 10 * time.Millisecond}

		calls := 0
		start := time.Now()
		_, err := crawl.Retry(context.Background(), policy, "op", func(_ context.Context) (string, error) {
			calls++
			return "", errors.New("fail")
		})

		require.Error(t, err)
		assert.Equal(t, 2, calls)
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})
}

func TestRetryOr(t *testing.T) {
	t.Parallel()

	t.Run("returns fallback when attempts are exhausted", func(t *testing.T) {
		t.Parallel()

		var delays []time.Duration
		policy := crawl.RetryPolicy{Attempts: 2, Delay: time.Second, Sleep: recordingSleep(&delays)}

		got, err := crawl.RetryOr(context.Background(), policy, "op", "sentinel", func(_ context.Context) (string, error) {
			return "", errors.New("fail")
		})

		require.NoError(t, err)
		assert.Equal(t, "sentinel", got)
		assert.Len(t, delays, 1)
	})

	t.Run("returns value on success", func(t *testing.T) {
		t.Parallel()

		got, err := crawl.RetryOr(context.Background(), crawl.DefaultRetryPolicy(), "op", "sentinel", func(_ context.Context) (string, error) {
			return "value", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("reports cancellation as an error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		got, err := crawl.RetryOr(ctx, crawl.DefaultRetryPolicy(), "op", "sentinel", func(_ context.Context) (string, error) {
			return "value", nil
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, "sentinel", got)
	})
}

func TestDefaultRetryPolicy(t *testing.T) {
	t.Parallel()

	policy := crawl.DefaultRetryPolicy()

	assert.Equal(t, 2, policy.Attempts)
	assert.Equal(t, 1500*time.Millisecond, policy.Delay)
}
