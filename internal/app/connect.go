package app

import (
	"context"
	"time"

	"dateTracker/internal/logger"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// retryConstant runs op up to attempts times, delay apart, and returns the
// last error once attempts are used up or ctx ends.
func retryConstant(ctx context.Context, attempts int, delay time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		return op()
	}, policy, func(err error, next time.Duration) {
		logger.Warn("App: database connection failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int("attempts_left", attempts-attempt),
			zap.Duration("retry_in", next))
	})
}
