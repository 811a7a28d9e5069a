package retry

import (
	"context"
	"time"

	"github.com/avelar/contentforge"
)

// Do executes the given function with retry logic.
// It respects context cancellation during backoff waits and honors a
// server-suggested retry delay over the computed backoff when one is
// present on the error.
// Returns the result on success, or the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !contentforge.IsRetriable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)
			if suggested := contentforge.RetryAfterOf(err); suggested > 0 {
				delay = suggested
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
				// Continue to next attempt
			}
		}
	}

	return zero, lastErr
}
