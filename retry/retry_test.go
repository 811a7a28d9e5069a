package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelar/contentforge"
)

func TestDoSuccess(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnRetriableError(t *testing.T) {
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}

	callCount := 0
	retriableErr := contentforge.NewUnavailableError("rate limited", 429, nil)

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", retriableErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestDoNoRetryOnNonRetriableError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0
	permanentErr := contentforge.NewInvalidResponseError("bad request", 400, nil)

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", permanentErr
	})

	assert.Error(t, err)
	assert.Equal(t, error(permanentErr), err)
	assert.Equal(t, 1, callCount) // No retries
}

func TestDoNoRetryOnUncategorizedError(t *testing.T) {
	cfg := DefaultConfig()
	callCount := 0
	plainErr := errors.New("something broke")

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", plainErr
	})

	assert.Error(t, err)
	assert.Equal(t, plainErr, err)
	assert.Equal(t, 1, callCount)
}

func TestDoExhaustsRetries(t *testing.T) {
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}

	callCount := 0
	retriableErr := contentforge.NewTimeoutError("backend slow", nil)

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", retriableErr
	})

	assert.Error(t, err)
	assert.Equal(t, error(retriableErr), err)
	assert.Equal(t, 3, callCount)
}

func TestDoHonorsRetryAfter(t *testing.T) {
	cfg := Config{
		MaxAttempts:  2,
		InitialDelay: time.Second, // would dominate without Retry-After
		MaxDelay:     time.Minute,
		Multiplier:   2.0,
		Jitter:       0,
	}

	callCount := 0
	retriableErr := contentforge.NewUnavailableErrorWithRetry(
		"rate limited", 429, 5*time.Millisecond, nil)

	start := time.Now()
	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount == 1 {
			return "", retriableErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 2, callCount)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     time.Minute,
		Multiplier:   2.0,
		Jitter:       0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", contentforge.NewTimeoutError("slow", nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestDisabledSingleAttempt(t *testing.T) {
	cfg := Disabled()
	callCount := 0

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", contentforge.NewTimeoutError("slow", nil)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDelayBackoff(t *testing.T) {
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       0,
	}

	assert.Equal(t, time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	assert.Equal(t, 5*time.Second, cfg.Delay(3)) // capped
	assert.Equal(t, time.Second, cfg.Delay(-1))  // clamped
}

func TestDelayJitterBounds(t *testing.T) {
	cfg := Config{
		InitialDelay: time.Second,
		MaxDelay:     time.Minute,
		Multiplier:   2.0,
		Jitter:       0.1,
	}

	for i := 0; i < 50; i++ {
		d := cfg.Delay(0)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
}
