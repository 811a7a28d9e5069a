package contentforge

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	t.Run("timeout is retriable", func(t *testing.T) {
		err := NewTimeoutError("research call timed out", nil)
		assert.Equal(t, KindTimeout, err.Kind)
		assert.True(t, err.Retriable)
		assert.True(t, IsTimeout(err))
		assert.True(t, IsRetriable(err))
	})

	t.Run("unavailable carries status code", func(t *testing.T) {
		err := NewUnavailableError("backend overloaded", 503, nil)
		assert.Equal(t, KindUnavailable, err.Kind)
		assert.True(t, err.Retriable)
		assert.Equal(t, 503, StatusCodeOf(err))
	})

	t.Run("unavailable with retry-after", func(t *testing.T) {
		err := NewUnavailableErrorWithRetry("rate limited", 429, 30*time.Second, nil)
		assert.Equal(t, 30*time.Second, RetryAfterOf(err))
		assert.True(t, IsUnavailable(err))
	})

	t.Run("invalid response is not retriable", func(t *testing.T) {
		err := NewInvalidResponseError("empty completion", 0, nil)
		assert.Equal(t, KindInvalidResponse, err.Kind)
		assert.False(t, err.Retriable)
		assert.True(t, IsInvalidResponse(err))
		assert.False(t, IsRetriable(err))
	})
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewUnavailableError("image backend failed", 502, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "image backend failed")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := NewTimeoutError("deadline exceeded", nil)
	wrapped := fmt.Errorf("story branch: %w", inner)

	assert.Equal(t, KindTimeout, KindOf(wrapped))
	assert.True(t, IsRetriable(wrapped))
}

func TestKindOf_Uncategorized(t *testing.T) {
	err := errors.New("plain error")

	assert.Equal(t, ErrorKind(""), KindOf(err))
	assert.False(t, IsRetriable(err))
	assert.Zero(t, StatusCodeOf(err))
	assert.Zero(t, RetryAfterOf(err))
}

func TestCapabilitiesValidate(t *testing.T) {
	full := Capabilities{
		Researcher: stubCaps{},
		Prompts:    stubCaps{},
		Images:     stubCaps{},
		Stories:    stubCaps{},
	}
	require.NoError(t, full.Validate())

	missing := full
	missing.Images = nil
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Images")
}

type stubCaps struct{}

func (stubCaps) Research(ctx context.Context, topic string, opts ...Option) (string, error) {
	return "", nil
}

func (stubCaps) GenerateImagePrompt(ctx context.Context, req PromptRequest, opts ...Option) (string, error) {
	return "", nil
}

func (stubCaps) GenerateStoryPrompt(ctx context.Context, req PromptRequest, opts ...Option) (string, error) {
	return "", nil
}

func (stubCaps) GenerateImage(ctx context.Context, prompt string, opts ...ImageOption) (*ImageRef, error) {
	return &ImageRef{}, nil
}

func (stubCaps) WriteStory(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return "", nil
}
