package anthropic

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/avelar/contentforge"
)

// wrapError wraps an Anthropic SDK error with capability error
// categorization.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		// Not an API error, likely a network failure.
		return contentforge.NewUnavailableError(err.Error(), 0, err)
	}

	code := apiErr.StatusCode
	msg := apiErrorMessage(apiErr)

	switch {
	case code == 429 || code == 529 || (code >= 500 && code < 600):
		// Rate limited, overloaded, or server error.
		if retryAfter := parseRetryAfter(apiErr.Response); retryAfter > 0 {
			return contentforge.NewUnavailableErrorWithRetry(msg, code, retryAfter, err)
		}
		return contentforge.NewUnavailableError(msg, code, err)
	case code == 401 || code == 403:
		// Rejected credentials. Retrying cannot help.
		return &contentforge.Error{
			Msg:   msg,
			Kind:  contentforge.KindUnavailable,
			Code:  code,
			Cause: err,
		}
	default:
		return contentforge.NewInvalidResponseError(msg, code, err)
	}
}

// apiErrorMessage builds a message from the SDK error's fields. The
// SDK's Error method formats the underlying request and response and
// panics when either is nil.
func apiErrorMessage(apiErr *anthropic.Error) string {
	if raw := apiErr.RawJSON(); raw != "" {
		return fmt.Sprintf("anthropic: %s (status %d)", raw, apiErr.StatusCode)
	}
	if text := http.StatusText(apiErr.StatusCode); text != "" {
		return fmt.Sprintf("anthropic: http status %d %s", apiErr.StatusCode, text)
	}
	return fmt.Sprintf("anthropic: http status %d", apiErr.StatusCode)
}

// parseRetryAfter extracts the Retry-After duration from an HTTP response.
// Returns 0 if the header is not present or cannot be parsed.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}

	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}
	return 0
}
