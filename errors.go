package contentforge

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingCapability indicates a Capabilities bundle with a nil field.
type ErrMissingCapability string

func (e ErrMissingCapability) Error() string {
	return fmt.Sprintf("contentforge: missing capability %s", string(e))
}

// ErrorKind classifies a capability failure by cause.
type ErrorKind string

const (
	// KindTimeout indicates the call exceeded its deadline before the
	// backend produced a result.
	KindTimeout ErrorKind = "timeout"

	// KindUnavailable indicates the backend could not serve the call:
	// network failure, rate limit, server overload, or rejected
	// credentials.
	KindUnavailable ErrorKind = "unavailable"

	// KindInvalidResponse indicates the backend answered but the
	// response was unusable: empty content, malformed structure, or a
	// request the backend says is invalid.
	KindInvalidResponse ErrorKind = "invalid_response"
)

// Error is a categorized capability failure with the metadata callers
// need for retry and surfacing decisions.
type Error struct {
	Msg        string
	Kind       ErrorKind
	Retriable  bool
	Code       int           // HTTP status code, 0 if not applicable
	RetryDelay time.Duration // from Retry-After header, 0 if not available
	Cause      error         // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewTimeoutError creates a timeout error. Timeouts are retriable.
func NewTimeoutError(msg string, cause error) *Error {
	return &Error{Msg: msg, Kind: KindTimeout, Retriable: true, Cause: cause}
}

// NewUnavailableError creates a retriable unavailable error.
func NewUnavailableError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Kind: KindUnavailable, Retriable: true, Code: statusCode, Cause: cause}
}

// NewUnavailableErrorWithRetry creates an unavailable error carrying a
// server-suggested retry delay.
func NewUnavailableErrorWithRetry(msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	return &Error{
		Msg:        msg,
		Kind:       KindUnavailable,
		Retriable:  true,
		Code:       statusCode,
		RetryDelay: retryAfter,
		Cause:      cause,
	}
}

// NewInvalidResponseError creates a non-retriable invalid-response error.
func NewInvalidResponseError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Kind: KindInvalidResponse, Code: statusCode, Cause: cause}
}

// KindOf returns the kind of a categorized error, or "" if the error
// (or any wrapped error) is not a *Error.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsTimeout reports whether the error is a capability timeout.
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}

// IsUnavailable reports whether the error is a backend-unavailable failure.
func IsUnavailable(err error) bool {
	return KindOf(err) == KindUnavailable
}

// IsInvalidResponse reports whether the error is an invalid-response failure.
func IsInvalidResponse(err error) bool {
	return KindOf(err) == KindInvalidResponse
}

// IsRetriable reports whether the error is marked retriable.
func IsRetriable(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Retriable
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 0
}

// RetryAfterOf returns the retry delay from a categorized error, or 0.
func RetryAfterOf(err error) time.Duration {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.RetryDelay
	}
	return 0
}
