package google

import (
	"errors"

	"google.golang.org/genai"

	"github.com/avelar/contentforge"
)

// wrapError wraps a Google GenAI error with capability error
// categorization. genai.APIError does not expose response headers, so
// no Retry-After delay is available.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// Not an API error, likely a network failure.
		return contentforge.NewUnavailableError(err.Error(), 0, err)
	}

	code := apiErr.Code
	msg := err.Error()

	switch {
	case code == 429 || (code >= 500 && code < 600):
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
