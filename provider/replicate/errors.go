package replicate

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/replicate/replicate-go"
	"github.com/spetersoncode/dreamfuse"
)

// wrapError converts a Replicate API error into a categorized error.
// Replicate reports problems as RFC 7807 documents with a "detail" field.
// Transport and context errors pass through unchanged.
func wrapError(err error) error {
	var apiErr *replicate.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	msg := apiErr.Detail
	if msg == "" {
		msg = apiErr.Title
	}
	if msg == "" {
		msg = http.StatusText(apiErr.Status)
	}

	return &dreamfuse.Error{
		Msg:   fmt.Sprintf("replicate: %d %s", apiErr.Status, msg),
		Cat:   categorizeStatusCode(apiErr.Status),
		Code:  apiErr.Status,
		Cause: err,
	}
}

// categorizeStatusCode determines the error category from an HTTP status code.
func categorizeStatusCode(code int) dreamfuse.ErrorCategory {
	switch {
	case code == 429:
		return dreamfuse.ErrorTransient
	case code >= 500 && code < 600:
		return dreamfuse.ErrorTransient
	case code == 401 || code == 403:
		return dreamfuse.ErrorPermanent
	case code == 400 || code == 404 || code == 422:
		return dreamfuse.ErrorUserInput
	default:
		return dreamfuse.ErrorPermanent
	}
}
