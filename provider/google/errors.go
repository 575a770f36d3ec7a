package google

import (
	"errors"

	"github.com/spetersoncode/dreamfuse"
	"google.golang.org/genai"
)

// wrapError wraps a Google GenAI error with dreamfuse error categorization.
// genai.APIError carries no headers, so Retry-After is never set.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	return &dreamfuse.Error{
		Msg:   err.Error(),
		Cat:   categorizeStatusCode(apiErr.Code),
		Code:  apiErr.Code,
		Kind:  apiErr.Status,
		Cause: err,
	}
}

// blockedError reports a response withheld by safety filtering. It matches
// dreamfuse.IsContentPolicy so handlers translate it like an OpenAI rejection.
func blockedError(reason string) error {
	return &dreamfuse.Error{
		Msg:  "request blocked by safety filter: " + reason,
		Cat:  dreamfuse.ErrorUserInput,
		Kind: dreamfuse.ContentPolicyCode,
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
