package openai

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"
	"github.com/spetersoncode/dreamfuse"
)

// wrapError wraps an OpenAI SDK error with dreamfuse error categorization.
// It extracts status codes, error codes and Retry-After headers.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		// Not an API error, return as-is (likely a network error)
		return err
	}

	code := apiErr.StatusCode
	return &dreamfuse.Error{
		Msg:        err.Error(),
		Cat:        categorizeStatusCode(code),
		Code:       code,
		Kind:       apiErr.Code,
		RetryDelay: parseRetryAfter(apiErr.Response),
		Cause:      err,
	}
}

// categorizeStatusCode determines the error category from an HTTP status code.
func categorizeStatusCode(code int) dreamfuse.ErrorCategory {
	switch {
	case code == 429:
		return dreamfuse.ErrorTransient // Rate limited
	case code >= 500 && code < 600:
		return dreamfuse.ErrorTransient // Server error
	case code == 401 || code == 403:
		return dreamfuse.ErrorPermanent // Authentication/authorization
	case code == 400 || code == 404 || code == 422:
		return dreamfuse.ErrorUserInput // Bad request, content policy or not found
	default:
		return dreamfuse.ErrorPermanent
	}
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

	// HTTP-date (RFC 7231)
	if t, err := http.ParseTime(header); err == nil {
		if delay := time.Until(t); delay > 0 {
			return delay
		}
	}

	return 0
}
