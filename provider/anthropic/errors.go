package anthropic

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spetersoncode/dreamfuse"
)

// wrapError wraps an Anthropic SDK error with dreamfuse error categorization.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	code := apiErr.StatusCode
	return &dreamfuse.Error{
		Msg:        err.Error(),
		Cat:        categorizeStatusCode(code),
		Code:       code,
		RetryDelay: parseRetryAfter(apiErr.Response),
		Cause:      err,
	}
}

// categorizeStatusCode determines the error category from an HTTP status code.
// 529 is Anthropic's overloaded status.
func categorizeStatusCode(code int) dreamfuse.ErrorCategory {
	switch {
	case code == 429 || code == 529:
		return dreamfuse.ErrorTransient
	case code >= 500 && code < 600:
		return dreamfuse.ErrorTransient
	case code == 401 || code == 403:
		return dreamfuse.ErrorPermanent
	case code == 400 || code == 404 || code == 413 || code == 422:
		return dreamfuse.ErrorUserInput
	default:
		return dreamfuse.ErrorPermanent
	}
}

func parseRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return 0
}
