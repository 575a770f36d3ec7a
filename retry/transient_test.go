package retry

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/spetersoncode/dreamfuse"
	"github.com/stretchr/testify/assert"
)

// mockAPIError simulates an SDK error with a status code.
type mockAPIError struct {
	code int
	msg  string
}

func (e *mockAPIError) Error() string   { return e.msg }
func (e *mockAPIError) StatusCode() int { return e.code }

// mockNetError simulates a network error with a timeout flag.
type mockNetError struct {
	msg     string
	timeout bool
}

func (e *mockNetError) Error() string   { return e.msg }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return false }

var _ net.Error = (*mockNetError)(nil)

func TestIsTransientStatusCode(t *testing.T) {
	tests := []struct {
		code     int
		expected bool
	}{
		{200, false},
		{400, false},
		{401, false},
		{404, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, isTransientStatusCode(tt.code))
			assert.Equal(t, tt.expected, IsTransient(&mockAPIError{code: tt.code, msg: "api error"}))
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"categorized transient", dreamfuse.NewTransientError("slow down", 429, nil), true},
		{"categorized permanent wins over text", dreamfuse.NewPermanentError("timeout in key rotation", 401, nil), false},
		{"categorized user input", dreamfuse.NewUserInputError("content_policy_violation", 400, nil), false},
		{"net timeout", &mockNetError{msg: "i/o", timeout: true}, true},
		{"net non timeout", &mockNetError{msg: "invalid address"}, false},
		{"connection reset errno", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"connection refused text", errors.New("dial tcp: connection refused"), true},
		{"rate limit text", errors.New("rate limit exceeded"), true},
		{"bad gateway text", errors.New("502 bad gateway"), true},
		{"wrapped status", fmt.Errorf("call: %w", &mockAPIError{code: 503, msg: "unavailable"}), true},
		{"generic", errors.New("invalid input"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}
