// Package retry runs fallible operations with exponential backoff and jitter.
//
// The default policy retries every failure. Callers that want to stop early
// on errors that cannot succeed install a ShouldRetry predicate such as
// IsTransient.
package retry

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

const (
	// DefaultMaxAttempts is the number of attempts including the first one.
	DefaultMaxAttempts = 3
	// DefaultInitialDelay is the base delay before the first retry.
	DefaultInitialDelay = time.Second
	// DefaultJitter is the upper bound of the uniform jitter added to each delay.
	DefaultJitter = time.Second
)

// Config holds retry configuration parameters.
type Config struct {
	// MaxAttempts is the maximum number of attempts (default: 3).
	// The initial call counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the base delay before the first retry (default: 1s).
	// The base delay doubles after every failed attempt.
	InitialDelay time.Duration

	// Jitter is the upper bound of a uniform random duration added to each
	// delay (default: 1s). A negative value disables jitter.
	Jitter time.Duration

	// ShouldRetry decides whether a failure is worth another attempt.
	// Nil retries every failure.
	ShouldRetry func(error) bool

	// Logger receives one record per failed attempt and per backoff.
	// Nil uses slog.Default().
	Logger *slog.Logger

	// OnEvent is called synchronously for every lifecycle event.
	OnEvent func(Event)

	// Sleep waits between attempts. Nil uses a timer that honors ctx.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns the default retry configuration.
//   - 3 max attempts
//   - 1 second initial delay
//   - up to 1 second of jitter
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		Jitter:       DefaultJitter,
	}
}

// withDefaults fills zero and negative fields.
func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultInitialDelay
	}
	if c.Jitter == 0 {
		c.Jitter = DefaultJitter
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Sleep == nil {
		c.Sleep = sleep
	}
	return c
}

// BaseDelay returns the delay before retrying after the given failed attempt
// (0-indexed), without jitter: InitialDelay * 2^attempt.
func (c Config) BaseDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	initial := c.InitialDelay
	if initial <= 0 {
		initial = DefaultInitialDelay
	}
	delay := float64(initial) * math.Pow(2, float64(attempt))
	if delay > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(delay)
}

// Delay returns BaseDelay(attempt) plus a uniform jitter in [0, Jitter).
// Jitter is only ever added, so Delay(attempt) >= BaseDelay(attempt).
func (c Config) Delay(attempt int) time.Duration {
	delay := c.BaseDelay(attempt)
	jitter := c.Jitter
	if jitter == 0 {
		jitter = DefaultJitter
	}
	if jitter > 0 {
		delay += time.Duration(rand.Int64N(int64(jitter)))
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
