package retry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleeper captures requested delays without waiting.
type recordingSleeper struct {
	delays []time.Duration
}

func (s *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return ctx.Err()
}

func testConfig(maxAttempts int) (Config, *recordingSleeper) {
	s := &recordingSleeper{}
	cfg := DefaultConfig()
	cfg.MaxAttempts = maxAttempts
	cfg.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg.Sleep = s.sleep
	return cfg, s
}

func TestDoSuccess(t *testing.T) {
	cfg, sleeper := testConfig(3)
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
	assert.Empty(t, sleeper.delays)
}

func TestDoPermanentFailureUsesEveryAttempt(t *testing.T) {
	for maxAttempts := 1; maxAttempts <= 5; maxAttempts++ {
		t.Run(fmt.Sprintf("max_%d", maxAttempts), func(t *testing.T) {
			cfg, sleeper := testConfig(maxAttempts)
			callCount := 0
			permanentErr := errors.New("invalid input")

			_, err := Do(context.Background(), cfg, func() (int, error) {
				callCount++
				return 0, permanentErr
			})

			assert.Same(t, permanentErr, err)
			assert.Equal(t, maxAttempts, callCount)
			assert.Len(t, sleeper.delays, maxAttempts-1)
		})
	}
}

func TestDoSucceedsOnAttemptK(t *testing.T) {
	const maxAttempts = 5
	for k := 1; k <= maxAttempts; k++ {
		t.Run(fmt.Sprintf("k_%d", k), func(t *testing.T) {
			cfg, sleeper := testConfig(maxAttempts)
			callCount := 0

			result, err := Do(context.Background(), cfg, func() (int, error) {
				callCount++
				if callCount < k {
					return 0, errors.New("not yet")
				}
				return callCount, nil
			})

			require.NoError(t, err)
			assert.Equal(t, k, result)
			assert.Equal(t, k, callCount)
			assert.Len(t, sleeper.delays, k-1)
		})
	}
}

func TestDoBackoffSchedule(t *testing.T) {
	cfg, sleeper := testConfig(3)
	callCount := 0

	result, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount <= 2 {
			return "", errors.New("flaky")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, callCount)
	require.Len(t, sleeper.delays, 2)

	assert.GreaterOrEqual(t, sleeper.delays[0], 1*time.Second)
	assert.Less(t, sleeper.delays[0], 2*time.Second)
	assert.GreaterOrEqual(t, sleeper.delays[1], 2*time.Second)
	assert.Less(t, sleeper.delays[1], 3*time.Second)
}

func TestDoSingleAttemptNeverSleeps(t *testing.T) {
	cfg, sleeper := testConfig(1)
	callCount := 0

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		return "", errors.New("fail")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
	assert.Empty(t, sleeper.delays)
}

func TestDoReturnsLastError(t *testing.T) {
	cfg, _ := testConfig(3)
	errs := []error{errors.New("first"), errors.New("second"), errors.New("third")}
	callCount := 0

	_, err := Do(context.Background(), cfg, func() (string, error) {
		e := errs[callCount]
		callCount++
		return "", e
	})

	assert.Same(t, errs[2], err)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		Jitter:       -1,
		Logger:       slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", errors.New("timeout")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestDoShouldRetryStopsEarly(t *testing.T) {
	cfg, sleeper := testConfig(5)
	cfg.ShouldRetry = func(err error) bool { return err.Error() != "fatal" }
	callCount := 0

	_, err := Do(context.Background(), cfg, func() (string, error) {
		callCount++
		if callCount == 2 {
			return "", errors.New("fatal")
		}
		return "", errors.New("flaky")
	})

	assert.EqualError(t, err, "fatal")
	assert.Equal(t, 2, callCount)
	assert.Len(t, sleeper.delays, 1)
}

func TestDoEmitsEvents(t *testing.T) {
	cfg, _ := testConfig(2)
	var events []Event
	cfg.OnEvent = func(e Event) { events = append(events, e) }
	boom := errors.New("boom")

	_, err := Do(context.Background(), cfg, func() (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)

	var types []EventType
	for _, e := range events {
		types = append(types, e.Type)
		assert.Equal(t, 2, e.MaxAttempts)
		assert.False(t, e.Timestamp.IsZero())
	}
	assert.Equal(t, []EventType{
		EventAttemptStart,
		EventAttemptFailed,
		EventRetrying,
		EventAttemptStart,
		EventAttemptFailed,
		EventExhausted,
	}, types)

	assert.Equal(t, 1, events[2].Attempt)
	assert.GreaterOrEqual(t, events[2].Delay, time.Second)
	assert.Equal(t, 2, events[5].Attempt)
	assert.Same(t, boom, events[5].Error)
}

func TestDoLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	cfg, _ := testConfig(2)
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	_, _ = Do(context.Background(), cfg, func() (string, error) {
		return "", errors.New("upstream 502")
	})

	out := buf.String()
	assert.Contains(t, out, "attempt failed")
	assert.Contains(t, out, "upstream 502")
	assert.Contains(t, out, "retrying after backoff")
	assert.Contains(t, out, "delay_seconds=")
}

func TestWrap(t *testing.T) {
	cfg, sleeper := testConfig(3)
	calls := map[string]int{}

	describe := Wrap(cfg, func(ctx context.Context, path string) (string, error) {
		calls[path]++
		if calls[path] == 1 {
			return "", errors.New("cold start")
		}
		return "desc:" + path, nil
	})

	got, err := describe(context.Background(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, "desc:a.png", got)
	assert.Equal(t, 2, calls["a.png"])
	assert.Len(t, sleeper.delays, 1)

	got, err = describe(context.Background(), "b.png")
	require.NoError(t, err)
	assert.Equal(t, "desc:b.png", got)
	assert.Equal(t, 2, calls["b.png"])
}
