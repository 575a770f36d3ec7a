package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfString(t *testing.T) {
	conf := Conf{"name": "value", "empty": "", "number": 3, "nil": nil}

	v, err := conf.String("name")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	for _, key := range []string{"missing", "empty", "nil"} {
		_, err := conf.String(key)
		assert.ErrorIs(t, err, dreamfuse.ErrMissingParam, key)
		assert.ErrorContains(t, err, key)
	}

	_, err = conf.String("number")
	assert.ErrorContains(t, err, "expected string")
}

func TestRegistry(t *testing.T) {
	echo := HandlerFunc(func(ctx context.Context, conf Conf) (Result, error) {
		return Result{"echo": conf["in"]}, nil
	})

	t.Run("handles registered names", func(t *testing.T) {
		r := NewRegistry(nil)
		r.MustRegister("echo", echo)

		result, err := r.Handle(context.Background(), "echo", Conf{"in": "hi"})
		require.NoError(t, err)
		assert.Equal(t, "hi", result["echo"])
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		r := NewRegistry(nil)
		require.NoError(t, r.Register("echo", echo))

		var dup *ErrHandlerAlreadyRegistered
		assert.ErrorAs(t, r.Register("echo", echo), &dup)
		assert.Panics(t, func() { r.MustRegister("echo", echo) })
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := NewRegistry(nil).Handle(context.Background(), "nope", nil)
		var notFound *ErrHandlerNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "nope", notFound.Name)
	})

	t.Run("names are sorted", func(t *testing.T) {
		r := NewRegistry(nil)
		r.MustRegister("winter", echo)
		r.MustRegister("dream", echo)
		r.MustRegister("fusion", echo)
		assert.Equal(t, []string{"dream", "fusion", "winter"}, r.Names())
		assert.Equal(t, 3, r.Len())
	})
}

func TestRegistryRecordsMetrics(t *testing.T) {
	metrics := NewMetrics("test", prometheus.NewRegistry())
	r := NewRegistry(metrics)
	r.MustRegister("ok", HandlerFunc(func(context.Context, Conf) (Result, error) {
		return Result{}, nil
	}))
	r.MustRegister("bad", HandlerFunc(func(context.Context, Conf) (Result, error) {
		return nil, errors.New("boom")
	}))

	r.Handle(context.Background(), "ok", nil)
	r.Handle(context.Background(), "ok", nil)
	r.Handle(context.Background(), "bad", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues("ok", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("bad", "error")))
}

func TestRetryObserverCountsEvents(t *testing.T) {
	metrics := NewMetrics("test", prometheus.NewRegistry())
	env := Env{
		Metrics: metrics,
		Retry: retry.Config{
			MaxAttempts: 3,
			Sleep:       func(context.Context, time.Duration) error { return nil },
		},
	}.withDefaults()

	_, err := retry.Do(context.Background(), env.retryFor("dream", "analyze"), func() (int, error) {
		return 0, errors.New("down")
	})
	require.Error(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.attempts.WithLabelValues("dream", "analyze")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.retries.WithLabelValues("dream", "analyze")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failures.WithLabelValues("dream", "analyze")))
}

func TestRetryForChainsCallerObserver(t *testing.T) {
	var seen []retry.EventType
	env := Env{
		Metrics: NewMetrics("test", prometheus.NewRegistry()),
		Retry: retry.Config{
			OnEvent: func(ev retry.Event) { seen = append(seen, ev.Type) },
		},
	}.withDefaults()

	_, err := retry.Do(context.Background(), env.retryFor("fusion", "save"), func() (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []retry.EventType{retry.EventAttemptStart, retry.EventSuccess}, seen)
}
