package fanout

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echo(prefix string, delay time.Duration) func(context.Context, string) (string, error) {
	return func(ctx context.Context, res string) (string, error) {
		select {
		case <-time.After(delay):
			return prefix + res, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func TestFetchPairReturnsInputOrder(t *testing.T) {
	t.Run("first finishes last", func(t *testing.T) {
		a, b, err := FetchPair(context.Background(),
			echo("desc-", 40*time.Millisecond), "A",
			echo("desc-", time.Millisecond), "B",
		)
		require.NoError(t, err)
		assert.Equal(t, "desc-A", a)
		assert.Equal(t, "desc-B", b)
	})

	t.Run("second finishes last", func(t *testing.T) {
		a, b, err := FetchPair(context.Background(),
			echo("desc-", time.Millisecond), "A",
			echo("desc-", 40*time.Millisecond), "B",
		)
		require.NoError(t, err)
		assert.Equal(t, "desc-A", a)
		assert.Equal(t, "desc-B", b)
	})
}

func TestFetchPairRunsConcurrently(t *testing.T) {
	var running, peak atomic.Int32
	task := func(ctx context.Context, res string) (string, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		running.Add(-1)
		return res, nil
	}

	_, _, err := FetchPair(context.Background(), task, "resA", task, "resB")
	require.NoError(t, err)
	assert.Equal(t, int32(2), peak.Load())
}

func TestFetchPairPropagatesFailure(t *testing.T) {
	boom := errors.New("vision api down")
	failing := func(ctx context.Context, res string) (string, error) {
		return "", boom
	}

	t.Run("first position", func(t *testing.T) {
		_, _, err := FetchPair(context.Background(), failing, "A", echo("ok-", time.Millisecond), "B")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("second position", func(t *testing.T) {
		_, _, err := FetchPair(context.Background(), echo("ok-", time.Millisecond), "A", failing, "B")
		assert.ErrorIs(t, err, boom)
	})
}

func TestFetchPairCancelsSibling(t *testing.T) {
	boom := errors.New("boom")
	siblingDone := make(chan error, 1)

	slow := func(ctx context.Context, res string) (string, error) {
		select {
		case <-ctx.Done():
			siblingDone <- ctx.Err()
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			siblingDone <- nil
			return res, nil
		}
	}
	failing := func(ctx context.Context, res string) (string, error) {
		return "", boom
	}

	start := time.Now()
	_, _, err := FetchPair(context.Background(), slow, "A", failing, "B")
	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), 2*time.Second)

	select {
	case sibErr := <-siblingDone:
		assert.ErrorIs(t, sibErr, context.Canceled)
	default:
		t.Fatal("sibling task had not returned when FetchPair returned")
	}
}

func TestPairMixedTypes(t *testing.T) {
	length := func(ctx context.Context, s string) (int, error) { return len(s), nil }
	upper := func(ctx context.Context, s string) (string, error) { return s + "!", nil }

	n, s, err := Pair(context.Background(), length, "four", upper, "hey")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "hey!", s)
}

func TestPairRecoversPanic(t *testing.T) {
	panicking := func(ctx context.Context, s string) (string, error) { panic("nil image") }

	_, _, err := FetchPair(context.Background(), echo("", time.Millisecond), "A", panicking, "B")
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "second", pe.Task)
	assert.Equal(t, "nil image", pe.Value)
}
