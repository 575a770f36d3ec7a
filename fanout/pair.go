// Package fanout runs a fixed pair of independent tasks concurrently.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Pair runs taskA(resA) and taskB(resB) concurrently and returns both
// results in argument order, regardless of which finishes first.
//
// When a task fails, the context passed to the other one is cancelled and
// Pair waits for it to return before reporting the first error. No goroutine
// outlives the call.
func Pair[R, A, B any](ctx context.Context, taskA func(context.Context, R) (A, error), resA R, taskB func(context.Context, R) (B, error), resB R) (A, B, error) {
	var a A
	var b B

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverInto(&err, "first")
		a, err = taskA(gctx, resA)
		return err
	})
	g.Go(func() (err error) {
		defer recoverInto(&err, "second")
		b, err = taskB(gctx, resB)
		return err
	})

	if err := g.Wait(); err != nil {
		var zeroA A
		var zeroB B
		return zeroA, zeroB, err
	}
	return a, b, nil
}

// FetchPair is Pair for two tasks producing the same result type.
func FetchPair[R, T any](ctx context.Context, taskA func(context.Context, R) (T, error), resA R, taskB func(context.Context, R) (T, error), resB R) (T, T, error) {
	return Pair(ctx, taskA, resA, taskB, resB)
}

// PanicError reports a task that panicked instead of returning.
type PanicError struct {
	Task  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s task panicked: %v", e.Task, e.Value)
}

func recoverInto(err *error, task string) {
	if r := recover(); r != nil {
		*err = &PanicError{Task: task, Value: r}
	}
}
