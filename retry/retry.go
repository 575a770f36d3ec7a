package retry

import "context"

// Do executes fn until it succeeds or cfg.MaxAttempts attempts have failed.
// Between attempts it sleeps for cfg.Delay(attempt). The last error is
// returned unchanged. A context cancelled during a backoff wait ends the
// loop with ctx.Err().
//
// fn may run more than once, so it must tolerate repetition.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger

	var zero T
	var lastErr error
	attempts := 0

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		emit(cfg.OnEvent, Event{
			Type:        EventAttemptStart,
			Attempt:     attempt + 1,
			MaxAttempts: cfg.MaxAttempts,
		})

		attempts++
		result, err := fn()
		if err == nil {
			emit(cfg.OnEvent, Event{
				Type:        EventSuccess,
				Attempt:     attempt + 1,
				MaxAttempts: cfg.MaxAttempts,
			})
			return result, nil
		}

		lastErr = err
		log.Warn("attempt failed",
			"attempt", attempt+1,
			"max_attempts", cfg.MaxAttempts,
			"error", err,
		)
		emit(cfg.OnEvent, Event{
			Type:        EventAttemptFailed,
			Attempt:     attempt + 1,
			MaxAttempts: cfg.MaxAttempts,
			Error:       err,
		})

		if cfg.ShouldRetry != nil && !cfg.ShouldRetry(err) {
			break
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)
			log.Info("retrying after backoff",
				"attempt", attempt+1,
				"delay_seconds", delay.Seconds(),
			)
			emit(cfg.OnEvent, Event{
				Type:        EventRetrying,
				Attempt:     attempt + 1,
				MaxAttempts: cfg.MaxAttempts,
				Delay:       delay,
			})

			if err := cfg.Sleep(ctx, delay); err != nil {
				return zero, err
			}
		}
	}

	emit(cfg.OnEvent, Event{
		Type:        EventExhausted,
		Attempt:     attempts,
		MaxAttempts: cfg.MaxAttempts,
		Error:       lastErr,
	})

	return zero, lastErr
}

// Wrap returns fn with the retry policy applied to every call.
func Wrap[A, T any](cfg Config, fn func(context.Context, A) (T, error)) func(context.Context, A) (T, error) {
	return func(ctx context.Context, arg A) (T, error) {
		return Do(ctx, cfg, func() (T, error) {
			return fn(ctx, arg)
		})
	}
}
