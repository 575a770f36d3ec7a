package dreamfuse

// Stage is the outcome of one step in a multi-step handler. Handlers that
// keep partial results record each step separately instead of collapsing
// the whole run into a single error.
type Stage[T any] struct {
	Value T
	Err   error
}

// Succeeded returns a successful stage.
func Succeeded[T any](v T) Stage[T] {
	return Stage[T]{Value: v}
}

// Failed returns a failed stage.
func Failed[T any](err error) Stage[T] {
	return Stage[T]{Err: err}
}

// StageOf builds a stage from a (value, error) pair.
func StageOf[T any](v T, err error) Stage[T] {
	if err != nil {
		return Stage[T]{Err: err}
	}
	return Stage[T]{Value: v}
}

// OK reports whether the stage succeeded.
func (s Stage[T]) OK() bool {
	return s.Err == nil
}

// Get returns the stage as a (value, error) pair.
func (s Stage[T]) Get() (T, error) {
	return s.Value, s.Err
}
