package agent

// Result holds either a parsed agent response or the error that prevented
// one. The invoker boundary guarantees callers never see the error side
// directly: every call site finishes with UnwrapOr and a deterministic
// default, which is what makes agent calls total.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successfully parsed value
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps an error (provider failure or unparseable response)
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// UnwrapOr returns the value, or def if the call failed
func (r Result[T]) UnwrapOr(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// Err exposes the failure cause, if any, for logging
func (r Result[T]) Err() error {
	return r.err
}

// IsOk reports whether the result holds a value
func (r Result[T]) IsOk() bool {
	return r.err == nil
}
