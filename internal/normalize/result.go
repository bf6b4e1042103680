package normalize

import "fmt"

// Result carries either a value or the reason it could not be produced. Callers
// decide whether a failure is fatal by how they consume it.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps a failure.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Get returns the value and whether it is usable.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.err == nil
}

// Err returns the failure, if any.
func (r Result[T]) Err() error {
	return r.err
}

// OrZero returns the value, or the zero value on failure.
func (r Result[T]) OrZero() T {
	if r.err != nil {
		var zero T
		return zero
	}
	return r.value
}

// Try runs fn and turns both returned errors and panics into a failed Result.
func Try[T any](fn func() (T, error)) (res Result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Fail[T](fmt.Errorf("recovered: %v", rec))
		}
	}()
	v, err := fn()
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}
