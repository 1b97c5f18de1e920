// Package result provides Result, the outcome of a computation that either
// succeeded with a value (Ok) or failed with an error payload (Err).
//
// The error payload type E is chosen by the caller and is opaque to this
// package. The zero value of [Result] is Ok holding the zero value of T.
package result

import (
	"fmt"

	"github.com/WinPooh32/optres/option"
)

// Result holds either a success value of type T or a failure value of type E.
type Result[T, E any] struct {
	value  T
	err    E
	failed bool
}

// Ok returns a successful Result holding v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{value: v}
}

// Err returns a failed Result holding e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e, failed: true}
}

// From converts a conventional (value, error) pair into a Result.
// A nil err produces Ok(v).
func From[T any](v T, err error) Result[T, error] {
	if err != nil {
		return Err[T](err)
	}

	return Ok[T, error](v)
}

// IsOk reports whether r holds a success value.
func (r Result[T, E]) IsOk() bool {
	return !r.failed
}

// IsErr reports whether r holds an error.
func (r Result[T, E]) IsErr() bool {
	return r.failed
}

// Get returns the success value, the error and whether r is Ok.
// Only the part selected by the boolean is meaningful.
func (r Result[T, E]) Get() (T, E, bool) {
	return r.value, r.err, !r.failed
}

// Unwrap returns the success value.
//
// Calling Unwrap on Err is a programming error and panics with a message
// that includes the held error.
func (r Result[T, E]) Unwrap() T {
	if r.failed {
		panic(fmt.Sprintf("result: Unwrap called on an Err value: %v", r.err))
	}

	return r.value
}

// UnwrapErr returns the error payload. It panics if r is Ok.
func (r Result[T, E]) UnwrapErr() E {
	if !r.failed {
		panic(fmt.Sprintf("result: UnwrapErr called on an Ok value: %v", r.value))
	}

	return r.err
}

// Expect returns the success value or panics with "msg: err" if r is Err.
func (r Result[T, E]) Expect(msg string) T {
	if r.failed {
		panic(fmt.Sprintf("%s: %v", msg, r.err))
	}

	return r.value
}

// UnwrapOr returns the success value or def.
func (r Result[T, E]) UnwrapOr(def T) T {
	if r.failed {
		return def
	}

	return r.value
}

// UnwrapOrElse returns the success value or recovers one from the error
// with fn. fn is called only for Err.
func (r Result[T, E]) UnwrapOrElse(fn func(E) T) T {
	if r.failed {
		return fn(r.err)
	}

	return r.value
}

// OrElse returns r if it is Ok. Otherwise it returns fn applied to the
// held error, which may recover or translate the failure.
func (r Result[T, E]) OrElse(fn func(E) Result[T, E]) Result[T, E] {
	if r.failed {
		return fn(r.err)
	}

	return r
}

// Inspect calls fn with the success value, if any, and returns r unchanged.
func (r Result[T, E]) Inspect(fn func(T)) Result[T, E] {
	if !r.failed {
		fn(r.value)
	}

	return r
}

// InspectErr calls fn with the error, if any, and returns r unchanged.
func (r Result[T, E]) InspectErr(fn func(E)) Result[T, E] {
	if r.failed {
		fn(r.err)
	}

	return r
}

func (r Result[T, E]) String() string {
	if r.failed {
		return fmt.Sprintf("Err(%v)", r.err)
	}

	return fmt.Sprintf("Ok(%v)", r.value)
}

// Map transforms the success value with fn. An Err passes through with the
// same error payload and fn is not called.
func Map[T, U, E any](r Result[T, E], fn func(T) U) Result[U, E] {
	if r.failed {
		return Err[U](r.err)
	}

	return Ok[U, E](fn(r.value))
}

// MapErr transforms the error payload with fn. An Ok passes through and fn
// is not called.
func MapErr[T, E, F any](r Result[T, E], fn func(E) F) Result[T, F] {
	if r.failed {
		return Err[T](fn(r.err))
	}

	return Ok[T, F](r.value)
}

// AndThen chains a computation that depends on the success value. It
// short-circuits on Err without calling fn.
func AndThen[T, U, E any](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if r.failed {
		return Err[U](r.err)
	}

	return fn(r.value)
}

// Match calls onOk or onErr depending on the variant of r and returns the
// called branch's value.
func Match[T, E, U any](r Result[T, E], onOk func(T) U, onErr func(E) U) U {
	if r.failed {
		return onErr(r.err)
	}

	return onOk(r.value)
}

// Ok converts r into an Option of its success value, discarding any error.
// A nil interface success value comes back as None.
func (r Result[T, E]) Ok() option.Option[T] {
	if r.failed {
		return option.None[T]()
	}

	return option.Some(r.value)
}

// Err converts r into an Option of its error, discarding any success value.
// A nil interface error comes back as None even though r.IsErr() holds.
func (r Result[T, E]) Err() option.Option[E] {
	if !r.failed {
		return option.None[E]()
	}

	return option.Some(r.err)
}
