// Package result is a fixture mirroring the API shape of the real package.
package result

type Result[T, E any] struct {
	value  T
	err    E
	failed bool
}

func Ok[T, E any](v T) Result[T, E] { return Result[T, E]{value: v} }

func Err[T, E any](e E) Result[T, E] { return Result[T, E]{err: e, failed: true} }

func (r Result[T, E]) IsOk() bool { return !r.failed }

func (r Result[T, E]) IsErr() bool { return r.failed }

func (r Result[T, E]) Unwrap() T { return r.value }

func (r Result[T, E]) UnwrapErr() E { return r.err }

func (r Result[T, E]) Expect(string) T { return r.value }
