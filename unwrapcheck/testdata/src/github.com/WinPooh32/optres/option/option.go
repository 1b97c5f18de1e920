// Package option is a fixture mirroring the API shape of the real package.
package option

type Option[T any] struct {
	value T
	some  bool
}

func Some[T any](v T) Option[T] { return Option[T]{value: v, some: true} }

func None[T any]() Option[T] { return Option[T]{} }

func (o Option[T]) IsSome() bool { return o.some }

func (o Option[T]) IsNone() bool { return !o.some }

func (o Option[T]) Unwrap() T { return o.value }

func (o Option[T]) Expect(string) T { return o.value }
