// Package option provides Option, a value that is either Some(v) or None.
//
// The zero value of [Option] is None. Options are immutable values: no
// method changes its receiver, combinators always return a new Option or
// the receiver itself.
package option

import (
	"fmt"
)

const unwrapNonePanic = "option: Unwrap called on a None value"

// Option holds either exactly one value of type T or nothing.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding v.
//
// A nil interface value is treated as absent and produces None, so that
// Some never stores "nothing" inside a Some variant.
func Some[T any](v T) Option[T] {
	if any(v) == nil {
		return Option[T]{}
	}

	return Option[T]{value: v, some: true}
}

// None returns the empty Option.
//
// None is the zero value of Option[T] and is never allocated, so every call
// site shares the same empty state for free. Callers must not rely on None
// identity across different type parameters.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPointer returns None for a nil pointer and Some(*p) otherwise.
func FromPointer[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// FromOk converts the comma-ok idiom into an Option.
func FromOk[T any](v T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}

	return Some(v)
}

// IsSome reports whether o holds a value.
func (o Option[T]) IsSome() bool {
	return o.some
}

// IsNone reports whether o is empty.
func (o Option[T]) IsNone() bool {
	return !o.some
}

// Get returns the held value and true, or the zero value and false for None.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// Unwrap returns the held value.
//
// Calling Unwrap on None is a programming error and panics. Guard the call
// with IsSome, or use Get or Match when the variant is not known.
func (o Option[T]) Unwrap() T {
	if !o.some {
		panic(unwrapNonePanic)
	}

	return o.value
}

// Expect returns the held value or panics with msg if o is None.
//
// The panic is meant to stop the current operation, do not recover from it
// to continue normal work.
func (o Option[T]) Expect(msg string) T {
	if !o.some {
		panic(msg)
	}

	return o.value
}

// UnwrapOr returns the held value or def.
func (o Option[T]) UnwrapOr(def T) T {
	if !o.some {
		return def
	}

	return o.value
}

// UnwrapOrElse returns the held value or the result of fn.
// fn is called only for None.
func (o Option[T]) UnwrapOrElse(fn func() T) T {
	if !o.some {
		return fn()
	}

	return o.value
}

// OrElse returns o if it holds a value, otherwise the Option produced by fn.
func (o Option[T]) OrElse(fn func() Option[T]) Option[T] {
	if !o.some {
		return fn()
	}

	return o
}

// Inspect calls fn with the held value, if any, and returns o unchanged.
func (o Option[T]) Inspect(fn func(T)) Option[T] {
	if o.some {
		fn(o.value)
	}

	return o
}

func (o Option[T]) String() string {
	if !o.some {
		return "None"
	}

	return fmt.Sprintf("Some(%v)", o.value)
}

// Map returns Some(fn(v)) for Some(v) and None otherwise.
// fn is not called for None. A nil interface returned by fn comes back as
// None, like any other value passed to Some.
func Map[T, U any](o Option[T], fn func(T) U) Option[U] {
	if !o.some {
		return None[U]()
	}

	return Some(fn(o.value))
}

// MapOr returns fn(v) for Some(v) and def for None.
func MapOr[T, U any](o Option[T], fn func(T) U, def U) U {
	if !o.some {
		return def
	}

	return fn(o.value)
}

// AndThen returns fn(v) for Some(v) and None otherwise, flattening nested
// optionality.
func AndThen[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if !o.some {
		return None[U]()
	}

	return fn(o.value)
}

// Match calls onSome with the held value or onNone for None and returns
// whatever the called branch returns. Exactly one branch is called.
func Match[T, U any](o Option[T], onSome func(T) U, onNone func() U) U {
	if !o.some {
		return onNone()
	}

	return onSome(o.value)
}
