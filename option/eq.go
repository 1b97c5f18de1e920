package option

// Eq reports whether o is Some and holds a value equal to v.
func Eq[T comparable](o Option[T], v T) bool {
	return o.some && o.value == v
}

// EqSome reports whether both a and b are Some and hold equal values.
func EqSome[T comparable](a, b Option[T]) bool {
	return a.some && b.some && a.value == b.value
}

// EqNone reports whether both a and b are None.
func EqNone[T any](a, b Option[T]) bool {
	return !a.some && !b.some
}
