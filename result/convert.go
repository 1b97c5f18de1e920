package result

import "github.com/WinPooh32/optres/option"

// OkOr converts o into a Result: Some(v) becomes Ok(v) and None becomes
// Err(err).
func OkOr[T, E any](o option.Option[T], err E) Result[T, E] {
	v, ok := o.Get()
	if !ok {
		return Err[T](err)
	}

	return Ok[T, E](v)
}

// OkOrElse is like OkOr but computes the error with fn only when o is None.
func OkOrElse[T, E any](o option.Option[T], fn func() E) Result[T, E] {
	v, ok := o.Get()
	if !ok {
		return Err[T](fn())
	}

	return Ok[T, E](v)
}
