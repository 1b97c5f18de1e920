package testvariant

import "github.com/WinPooh32/optres/option"

func first(values []int) option.Option[int] {
	if len(values) == 0 {
		return option.None[int]()
	}

	return option.Some(values[0])
}

func firstOrZero(values []int) int {
	return first(values).Unwrap() // want `Unwrap called on an untracked expression`
}
