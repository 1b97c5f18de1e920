package xslices

import (
	"iter"
)

// Split splits s into at most n contiguous parts whose lengths differ by at
// most one, longer parts first. Empty parts are not yielded.
func Split[Slice ~[]E, E any](s Slice, n int) iter.Seq[Slice] {
	if n < 1 {
		panic("cannot be less than 1")
	}

	return func(yield func(Slice) bool) {
		size, rest := len(s)/n, len(s)%n

		start := 0

		for i := range n {
			end := start + size
			if i < rest {
				end++
			}

			if end == start {
				return
			}

			if !yield(s[start:end:end]) {
				return
			}

			start = end
		}
	}
}
