package utils

import (
	"golang.org/x/exp/slices"
)

// FirstNonEmpty returns the first of the given candidates that isn't contained in the empty set.
//
// When no empty values are provided, the zero value of T is considered empty. Returns the zero value and
// false if every candidate is empty.
func FirstNonEmpty[T comparable](candidates []T, empty ...T) (T, bool) {
	var zero T
	if len(empty) == 0 {
		empty = []T{zero}
	}

	for _, candidate := range candidates {
		if !slices.Contains(empty, candidate) {
			return candidate, true
		}
	}

	return zero, false
}
