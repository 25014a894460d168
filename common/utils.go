package common

import "cmp"

// Coalesce returns the first argument that is not the zero value of T.
// With no such argument it returns the zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value
//   - lo: the lower bound
//   - hi: the upper bound, expected to be >= lo
//
// Returns:
//   - T: v bounded to the range
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}
