package geom

import "golang.org/x/exp/constraints"

// Clamp restricts v to the range [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
