package triangulator

import "golang.org/x/exp/constraints"

// Min returns the smallest of the given values. Rendering uses it to fit a
// drawing into the image and imagepoints to cap the sampled points.
func Min[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values[1:] {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest of the given values. It sizes the super triangle.
func Max[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values[1:] {
		if v > acc {
			acc = v
		}
	}
	return acc
}
