package triangulator

import "github.com/pkg/errors"

// ErrInvalidInput is returned when a point set cannot be triangulated: too few
// points, too few distinct points, all points collinear, or triangle indices
// outside of the point sequence.
var ErrInvalidInput = errors.New("invalid input")

func invalidInputf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}
