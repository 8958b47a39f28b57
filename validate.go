package triangulator

import (
	"math"

	"github.com/samber/lo"
)

// ValidatePoints checks that points can be triangulated: at least three
// points, at least three distinct points and not all of them collinear.
// Distinctness is exact coordinate equality. The input is not modified.
func ValidatePoints(points []Point) error {
	if len(points) < 3 {
		return invalidInputf("at least 3 points are required, got %d", len(points))
	}
	for i, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return invalidInputf("point %d has a non-finite coordinate (%v, %v)", i, p.X, p.Y)
		}
	}
	unique := lo.Uniq(points)
	if len(unique) < 3 {
		return invalidInputf("at least 3 distinct points are required, got %d", len(unique))
	}
	if AreCollinear(unique) {
		return invalidInputf("all %d distinct points are collinear", len(unique))
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
