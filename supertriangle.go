package triangulator

import "github.com/golang/geo/r2"

// superScale is the factor by which the enclosing triangle exceeds the bounding box.
const superScale = 20.0

// superTriangle returns three points forming a triangle large enough to enclose
// every point of the set, well away from its circumcircle boundary.
func superTriangle(points []Point) [3]Point {
	pts := make([]r2.Point, len(points))
	for i, p := range points {
		pts[i] = r2.Point(p)
	}
	bbox := r2.RectFromPoints(pts...)
	size := bbox.Size()
	mid := bbox.Center()

	// The floor guards against a zero-sized box when every point shares a coordinate.
	delta := Max(size.X, size.Y, 1.0)

	return [3]Point{
		{mid.X - superScale*delta, mid.Y - delta},
		{mid.X, mid.Y + superScale*delta},
		{mid.X + superScale*delta, mid.Y - delta},
	}
}
