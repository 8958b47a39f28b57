package triangulator

import "math"

// epsilon is the tolerance below which a determinant or cross product is treated as zero.
const epsilon = 1e-10

// Circle is the circumscribed circle of a triangle.
type Circle struct {
	Center   Point
	RadiusSq float64
}

// Circumcircle returns the circle passing through p0, p1 and p2.
// The second return value is false when the points are collinear,
// in which case no circle exists.
func Circumcircle(p0, p1, p2 Point) (Circle, bool) {
	a := p1.sub(p0)
	b := p2.sub(p0)

	d := 2 * a.cross(b)
	if math.Abs(d) < epsilon {
		return Circle{}, false
	}
	m := a.X*a.X + a.Y*a.Y
	u := b.X*b.X + b.Y*b.Y

	cx := (b.Y*m - a.Y*u) / d
	cy := (a.X*u - b.X*m) / d

	return Circle{
		Center:   Point{p0.X + cx, p0.Y + cy},
		RadiusSq: cx*cx + cy*cy,
	}, true
}

// InCircumcircle reports whether p lies strictly inside c.
// A point exactly on the circle is considered outside.
func InCircumcircle(p Point, c Circle) bool {
	return p.squaredDistance(c.Center) < c.RadiusSq
}

// AreCollinear reports whether the points cannot support any triangle.
// Every point is tested against the line through the first two points only.
func AreCollinear(points []Point) bool {
	if len(points) < 3 {
		return true
	}
	p0, p1 := points[0], points[1]
	dir := p1.sub(p0)
	for _, p := range points[2:] {
		if math.Abs(dir.cross(p.sub(p0))) >= epsilon {
			return false
		}
	}
	return true
}
