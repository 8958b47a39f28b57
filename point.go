package triangulator

import (
	"github.com/golang/geo/r2"
)

// Point is a float64 2d point used in Delaunay triangulation.
type Point r2.Point

// Triangle holds three distinct indices into a point sequence.
type Triangle [3]int

func (a Point) sub(b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

func (a Point) cross(b Point) float64 {
	return r2.Point(a).Cross(r2.Point(b))
}

func (a Point) squaredDistance(b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Contains reports whether the triangle references index i.
func (t Triangle) Contains(i int) bool {
	return t[0] == i || t[1] == i || t[2] == i
}

// edges returns the three sides of the triangle.
func (t Triangle) edges() [3]edge {
	return [3]edge{
		newEdge(t[0], t[1]),
		newEdge(t[1], t[2]),
		newEdge(t[2], t[0]),
	}
}
