package triangulator

import (
	"testing"

	"go.viam.com/test"
)

func TestDelaunayInit(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {0.5, 1}}
	d := (&Delaunay{}).Init(points)

	test.That(t, d.Mesh(), test.ShouldResemble, []Triangle{{3, 4, 5}})
	test.That(t, d.GetTriangles(), test.ShouldBeEmpty)
	test.That(t, d.points, test.ShouldHaveLength, 6)
	test.That(t, d.points[:3], test.ShouldResemble, points)
}

func TestDelaunayInsert(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {0.5, 1}}
	d := (&Delaunay{}).Init(points).Insert()

	// Six points with a triangular hull: 2*6 - 2 - 3 faces.
	mesh := d.Mesh()
	test.That(t, mesh, test.ShouldHaveLength, 7)
	for _, tri := range mesh {
		test.That(t, tri[0], test.ShouldNotEqual, tri[1])
		test.That(t, tri[1], test.ShouldNotEqual, tri[2])
		test.That(t, tri[0], test.ShouldNotEqual, tri[2])
	}

	triangles := d.GetTriangles()
	test.That(t, sortedTriangles(triangles), test.ShouldResemble, []Triangle{{0, 1, 2}})
	test.That(t, d.Stats(), test.ShouldResemble, Stats{Points: 3, Inserted: 3, Triangles: 1})
}

func TestDelaunayEmptyCircleAfterEachStep(t *testing.T) {
	points := randomPoints(40, 10, 11)
	d := (&Delaunay{}).Init(points)

	for i := range points {
		d.insertPoint(i)
		for _, h := range d.live {
			f := d.faces[h]
			if f.degenerate {
				continue
			}
			for j := 0; j <= i; j++ {
				if f.tri.Contains(j) {
					continue
				}
				test.That(t, InCircumcircle(d.points[j], f.circle), test.ShouldBeFalse)
			}
		}
	}
}

func TestDelaunayHandlesAreStable(t *testing.T) {
	points := randomPoints(20, 10, 5)
	d := (&Delaunay{}).Init(points)

	d.insertPoint(0)
	before := make(map[handle]Triangle, len(d.faces))
	for h, f := range d.faces {
		before[handle(h)] = f.tri
	}

	for i := 1; i < len(points); i++ {
		d.insertPoint(i)
	}
	// The arena only grows: earlier faces keep their handle and value.
	for h, tri := range before {
		test.That(t, d.faces[h].tri, test.ShouldResemble, tri)
	}
	test.That(t, len(d.faces), test.ShouldBeGreaterThan, len(before))
}

func TestBoundaryEdges(t *testing.T) {
	edges := boundaryEdges([]Triangle{{0, 1, 2}, {1, 3, 2}})
	test.That(t, edges, test.ShouldResemble, []edge{{0, 1}, {0, 2}, {1, 3}, {2, 3}})

	single := boundaryEdges([]Triangle{{5, 2, 7}})
	test.That(t, single, test.ShouldResemble, []edge{{2, 5}, {2, 7}, {5, 7}})

	// Three triangles around a common vertex leave the outer ring.
	fan := boundaryEdges([]Triangle{{0, 1, 9}, {1, 2, 9}, {2, 0, 9}})
	test.That(t, fan, test.ShouldResemble, []edge{{0, 1}, {1, 2}, {0, 2}})
}

func TestSuperTriangle(t *testing.T) {
	for _, tc := range []struct {
		name   string
		points []Point
	}{
		{"unit square", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
		{"wide", []Point{{-500, 3}, {700, 4}, {0, 5}}},
		{"vertical line", []Point{{5, 0}, {5, 1}, {5, 2}}},
		{"single point", []Point{{2, 2}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			super := superTriangle(tc.points)
			c, ok := Circumcircle(super[0], super[1], super[2])
			test.That(t, ok, test.ShouldBeTrue)

			for _, p := range tc.points {
				// Same side of every edge as the opposite vertex.
				for k := 0; k < 3; k++ {
					a, b, opp := super[k], super[(k+1)%3], super[(k+2)%3]
					side := b.sub(a).cross(p.sub(a))
					ref := b.sub(a).cross(opp.sub(a))
					test.That(t, side*ref, test.ShouldBeGreaterThan, 0)
				}
				test.That(t, InCircumcircle(p, c), test.ShouldBeTrue)
			}
		})
	}
}
