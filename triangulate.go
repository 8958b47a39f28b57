package triangulator

// Triangulate computes the Delaunay triangulation of points and returns the
// triangles as index triples into points.
//
// Points with identical coordinates keep their own index, but only the first
// occurrence is inserted into the mesh: a duplicate's index appears in no
// triangle and no zero-area triangle is ever built from coincident vertices.
//
// Very thin inputs whose hull is wide compared to the super triangle can lose
// every triangle when the super triangle vertices are removed. The result is
// then an error wrapping ErrInvalidInput rather than an empty list.
func Triangulate(points []Point) ([]Triangle, error) {
	triangles, _, err := TriangulateWithStats(points)
	return triangles, err
}

// TriangulateWithStats is like Triangulate but also reports counters about the run.
func TriangulateWithStats(points []Point) ([]Triangle, Stats, error) {
	if err := ValidatePoints(points); err != nil {
		return nil, Stats{Points: len(points)}, err
	}

	d := &Delaunay{}
	triangles := d.Init(points).Insert().GetTriangles()
	if len(triangles) == 0 {
		return nil, d.Stats(), invalidInputf("%d points produced no triangle", len(points))
	}
	return triangles, d.Stats(), nil
}
