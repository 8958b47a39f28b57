package triangulator

// handle addresses a face in the Delaunay arena. Handles are never reused
// within a triangulation, so a handle identifies one triangle even when two
// faces hold the same indices.
type handle int

// face is a triangle of the working mesh along with its cached circumcircle.
type face struct {
	tri    Triangle
	circle Circle
	// degenerate faces have no circumcircle and are never invalidated.
	degenerate bool
}

// Stats summarises one triangulation run.
type Stats struct {
	Points    int // input points
	Inserted  int // points inserted into the mesh
	Skipped   int // points coincident with an already inserted point
	Triangles int // triangles left after removing the super triangle
}

// Delaunay builds a Delaunay triangulation incrementally (Bowyer-Watson).
//
// The point sequence is the caller's input followed by the three super
// triangle vertices at indices n, n+1 and n+2. The working set is a list of
// handles into an append-only arena of faces; each insertion replaces it with
// a freshly built list rather than mutating it in place.
type Delaunay struct {
	points []Point
	n      int

	faces []face
	live  []handle

	inserted map[Point]struct{}
	stats    Stats
}

// Init prepares the triangulation of points. The slice is copied and never modified.
func (d *Delaunay) Init(points []Point) *Delaunay {
	d.n = len(points)
	d.points = make([]Point, 0, d.n+3)
	d.points = append(d.points, points...)
	super := superTriangle(points)
	d.points = append(d.points, super[:]...)

	d.faces = nil
	d.live = nil
	d.inserted = make(map[Point]struct{}, d.n)
	d.stats = Stats{Points: d.n}

	d.live = append(d.live, d.newFace(Triangle{d.n, d.n + 1, d.n + 2}))
	return d
}

// newFace appends a triangle to the arena and returns its handle.
func (d *Delaunay) newFace(t Triangle) handle {
	f := face{tri: t}
	circle, ok := Circumcircle(d.points[t[0]], d.points[t[1]], d.points[t[2]])
	if ok {
		f.circle = circle
	} else {
		f.degenerate = true
	}
	d.faces = append(d.faces, f)
	return handle(len(d.faces) - 1)
}

// Insert adds every input point to the mesh in the order they were supplied.
func (d *Delaunay) Insert() *Delaunay {
	for i := 0; i < d.n; i++ {
		d.insertPoint(i)
	}
	return d
}

// insertPoint performs one Bowyer-Watson step for the point at index i.
func (d *Delaunay) insertPoint(i int) {
	p := d.points[i]
	if _, ok := d.inserted[p]; ok {
		d.stats.Skipped++
		return
	}
	d.inserted[p] = struct{}{}
	d.stats.Inserted++

	var (
		bad  []Triangle
		keep = make([]handle, 0, len(d.live))
	)
	for _, h := range d.live {
		f := d.faces[h]
		if !f.degenerate && InCircumcircle(p, f.circle) {
			bad = append(bad, f.tri)
		} else {
			keep = append(keep, h)
		}
	}
	if len(bad) == 0 {
		return
	}

	for _, e := range boundaryEdges(bad) {
		keep = append(keep, d.newFace(Triangle{e.a, e.b, i}))
	}
	d.live = keep
}

// Mesh returns every triangle of the working set, including those that
// reference the super triangle.
func (d *Delaunay) Mesh() []Triangle {
	mesh := make([]Triangle, len(d.live))
	for i, h := range d.live {
		mesh[i] = d.faces[h].tri
	}
	return mesh
}

// GetTriangles returns the triangulation over the input indices, with every
// triangle touching the super triangle removed.
func (d *Delaunay) GetTriangles() []Triangle {
	triangles := make([]Triangle, 0, len(d.live))
	for _, h := range d.live {
		t := d.faces[h].tri
		if t[0] < d.n && t[1] < d.n && t[2] < d.n {
			triangles = append(triangles, t)
		}
	}
	d.stats.Triangles = len(triangles)
	return triangles
}

// Stats returns the counters gathered so far.
func (d *Delaunay) Stats() Stats {
	return d.stats
}
