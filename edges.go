package triangulator

// edge is an unordered pair of point indices, stored with a < b.
type edge struct {
	a, b int
}

func newEdge(p0, p1 int) edge {
	if p0 > p1 {
		p0, p1 = p1, p0
	}
	return edge{p0, p1}
}

// boundaryEdges returns the edges of the cavity formed by the given triangles.
// An edge belongs to the boundary iff it occurs in exactly one of them; edges
// shared by two triangles lie inside the cavity and are discarded.
// Edges are returned in the order they were first seen.
func boundaryEdges(triangles []Triangle) []edge {
	var (
		seen  = make(map[edge]int, len(triangles)*3)
		order = make([]edge, 0, len(triangles)*3)
	)
	for _, t := range triangles {
		for _, e := range t.edges() {
			if seen[e] == 0 {
				order = append(order, e)
			}
			seen[e]++
		}
	}

	polygon := order[:0]
	for _, e := range order {
		if seen[e] == 1 {
			polygon = append(polygon, e)
		}
	}
	return polygon
}
