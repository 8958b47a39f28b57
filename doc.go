/*
Package triangulator computes the Delaunay triangulation of a set of 2-D points
using the incremental Bowyer-Watson algorithm.

The result is a list of index triples into the input slice such that no input
point lies strictly inside the circumscribed circle of any triangle.

Example:

	package main

	import (
		"fmt"

		"github.com/esimov/triangulator"
	)

	func main() {
		points := []triangulator.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

		triangles, err := triangulator.Triangulate(points)
		if err != nil {
			fmt.Printf("Error on triangulation process: %s", err.Error())
			return
		}
		fmt.Println(triangles)
	}

The lower level builder can be used to inspect the mesh before the triangles
touching the enclosing super triangle are removed:

	d := &triangulator.Delaunay{}
	mesh := d.Init(points).Insert().Mesh()

The binary wire formats live in the codec package, the HTTP service in server,
the point set store client in client and raster output in render. Package
imagepoints turns the edges of a picture into a point set. The triangulator
command wires them together.
*/
package triangulator
