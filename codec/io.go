package codec

import (
	"io"

	"github.com/pkg/errors"

	"github.com/esimov/triangulator"
)

// ReadPointSet reads a whole binary point set from r.
func ReadPointSet(r io.Reader) ([]triangulator.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading point set")
	}
	return DecodePointSet(data)
}

// WritePointSet writes the binary encoding of points to w.
func WritePointSet(w io.Writer, points []triangulator.Point) error {
	_, err := w.Write(EncodePointSet(points))
	return err
}

// WriteTriangles writes the binary encoding of a triangulation to w.
func WriteTriangles(w io.Writer, points []triangulator.Point, triangles []triangulator.Triangle) error {
	data, err := EncodeTriangles(points, triangles)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
