// Package codec implements the little-endian binary encodings of point sets
// and triangulations.
//
// A point set is a uint32 count followed by count (float32 x, float32 y)
// pairs. A triangulation is a point set immediately followed by a uint32
// triangle count and that many (uint32, uint32, uint32) index triples.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/esimov/triangulator"
)

const (
	countSize    = 4
	pointSize    = 8
	triangleSize = 12
)

// ErrDecode is returned when a binary payload is truncated or inconsistent.
var ErrDecode = errors.New("malformed payload")

// EncodePointSet encodes points. Coordinates are narrowed to float32.
func EncodePointSet(points []triangulator.Point) []byte {
	buf := make([]byte, 0, countSize+len(points)*pointSize)
	return appendPointSet(buf, points)
}

func appendPointSet(buf []byte, points []triangulator.Point) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(points)))
	for _, p := range points {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(p.X)))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(p.Y)))
	}
	return buf
}

// DecodePointSet decodes a point set. Trailing bytes after the declared
// points are ignored.
func DecodePointSet(data []byte) ([]triangulator.Point, error) {
	points, _, err := decodePointSet(data)
	return points, err
}

// decodePointSet returns the points and the number of bytes consumed.
func decodePointSet(data []byte) ([]triangulator.Point, int, error) {
	if len(data) < countSize {
		return nil, 0, errors.Wrapf(ErrDecode, "point set header needs %d bytes, got %d", countSize, len(data))
	}
	count := binary.LittleEndian.Uint32(data)
	end := uint64(countSize) + uint64(count)*pointSize
	if uint64(len(data)) < end {
		return nil, 0, errors.Wrapf(ErrDecode, "point set declares %d points (%d bytes), got %d bytes", count, end, len(data))
	}

	points := make([]triangulator.Point, count)
	offset := countSize
	for i := range points {
		x := math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(data[offset+4:]))
		points[i] = triangulator.Point{X: float64(x), Y: float64(y)}
		offset += pointSize
	}
	return points, offset, nil
}

// EncodeTriangles encodes points followed by triangles. It fails when a
// triangle references an index outside of points.
func EncodeTriangles(points []triangulator.Point, triangles []triangulator.Triangle) ([]byte, error) {
	for i, t := range triangles {
		for _, idx := range t {
			if err := checkIndex(idx, len(points)); err != nil {
				return nil, errors.Wrapf(triangulator.ErrInvalidInput, "triangle %d: %v", i, err)
			}
		}
	}

	buf := make([]byte, 0, countSize+len(points)*pointSize+countSize+len(triangles)*triangleSize)
	buf = appendPointSet(buf, points)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(triangles)))
	for _, t := range triangles {
		for _, idx := range t {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(idx))
		}
	}
	return buf, nil
}

// DecodeTriangles decodes a triangulation payload.
func DecodeTriangles(data []byte) ([]triangulator.Point, []triangulator.Triangle, error) {
	points, offset, err := decodePointSet(data)
	if err != nil {
		return nil, nil, err
	}

	if len(data) < offset+countSize {
		return nil, nil, errors.Wrap(ErrDecode, "triangle count is missing")
	}
	count := binary.LittleEndian.Uint32(data[offset:])
	offset += countSize

	end := uint64(offset) + uint64(count)*triangleSize
	if uint64(len(data)) < end {
		return nil, nil, errors.Wrapf(ErrDecode, "%d triangles need %d bytes, got %d", count, end, len(data))
	}

	triangles := make([]triangulator.Triangle, count)
	for i := range triangles {
		for k := 0; k < 3; k++ {
			idx := binary.LittleEndian.Uint32(data[offset:])
			if err := checkIndex(idx, len(points)); err != nil {
				return nil, nil, errors.Wrapf(ErrDecode, "triangle %d: %v", i, err)
			}
			triangles[i][k] = int(idx)
			offset += countSize
		}
	}
	return points, triangles, nil
}

// checkIndex reports whether idx addresses one of count points.
func checkIndex[T constraints.Integer](idx T, count int) error {
	if idx < 0 || uint64(idx) >= uint64(count) {
		return errors.Errorf("index %d out of range [0, %d)", idx, count)
	}
	return nil
}
