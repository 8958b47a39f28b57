package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/esimov/triangulator"
)

// ParseText reads points written one per line as "x y". Fields may be
// separated by spaces, tabs or a comma. Blank lines and lines starting with
// '#' are ignored.
func ParseText(r io.Reader) ([]triangulator.Point, error) {
	var points []triangulator.Point

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, errors.Wrapf(ErrDecode, "line %d: expected 2 coordinates, got %d", line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrDecode, "line %d: %v", line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrDecode, "line %d: %v", line, err)
		}
		points = append(points, triangulator.Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	return points, nil
}

// WriteText writes points in the format read by ParseText.
func WriteText(w io.Writer, points []triangulator.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%g %g\n", p.X, p.Y); err != nil {
			return err
		}
	}
	return bw.Flush()
}
