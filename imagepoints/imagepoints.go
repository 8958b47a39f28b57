// Package imagepoints extracts point sets from the edges of an image, so that
// triangulating them gives a low-poly rendition of the picture.
package imagepoints

import (
	"image"
	// Decoders for Decode.
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"

	"github.com/esimov/triangulator"
)

// Options controls edge point extraction.
type Options struct {
	// BlurRadius smooths the image before edge detection. Zero disables it.
	BlurRadius int
	// SobelThreshold is the minimum gradient magnitude of an edge pixel.
	SobelThreshold float64
	// PointsThreshold is the minimum mean edge strength around a pixel for
	// it to become a candidate point.
	PointsThreshold uint8
	// MaxPoints caps the number of points returned.
	MaxPoints int
	// PointRate is the fraction of candidates kept before MaxPoints applies.
	PointRate float64
	Seed      int64
}

// DefaultOptions returns the extraction settings used by the command line tool.
func DefaultOptions() Options {
	return Options{
		BlurRadius:      2,
		SobelThreshold:  10,
		PointsThreshold: 20,
		MaxPoints:       2500,
		PointRate:       0.875,
		Seed:            1,
	}
}

// Decode reads an image in any of the registered formats.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	return img, nil
}

// Extract returns points along the edges of img. The image corners are always
// included so that the triangulation covers the whole picture. Coordinates
// are in pixels with the origin at the bottom left corner.
func Extract(img image.Image, opts Options) ([]triangulator.Point, error) {
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 2 {
		return nil, errors.Errorf("image too small: %dx%d", b.Dx(), b.Dy())
	}
	if opts.MaxPoints < 0 || opts.PointRate < 0 || opts.PointRate > 1 {
		return nil, errors.Errorf("invalid extraction options %+v", opts)
	}

	g := grayscale(img)
	if opts.BlurRadius > 0 {
		g = g.convolve(blurMatrix(opts.BlurRadius))
	}
	edges := g.sobel(opts.SobelThreshold)

	candidates := edges.candidates(opts.PointsThreshold)
	limit := triangulator.Min(int(float64(len(candidates))*opts.PointRate), opts.MaxPoints)

	rnd := rand.New(rand.NewSource(opts.Seed))
	rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	w, h := float64(b.Dx()-1), float64(b.Dy()-1)
	points := []triangulator.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
	for _, c := range candidates[:limit] {
		points = append(points, triangulator.Point{X: float64(c.X), Y: h - float64(c.Y)})
	}
	return points, nil
}

// candidates returns the pixels whose 3x3 neighbourhood has a mean edge
// strength above threshold.
func (g *gray) candidates(threshold uint8) []image.Point {
	var out []image.Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sum, total int
			for row := -1; row <= 1; row++ {
				sy := y + row
				if sy < 0 || sy >= g.height {
					continue
				}
				for col := -1; col <= 1; col++ {
					sx := x + col
					if sx < 0 || sx >= g.width {
						continue
					}
					sum += int(g.pix[sy*g.width+sx])
					total++
				}
			}
			if sum/total > int(threshold) {
				out = append(out, image.Point{X: x, Y: y})
			}
		}
	}
	return out
}
