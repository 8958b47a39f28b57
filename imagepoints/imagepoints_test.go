package imagepoints

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"go.viam.com/test"

	"github.com/esimov/triangulator"
)

// squareImage returns a 64x64 white image with a black square spanning
// pixels 16 to 47 on both axes.
func squareImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(16, 16, 48, 48), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img
}

func TestExtract(t *testing.T) {
	points, err := Extract(squareImage(), DefaultOptions())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(points), test.ShouldBeGreaterThan, 4)
	test.That(t, points[:4], test.ShouldResemble, []triangulator.Point{{X: 0, Y: 0}, {X: 63, Y: 0}, {X: 63, Y: 63}, {X: 0, Y: 63}})

	for _, p := range points[4:] {
		x, y := p.X, 63-p.Y
		far := x < 10 || x > 54 || y < 10 || y > 54
		deep := x > 22 && x < 42 && y > 22 && y < 42
		test.That(t, far || deep, test.ShouldBeFalse)
	}

	triangles, err := triangulator.Triangulate(points)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, triangles, test.ShouldNotBeEmpty)
}

func TestExtractDeterministic(t *testing.T) {
	opts := DefaultOptions()
	first, err := Extract(squareImage(), opts)
	test.That(t, err, test.ShouldBeNil)
	second, err := Extract(squareImage(), opts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second, test.ShouldResemble, first)
}

func TestExtractLimits(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxPoints = 10
	points, err := Extract(squareImage(), opts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, points, test.ShouldHaveLength, 4+10)

	opts = DefaultOptions()
	opts.PointRate = 0
	points, err = Extract(squareImage(), opts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, points, test.ShouldHaveLength, 4)
}

func TestExtractUniform(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 32, 16))
	points, err := Extract(img, DefaultOptions())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, points, test.ShouldResemble, []triangulator.Point{{X: 0, Y: 0}, {X: 31, Y: 0}, {X: 31, Y: 15}, {X: 0, Y: 15}})
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract(image.NewGray(image.Rect(0, 0, 1, 10)), DefaultOptions())
	test.That(t, err, test.ShouldNotBeNil)

	opts := DefaultOptions()
	opts.PointRate = 2
	_, err = Extract(squareImage(), opts)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	test.That(t, png.Encode(&buf, squareImage()), test.ShouldBeNil)
	img, err := Decode(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 64, 64))

	_, err = Decode(bytes.NewReader([]byte("not an image")))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSobel(t *testing.T) {
	g := grayscale(squareImage())
	test.That(t, g.pix[0], test.ShouldEqual, 255)
	test.That(t, g.pix[20*64+20], test.ShouldEqual, 0)

	edges := g.sobel(10)
	test.That(t, edges.pix[5*64+5], test.ShouldEqual, 0)
	test.That(t, edges.pix[32*64+32], test.ShouldEqual, 0)
	test.That(t, edges.pix[32*64+16], test.ShouldEqual, 255)
}
