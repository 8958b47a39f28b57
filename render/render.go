// Package render rasterizes a triangulation into an image.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font/basicfont"

	"github.com/esimov/triangulator"
)

// Wireframe modes.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// Options controls how a triangulation is drawn.
type Options struct {
	Width  int
	Height int
	// Padding is the margin in pixels kept free around the drawing.
	Padding   float64
	LineWidth float64
	Wireframe int
	// ShowPoints marks every input point, used or not.
	ShowPoints  bool
	ShowIndices bool
	Background  color.Color
	Stroke      color.Color
	// Fill is used for every triangle when set. Otherwise each triangle
	// gets its own hue.
	Fill color.Color
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     800,
		Padding:    20,
		LineWidth:  1,
		Wireframe:  WithWireframe,
		Background: color.White,
		Stroke:     color.RGBA{R: 0, G: 0, B: 0, A: 255},
	}
}

// ParseColor parses a hex color such as "#ff8800".
func ParseColor(s string) (color.Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid color %q", s)
	}
	return c.Clamped(), nil
}

// fillColor spreads triangle colors around the hue circle.
func fillColor(i int) color.Color {
	const goldenAngle = 137.508
	return colorful.Hsv(math.Mod(float64(i)*goldenAngle, 360), 0.45, 0.95)
}

// transform maps point coordinates to pixels, flipping the Y axis so the
// origin is at the bottom left.
type transform struct {
	minX, minY       float64
	scale            float64
	offsetX, offsetY float64
	height           float64
}

func newTransform(points []triangulator.Point, opts Options) transform {
	if len(points) == 0 {
		return transform{scale: 1, height: float64(opts.Height)}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	w, h := maxX-minX, maxY-minY
	availW := float64(opts.Width) - 2*opts.Padding
	availH := float64(opts.Height) - 2*opts.Padding

	var scale float64
	switch {
	case w == 0 && h == 0:
		scale = 1
	case w == 0:
		scale = availH / h
	case h == 0:
		scale = availW / w
	default:
		scale = triangulator.Min(availW/w, availH/h)
	}
	return transform{
		minX:    minX,
		minY:    minY,
		scale:   scale,
		offsetX: opts.Padding + (availW-w*scale)/2,
		offsetY: opts.Padding + (availH-h*scale)/2,
		height:  float64(opts.Height),
	}
}

func (t transform) apply(p triangulator.Point) (float64, float64) {
	x := t.offsetX + (p.X-t.minX)*t.scale
	y := t.offsetY + (p.Y-t.minY)*t.scale
	return x, t.height - y
}

// Draw renders the triangles over the given points.
func Draw(points []triangulator.Point, triangles []triangulator.Triangle, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	if opts.Wireframe < WithoutWireframe || opts.Wireframe > WireframeOnly {
		return nil, errors.Errorf("unknown wireframe mode %d", opts.Wireframe)
	}
	for _, t := range triangles {
		for _, idx := range t {
			if idx < 0 || idx >= len(points) {
				return nil, errors.Wrapf(triangulator.ErrInvalidInput,
					"triangle %v references point %d of %d", t, idx, len(points))
			}
		}
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Stroke == nil {
		opts.Stroke = color.Black
	}

	tr := newTransform(points, opts)
	ctx := gg.NewContext(opts.Width, opts.Height)
	ctx.SetColor(opts.Background)
	ctx.Clear()

	for i, t := range triangles {
		ctx.Push()
		for j, idx := range t {
			x, y := tr.apply(points[idx])
			if j == 0 {
				ctx.MoveTo(x, y)
			} else {
				ctx.LineTo(x, y)
			}
		}
		ctx.ClosePath()

		fill := opts.Fill
		if fill == nil {
			fill = fillColor(i)
		}
		ctx.SetLineWidth(opts.LineWidth)
		switch opts.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(opts.Stroke))
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(opts.Stroke))
			ctx.Stroke()
		}
		ctx.Pop()
	}

	if opts.ShowPoints {
		ctx.SetColor(opts.Stroke)
		for _, p := range points {
			x, y := tr.apply(p)
			ctx.DrawCircle(x, y, math.Max(2, opts.LineWidth*1.5))
			ctx.Fill()
		}
	}

	if opts.ShowIndices {
		ctx.SetFontFace(basicfont.Face7x13)
		ctx.SetColor(opts.Stroke)
		for i, p := range points {
			x, y := tr.apply(p)
			ctx.DrawStringAnchored(strconv.Itoa(i), x+4, y-4, 0, 0)
		}
	}
	return ctx.Image(), nil
}

// FormatFromPath returns the image format implied by the file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return "", errors.Errorf("unsupported image format %q", ext)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return errors.Errorf("unsupported image format %q", format)
	}
}
