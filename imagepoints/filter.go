package imagepoints

import (
	"image"
	"image/color"
	"math"
)

// gray is a single channel 8-bit image stored row by row.
type gray struct {
	pix           []uint8
	width, height int
}

// grayscale converts src to luminance using the Rec. 601 weights.
func grayscale(src image.Image) *gray {
	b := src.Bounds()
	g := &gray{pix: make([]uint8, b.Dx()*b.Dy()), width: b.Dx(), height: b.Dy()}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			g.pix[y*g.width+x] = uint8(math.Min(255, lum+0.5))
		}
	}
	return g
}

// blurMatrix returns a box blur kernel covering radius pixels on each side.
func blurMatrix(radius int) []float64 {
	side := radius*2 + 1
	matrix := make([]float64, side*side)
	for i := range matrix {
		matrix[i] = 1
	}
	return matrix
}

// convolve applies a square smoothing kernel over g. Pixels outside the image
// are skipped and the result is normalized by the weights actually used.
func (g *gray) convolve(matrix []float64) *gray {
	size := int(math.Sqrt(float64(len(matrix))))
	dim := size / 2
	dst := &gray{pix: make([]uint8, len(g.pix)), width: g.width, height: g.height}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sum, weight float64
			for row := -dim; row <= dim; row++ {
				sy := y + row
				if sy < 0 || sy >= g.height {
					continue
				}
				for col := -dim; col <= dim; col++ {
					sx := x + col
					if sx < 0 || sx >= g.width {
						continue
					}
					v := matrix[(row+dim)*size+col+dim]
					sum += float64(g.pix[sy*g.width+sx]) * v
					weight += v
				}
			}
			if weight != 0 {
				sum /= weight
			}
			dst.pix[y*g.width+x] = uint8(math.Max(0, math.Min(255, sum+0.5)))
		}
	}
	return dst
}

var (
	sobelX = [3][3]int32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]int32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobel returns the gradient magnitude of g, zeroed where it does not exceed
// threshold. Border pixels are always zero.
func (g *gray) sobel(threshold float64) *gray {
	dst := &gray{pix: make([]uint8, len(g.pix)), width: g.width, height: g.height}
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			var gx, gy int32
			for row := 0; row < 3; row++ {
				for col := 0; col < 3; col++ {
					v := int32(g.pix[(y+row-1)*g.width+x+col-1])
					gx += v * sobelX[row][col]
					gy += v * sobelY[row][col]
				}
			}
			magnitude := math.Sqrt(float64(gx*gx + gy*gy))
			if magnitude > threshold {
				dst.pix[y*g.width+x] = uint8(math.Min(255, magnitude))
			}
		}
	}
	return dst
}
