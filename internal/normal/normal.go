package normal

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"skin-scanner/internal/parallel"
	"skin-scanner/internal/raster"
)

// Flat is the encoding of an undisturbed normal pointing along +Z.
var Flat = [3]uint8{128, 128, 255}

// Generate derives a tangent-space normal map from a square height field.
// Each pixel uses forward differences to its right and lower neighbours,
// clamped to the last interior pixel. relief is the fixed Z component:
// larger values flatten the result. The output is opaque RGB.
func Generate(height *image.Gray16, relief float64) *image.RGBA {
	size := height.Bounds().Dx()
	out := raster.NewOpaque(size, size)
	last := max(size-2, 0)

	parallel.Rows(size, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			ny := min(y+1, last)
			for x := 0; x < size; x++ {
				nx := min(x+1, last)
				h := sample(height, x, y)
				v := r3.Vec{
					X: h - sample(height, nx, y),
					Y: h - sample(height, x, ny),
					Z: relief,
				}
				n := r3.Unit(v)
				i := out.PixOffset(x, y)
				out.Pix[i] = Encode(n.X)
				out.Pix[i+1] = Encode(n.Y)
				out.Pix[i+2] = Encode(n.Z)
			}
		}
	})
	return out
}

func sample(m *image.Gray16, x, y int) float64 {
	return float64(raster.At16(m, x, y)) / 0xffff
}

// Encode maps a unit vector component from [-1, 1] to [0, 255].
func Encode(c float64) uint8 {
	return uint8(math.Round((c + 1) * 0.5 * 255))
}

// Decode is the inverse of Encode up to quantization.
func Decode(b uint8) float64 {
	return float64(b)/255*2 - 1
}
