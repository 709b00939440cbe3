package preview

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"skin-scanner/internal/normal"
	"skin-scanner/internal/parallel"
)

// Render lights the color texture with its normal map. Both images must share
// the same size; alpha is carried over unchanged.
func Render(colors *image.NRGBA, normals *image.RGBA, light Light) *image.NRGBA {
	b := colors.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				ni := y*normals.Stride + x*4
				n := r3.Unit(r3.Vec{
					X: normal.Decode(normals.Pix[ni]),
					Y: normal.Decode(normals.Pix[ni+1]),
					Z: normal.Decode(normals.Pix[ni+2]),
				})
				k := light.Shade(n) * light.Exposure

				ci := y*colors.Stride + x*4
				di := y*out.Stride + x*4
				for c := 0; c < 3; c++ {
					out.Pix[di+c] = light.toSRGB(srgbToLinear[colors.Pix[ci+c]] * k)
				}
				out.Pix[di+3] = colors.Pix[ci+3]
			}
		}
	})
	return out
}

func (l *Light) toSRGB(linear float64) uint8 {
	v := math.Pow(ACESTonemap(linear), l.InvGamma) * 255
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v + 0.5)
}
