package composite

import (
	"image"

	"skin-scanner/internal/parallel"
	"skin-scanner/internal/raster"
)

// alphaScale reduces 16-bit mask values to 8 bits.
const alphaScale = 0xffff / 0xff

// Compose copies the canonical color and takes alpha from the canonical
// mask. Color is not premultiplied.
func Compose(color *image.RGBA, mask *image.Gray16) *image.NRGBA {
	b := color.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				si := y*color.Stride + x*4
				di := y*out.Stride + x*4
				out.Pix[di] = color.Pix[si]
				out.Pix[di+1] = color.Pix[si+1]
				out.Pix[di+2] = color.Pix[si+2]
				out.Pix[di+3] = uint8(raster.At16(mask, x, y) / alphaScale)
			}
		}
	})
	return out
}
