package resample

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"skin-scanner/internal/raster"
)

// Canonical resizes the square color crop and its mask to size×size with
// Catmull-Rom filtering. Filter overshoot is clamped to the channel range.
func Canonical(color *image.RGBA, mask *image.Gray16, size int) (*image.RGBA, *image.Gray16) {
	return RGBA(color, size), Gray16(mask, size)
}

// RGBA resizes an opaque color image to size×size.
func RGBA(src *image.RGBA, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Gray16 resizes a 16-bit single-channel image to size×size.
func Gray16(src *image.Gray16, size int) *image.Gray16 {
	dst := raster.NewGray16(size, size)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Surface converts the canonical color image to 8-bit luminance.
func Surface(color *image.RGBA) *image.Gray {
	lum := imaging.Grayscale(color)
	b := lum.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for i := range gray.Pix {
		gray.Pix[i] = lum.Pix[i*4]
	}
	return gray
}
