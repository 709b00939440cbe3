package filter

import (
	"image"

	"skin-scanner/internal/parallel"
	"skin-scanner/internal/raster"
)

// Blur16 applies a separable Gaussian blur with sigma radius to a 16-bit
// single-channel image and returns a new image. Samples past the border
// repeat the edge pixel. radius <= 0 returns an unmodified copy.
func Blur16(src *image.Gray16, radius float64) *image.Gray16 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := raster.NewGray16(w, h)
	if radius <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}

	kernel := GaussianKernel(radius)
	temp := make([]float32, w*h)

	parallel.Rows(h, func(y0, y1 int) {
		blurRows(src, temp, w, y0, y1, kernel)
	})
	parallel.Rows(h, func(y0, y1 int) {
		blurColumns(temp, dst, w, h, y0, y1, kernel)
	})
	return dst
}

// blurRows convolves rows [y0, y1) horizontally into temp.
func blurRows(src *image.Gray16, temp []float32, w, y0, y1 int, kernel []float32) {
	half := len(kernel) / 2
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k, weight := range kernel {
				kx := min(max(x+k-half, 0), w-1)
				acc += float32(raster.At16(src, kx, y)) * weight
			}
			temp[y*w+x] = acc
		}
	}
}

// blurColumns convolves temp vertically and writes rows [y0, y1) of dst.
func blurColumns(temp []float32, dst *image.Gray16, w, h, y0, y1 int, kernel []float32) {
	half := len(kernel) / 2
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k, weight := range kernel {
				ky := min(max(y+k-half, 0), h-1)
				acc += temp[ky*w+x] * weight
			}
			raster.Set16(dst, x, y, raster.Clamp16(acc))
		}
	}
}
