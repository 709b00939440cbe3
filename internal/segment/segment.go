package segment

import (
	"image"

	"skin-scanner/internal/filter"
	"skin-scanner/internal/parallel"
	"skin-scanner/internal/raster"
	"skin-scanner/internal/region"
)

const (
	// MaxConfidence marks a pixel as certainly foreground.
	MaxConfidence = 0xffff

	// DefaultConfidence is the blurred value a pixel needs to stay in the mask.
	DefaultConfidence = MaxConfidence / 8 * 7
)

// Result is the binarized foreground mask and the box around it.
type Result struct {
	Mask *image.Gray16
	Box  region.Box
}

// Segment classifies every pixel of src against bg, blurs the hard mask with
// blurRadius to smooth its edges, and snaps it back to 0/MaxConfidence at the
// confidence level. It fails with region.ErrNoForeground when nothing stays.
func Segment(src *image.RGBA, bg Background, blurRadius float64, confidence uint16) (Result, error) {
	hard := Classify(src, bg)
	soft := filter.Blur16(hard, blurRadius)
	mask, box, ok := Binarize(soft, confidence)
	if !ok {
		return Result{}, region.ErrNoForeground
	}
	return Result{Mask: mask, Box: box}, nil
}

// Classify builds the hard mask: MaxConfidence for foreground, 0 otherwise.
func Classify(src *image.RGBA, bg Background) *image.Gray16 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := raster.NewGray16(w, h)

	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				i := x * 4
				if bg.IsForeground(row[i], row[i+1], row[i+2]) {
					raster.Set16(mask, x, y, MaxConfidence)
				}
			}
		}
	})
	return mask
}

// Binarize snaps values at or above confidence to MaxConfidence and all
// others to 0, returning the new mask and the box around the kept pixels.
// Applying it to its own output changes nothing.
func Binarize(soft *image.Gray16, confidence uint16) (*image.Gray16, region.Box, bool) {
	b := soft.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := raster.NewGray16(w, h)
	spans := region.NewRowSpans(h)

	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				if raster.At16(soft, x, y) >= confidence {
					raster.Set16(mask, x, y, MaxConfidence)
					spans.Mark(x, y)
				}
			}
		}
	})

	box, ok := spans.Box()
	return mask, box, ok
}
