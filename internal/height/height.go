package height

import (
	"image"

	"github.com/disintegration/imaging"

	"skin-scanner/internal/filter"
	"skin-scanner/internal/parallel"
	"skin-scanner/internal/raster"
	"skin-scanner/internal/resample"
)

// Params controls the dome and the surface detail mixed into it.
type Params struct {
	// DomeSize is the working resolution the mask is blurred at.
	DomeSize int
	// DomeBorder is the zero padding around the working mask that absorbs
	// the blur spill at the silhouette edge.
	DomeBorder int
	// DomeRadius is the Gaussian sigma applied to the padded working mask.
	DomeRadius float64
	// SurfaceRadius softens the luminance before it is mixed in.
	SurfaceRadius float64

	DomeWeight    uint32
	SurfaceWeight uint32
}

// surfaceScale lifts an 8-bit value to the 16-bit height range.
const surfaceScale = 0xffff / 0xff

// Synthesize builds the height field for a canonical mask and its
// luminance surface. Both must share the same square size.
func Synthesize(mask *image.Gray16, surface *image.Gray, p Params) *image.Gray16 {
	dome := Dome(mask, p)
	soft := imaging.Blur(surface, p.SurfaceRadius)
	return Blend(dome, soft, p.DomeWeight, p.SurfaceWeight)
}

// Dome turns the silhouette into a smooth bulge: the mask is shrunk to the
// working size, padded, blurred, cropped back and enlarged again.
func Dome(mask *image.Gray16, p Params) *image.Gray16 {
	size := mask.Bounds().Dx()
	small := resample.Gray16(mask, p.DomeSize)

	padded := raster.NewGray16(p.DomeSize+2*p.DomeBorder, p.DomeSize+2*p.DomeBorder)
	for y := 0; y < p.DomeSize; y++ {
		si := y * small.Stride
		di := (y+p.DomeBorder)*padded.Stride + p.DomeBorder*2
		copy(padded.Pix[di:di+p.DomeSize*2], small.Pix[si:si+p.DomeSize*2])
	}

	blurred := filter.Blur16(padded, p.DomeRadius)

	cropped := raster.NewGray16(p.DomeSize, p.DomeSize)
	for y := 0; y < p.DomeSize; y++ {
		si := (y+p.DomeBorder)*blurred.Stride + p.DomeBorder*2
		di := y * cropped.Stride
		copy(cropped.Pix[di:di+p.DomeSize*2], blurred.Pix[si:si+p.DomeSize*2])
	}

	return resample.Gray16(cropped, size)
}

// Blend mixes the dome with the softened surface by weight. The surface is
// read from the first channel of soft and lifted to 16 bits first; the sum
// is formed in 64 bits so the result never leaves [0, 65535].
func Blend(dome *image.Gray16, soft *image.NRGBA, domeWeight, surfaceWeight uint32) *image.Gray16 {
	b := dome.Bounds()
	w, h := b.Dx(), b.Dy()
	out := raster.NewGray16(w, h)
	total := uint64(domeWeight) + uint64(surfaceWeight)

	parallel.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				d := uint64(raster.At16(dome, x, y))
				s := uint64(soft.Pix[y*soft.Stride+x*4]) * surfaceScale
				raster.Set16(out, x, y, uint16((d*uint64(domeWeight)+s*uint64(surfaceWeight))/total))
			}
		}
	})
	return out
}
