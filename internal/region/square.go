package region

import (
	"fmt"
	"image"
	"image/color"

	"skin-scanner/internal/parallel"
	"skin-scanner/internal/raster"
)

// Square is a side×side region of the source anchored at (OriginX, OriginY).
// It may extend past the source on any edge.
type Square struct {
	OriginX, OriginY int
	Side             int
}

func (s Square) String() string {
	return fmt.Sprintf("[x=%d y=%d side=%d]", s.OriginX, s.OriginY, s.Side)
}

// SelectSquare centers an even-sided square on box. The side is the larger
// box extent plus margin, rounded up to even so later halving steps land on
// whole pixels. No clamping to the source is done here.
func SelectSquare(box Box, margin int) Square {
	cx := (box.Left + box.Right) / 2
	cy := (box.Top + box.Bottom) / 2
	side := max(box.Width(), box.Height()) + margin
	side += side % 2
	return Square{
		OriginX: cx - side/2,
		OriginY: cy - side/2,
		Side:    side,
	}
}

// CropColor copies the square out of src. Pixels outside src take fill.
func CropColor(src *image.RGBA, sq Square, fill color.RGBA) *image.RGBA {
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, sq.Side, sq.Side))

	parallel.Rows(sq.Side, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			oy := y + sq.OriginY
			for x := 0; x < sq.Side; x++ {
				ox := x + sq.OriginX
				di := dst.PixOffset(x, y)
				if ox < 0 || oy < 0 || ox >= sw || oy >= sh {
					dst.Pix[di] = fill.R
					dst.Pix[di+1] = fill.G
					dst.Pix[di+2] = fill.B
					dst.Pix[di+3] = 0xff
					continue
				}
				si := oy*src.Stride + ox*4
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			}
		}
	})
	return dst
}

// CropMask copies the square out of mask. Pixels outside mask are 0.
func CropMask(mask *image.Gray16, sq Square) *image.Gray16 {
	mb := mask.Bounds()
	mw, mh := mb.Dx(), mb.Dy()
	dst := raster.NewGray16(sq.Side, sq.Side)

	parallel.Rows(sq.Side, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			oy := y + sq.OriginY
			if oy < 0 || oy >= mh {
				continue
			}
			for x := 0; x < sq.Side; x++ {
				ox := x + sq.OriginX
				if ox < 0 || ox >= mw {
					continue
				}
				raster.Set16(dst, x, y, raster.At16(mask, ox, oy))
			}
		}
	})
	return dst
}
