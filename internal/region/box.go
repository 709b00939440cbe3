package region

import (
	"errors"
	"fmt"
	"image"

	"skin-scanner/internal/raster"
)

// ErrNoForeground is returned when no mask pixel reaches full confidence.
var ErrNoForeground = errors.New("region: no foreground detected")

// Box is an inclusive pixel rectangle: Left <= Right and Top <= Bottom.
type Box struct {
	Left, Right, Top, Bottom int
}

// Width is the inclusive horizontal extent.
func (b Box) Width() int { return b.Right - b.Left + 1 }

// Height is the inclusive vertical extent.
func (b Box) Height() int { return b.Bottom - b.Top + 1 }

func (b Box) String() string {
	return fmt.Sprintf("[l=%d r=%d t=%d b=%d]", b.Left, b.Right, b.Top, b.Bottom)
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	return Box{
		Left:   min(b.Left, o.Left),
		Right:  max(b.Right, o.Right),
		Top:    min(b.Top, o.Top),
		Bottom: max(b.Bottom, o.Bottom),
	}
}

// RowSpans records, per row, the first and last column holding a confident
// pixel. Rows without one keep First = -1. Kernels filling disjoint rows can
// share one RowSpans without locking.
type RowSpans struct {
	First, Last []int
}

// NewRowSpans allocates spans for h empty rows.
func NewRowSpans(h int) RowSpans {
	s := RowSpans{First: make([]int, h), Last: make([]int, h)}
	for y := range s.First {
		s.First[y] = -1
	}
	return s
}

// Mark records a confident pixel at (x, y). Columns must be visited in
// increasing order within a row.
func (s RowSpans) Mark(x, y int) {
	if s.First[y] < 0 {
		s.First[y] = x
	}
	s.Last[y] = x
}

// Box folds the spans into a bounding box. ok is false when no row holds a
// confident pixel.
func (s RowSpans) Box() (box Box, ok bool) {
	for y, first := range s.First {
		if first < 0 {
			continue
		}
		row := Box{Left: first, Right: s.Last[y], Top: y, Bottom: y}
		if !ok {
			box, ok = row, true
			continue
		}
		box = box.Union(row)
	}
	return box, ok
}

// FindBox scans a binarized mask for pixels at full confidence and returns
// their bounding box, or ErrNoForeground when there are none.
func FindBox(mask *image.Gray16) (Box, error) {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	spans := NewRowSpans(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if raster.At16(mask, x, y) == 0xffff {
				spans.Mark(x, y)
			}
		}
	}
	box, ok := spans.Box()
	if !ok {
		return Box{}, ErrNoForeground
	}
	return box, nil
}
