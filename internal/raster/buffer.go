package raster

import "image"

// All buffers handled by the pipeline start at the origin, so pixel offsets
// are computed from the stride alone and the flat Pix slices are accessed
// directly for cache locality.

// NewGray16 allocates a zeroed w×h single-channel 16-bit buffer.
func NewGray16(w, h int) *image.Gray16 {
	return image.NewGray16(image.Rect(0, 0, w, h))
}

// NewOpaque allocates a w×h RGBA buffer with alpha set to 255.
func NewOpaque(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

// At16 returns the value of m at (x, y).
func At16(m *image.Gray16, x, y int) uint16 {
	i := y*m.Stride + x*2
	return uint16(m.Pix[i])<<8 | uint16(m.Pix[i+1])
}

// Set16 stores v at (x, y).
func Set16(m *image.Gray16, x, y int, v uint16) {
	i := y*m.Stride + x*2
	m.Pix[i] = uint8(v >> 8)
	m.Pix[i+1] = uint8(v)
}

// Clamp16 rounds v to the nearest integer inside the 16-bit range.
func Clamp16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 0xffff {
		return 0xffff
	}
	return uint16(v + 0.5)
}
