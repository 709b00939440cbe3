package resample

import (
	"image"
	"image/color"
	"testing"

	"skin-scanner/internal/raster"
)

func TestRGBAConstantStaysConstant(t *testing.T) {
	src := raster.NewOpaque(37, 37)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 90, 140, 30
	}
	for _, size := range []int{16, 37, 128} {
		dst := RGBA(src, size)
		if dst.Bounds() != image.Rect(0, 0, size, size) {
			t.Fatalf("bounds = %v, want %dx%d", dst.Bounds(), size, size)
		}
		for _, p := range []image.Point{{0, 0}, {size / 2, size / 2}, {size - 1, size - 1}} {
			if got := dst.RGBAAt(p.X, p.Y); got != (color.RGBA{R: 90, G: 140, B: 30, A: 255}) {
				t.Errorf("size %d at %v = %v", size, p, got)
			}
		}
	}
}

func TestGray16ClampsOvershoot(t *testing.T) {
	// A hard step makes Catmull-Rom ring; the flat regions must keep their
	// exact values instead of wrapping past the channel limits.
	src := raster.NewGray16(64, 64)
	for y := 0; y < 64; y++ {
		for x := 32; x < 64; x++ {
			raster.Set16(src, x, y, 0xffff)
		}
	}
	dst := Gray16(src, 200)
	if got := raster.At16(dst, 5, 100); got != 0 {
		t.Errorf("dark side = %d, want 0", got)
	}
	if got := raster.At16(dst, 195, 100); got != 0xffff {
		t.Errorf("bright side = %d, want 65535", got)
	}
	if got := raster.At16(dst, 100, 100); got == 0 || got == 0xffff {
		t.Errorf("step centre = %d, want a value in between", got)
	}
}

func TestSurfaceLuminance(t *testing.T) {
	src := raster.NewOpaque(4, 4)
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2] = 200, 200, 200
	}
	src.SetRGBA(0, 0, color.RGBA{A: 255})
	g := Surface(src)
	if got := g.GrayAt(1, 1).Y; got != 200 {
		t.Errorf("gray of (200,200,200) = %d, want 200", got)
	}
	if got := g.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("gray of black = %d, want 0", got)
	}
}
