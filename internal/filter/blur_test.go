package filter

import (
	"image"
	"math"
	"testing"

	"skin-scanner/internal/raster"
)

func TestGaussianKernel(t *testing.T) {
	tests := []struct {
		radius   float64
		wantSize int
	}{
		{0, 1},
		{-1, 1},
		{1, 7},
		{2.5, 17},
		{16, 97},
	}
	for _, tt := range tests {
		k := GaussianKernel(tt.radius)
		if len(k) != tt.wantSize {
			t.Errorf("GaussianKernel(%v) len = %d, want %d", tt.radius, len(k), tt.wantSize)
		}
		var sum float64
		for _, v := range k {
			sum += float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("GaussianKernel(%v) sum = %v, want 1", tt.radius, sum)
		}
		for i := 0; i < len(k)/2; i++ {
			if k[i] != k[len(k)-1-i] {
				t.Errorf("GaussianKernel(%v) not symmetric at %d", tt.radius, i)
			}
		}
	}
}

func fill16(w, h int, v uint16) *image.Gray16 {
	m := raster.NewGray16(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			raster.Set16(m, x, y, v)
		}
	}
	return m
}

func TestBlur16ZeroRadiusIsCopy(t *testing.T) {
	src := raster.NewGray16(5, 5)
	raster.Set16(src, 2, 2, 0xffff)

	dst := Blur16(src, 0)
	if dst == src {
		t.Fatal("Blur16 returned its input, want a copy")
	}
	for i := range src.Pix {
		if src.Pix[i] != dst.Pix[i] {
			t.Fatalf("Blur16(r=0) changed byte %d", i)
		}
	}
}

func TestBlur16ConstantStaysConstant(t *testing.T) {
	for _, v := range []uint16{0, 1000, 0xffff} {
		src := fill16(20, 13, v)
		dst := Blur16(src, 2.5)
		for y := 0; y < 13; y++ {
			for x := 0; x < 20; x++ {
				if got := raster.At16(dst, x, y); got != v {
					t.Fatalf("Blur16(const %d) at (%d,%d) = %d", v, x, y, got)
				}
			}
		}
	}
}

func TestBlur16SpreadsImpulse(t *testing.T) {
	src := raster.NewGray16(21, 21)
	raster.Set16(src, 10, 10, 0xffff)

	dst := Blur16(src, 2)
	center := raster.At16(dst, 10, 10)
	if center == 0 || center == 0xffff {
		t.Fatalf("center = %d, want strictly between 0 and 65535", center)
	}
	if n := raster.At16(dst, 11, 10); n == 0 || n >= center {
		t.Errorf("neighbour = %d, want in (0, %d)", n, center)
	}
	if a, b := raster.At16(dst, 8, 10), raster.At16(dst, 12, 10); a != b {
		t.Errorf("blur not symmetric: %d vs %d", a, b)
	}
}
