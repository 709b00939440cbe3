package normal

import (
	"math"
	"testing"

	"skin-scanner/internal/raster"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		c    float64
		want uint8
	}{
		{-1, 0},
		{0, 128},
		{1, 255},
	}
	for _, tt := range tests {
		if got := Encode(tt.c); got != tt.want {
			t.Errorf("Encode(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
	for b := 0; b < 256; b++ {
		if got := Encode(Decode(uint8(b))); got != uint8(b) {
			t.Errorf("Encode(Decode(%d)) = %d", b, got)
		}
	}
}

func TestGenerateFlat(t *testing.T) {
	for _, v := range []uint16{0, 0x7fff, 0xffff} {
		h := raster.NewGray16(16, 16)
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				raster.Set16(h, x, y, v)
			}
		}
		out := Generate(h, 0.005)
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				i := out.PixOffset(x, y)
				got := [3]uint8{out.Pix[i], out.Pix[i+1], out.Pix[i+2]}
				if got != Flat {
					t.Fatalf("height %d: pixel (%d,%d) = %v, want %v", v, x, y, got, Flat)
				}
			}
		}
	}
}

func TestGenerateUnitLength(t *testing.T) {
	h := raster.NewGray16(32, 32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			raster.Set16(h, x, y, uint16((x*x*37+y*911)%0x10000))
		}
	}
	out := Generate(h, 0.005)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			i := out.PixOffset(x, y)
			nx, ny, nz := Decode(out.Pix[i]), Decode(out.Pix[i+1]), Decode(out.Pix[i+2])
			l := math.Sqrt(nx*nx + ny*ny + nz*nz)
			// One quantization step per component bounds the error.
			if math.Abs(l-1) > 0.01 {
				t.Fatalf("pixel (%d,%d) length %v, want 1", x, y, l)
			}
			if out.Pix[i+3] != 255 {
				t.Fatalf("pixel (%d,%d) alpha %d, want 255", x, y, out.Pix[i+3])
			}
		}
	}
}

func TestGenerateSlopeDirection(t *testing.T) {
	// Height falls to the right: h - hx > 0 so the normal tilts to +X.
	h := raster.NewGray16(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			raster.Set16(h, x, y, uint16(0xffff-x*100))
		}
	}
	out := Generate(h, 0.005)
	i := out.PixOffset(2, 4)
	if out.Pix[i] <= 128 {
		t.Errorf("R = %d, want > 128", out.Pix[i])
	}
	if out.Pix[i+1] != 128 {
		t.Errorf("G = %d, want 128", out.Pix[i+1])
	}
}
