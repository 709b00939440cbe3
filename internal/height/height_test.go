package height

import (
	"image"
	"testing"

	"skin-scanner/internal/raster"
)

func defaultParams() Params {
	return Params{
		DomeSize:      32,
		DomeBorder:    4,
		DomeRadius:    4,
		SurfaceRadius: 2,
		DomeWeight:    19,
		SurfaceWeight: 1,
	}
}

func solidGray(size int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, size, size))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

func solidNRGBA(size int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func solid16(size int, v uint16) *image.Gray16 {
	m := raster.NewGray16(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			raster.Set16(m, x, y, v)
		}
	}
	return m
}

func TestBlendExtremesStayInRange(t *testing.T) {
	tests := []struct {
		name    string
		dome    uint16
		surface uint8
		want    uint16
	}{
		{"both max", 0xffff, 0xff, 0xffff},
		{"both zero", 0, 0, 0},
		{"dome only", 0xffff, 0, 0xffff * 19 / 20},
		{"surface only", 0, 0xff, 0xffff / 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Blend(solid16(4, tt.dome), solidNRGBA(4, tt.surface), 19, 1)
			if got := raster.At16(out, 2, 2); got != tt.want {
				t.Errorf("Blend = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBlendLargeWeightsDoNotOverflow(t *testing.T) {
	out := Blend(solid16(2, 0xffff), solidNRGBA(2, 0xff), 1<<31, 1<<31)
	if got := raster.At16(out, 0, 0); got != 0xffff {
		t.Errorf("Blend = %d, want 65535", got)
	}
}

func TestDomeIsHighestInside(t *testing.T) {
	p := defaultParams()
	mask := raster.NewGray16(128, 128)
	for y := 32; y < 96; y++ {
		for x := 32; x < 96; x++ {
			raster.Set16(mask, x, y, 0xffff)
		}
	}
	dome := Dome(mask, p)
	if dome.Bounds().Dx() != 128 {
		t.Fatalf("dome size = %d, want 128", dome.Bounds().Dx())
	}
	center := raster.At16(dome, 64, 64)
	edge := raster.At16(dome, 32, 64)
	outside := raster.At16(dome, 2, 2)
	if !(center > edge && edge > outside) {
		t.Errorf("dome profile center=%d edge=%d outside=%d, want decreasing", center, edge, outside)
	}
}

func TestDomeFullMaskFallsOffAtBorder(t *testing.T) {
	// The zero padding pulls the border of a full mask down.
	dome := Dome(solid16(64, 0xffff), defaultParams())
	if c, e := raster.At16(dome, 32, 32), raster.At16(dome, 0, 32); e >= c {
		t.Errorf("edge %d >= center %d, want falloff", e, c)
	}
}

func TestSynthesizeWithinRange(t *testing.T) {
	p := defaultParams()
	for _, v := range []uint16{0, 0x8000, 0xffff} {
		out := Synthesize(solid16(64, v), solidGray(64, 0xff), p)
		if out.Bounds().Dx() != 64 || out.Bounds().Dy() != 64 {
			t.Fatalf("size = %v, want 64x64", out.Bounds())
		}
		// Gray16 cannot hold values outside the range; check the blend
		// kept the surface contribution.
		if got := raster.At16(out, 32, 32); got < 0xffff/20 {
			t.Errorf("mask %d: height %d lost the surface term", v, got)
		}
	}
}
