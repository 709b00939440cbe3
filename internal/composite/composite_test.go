package composite

import (
	"image/color"
	"testing"

	"skin-scanner/internal/raster"
)

func TestCompose(t *testing.T) {
	c := raster.NewOpaque(3, 1)
	c.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	c.SetRGBA(1, 0, color.RGBA{R: 40, G: 50, B: 60, A: 255})
	c.SetRGBA(2, 0, color.RGBA{R: 70, G: 80, B: 90, A: 255})

	m := raster.NewGray16(3, 1)
	raster.Set16(m, 0, 0, 0)
	raster.Set16(m, 1, 0, 0x8000)
	raster.Set16(m, 2, 0, 0xffff)

	out := Compose(c, m)
	tests := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{R: 10, G: 20, B: 30, A: 0}},
		{1, color.NRGBA{R: 40, G: 50, B: 60, A: 127}},
		{2, color.NRGBA{R: 70, G: 80, B: 90, A: 255}},
	}
	for _, tt := range tests {
		if got := out.NRGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("pixel %d = %v, want %v", tt.x, got, tt.want)
		}
	}
}
