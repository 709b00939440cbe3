package region

import (
	"image"

	"skin-scanner/internal/raster"
)

// RemoveSpecks zeroes 8-connected foreground groups smaller than minRatio of
// all foreground pixels. Dust on the backdrop otherwise stretches the
// bounding box. The mask is not modified; a cleaned copy is returned, or
// mask itself when nothing was removed.
func RemoveSpecks(mask *image.Gray16, minRatio float64) *image.Gray16 {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	fg := make([]bool, w*h)
	total := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if raster.At16(mask, x, y) == 0xffff {
				fg[y*w+x] = true
				total++
			}
		}
	}
	if total == 0 || minRatio <= 0 {
		return mask
	}

	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var sizes []int

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 1024)

	for start := range fg {
		if !fg[start] || labels[start] >= 0 {
			continue
		}
		id := len(sizes)
		queue = append(queue[:0], start)
		labels[start] = id
		size := 0
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			size++
			cx, cy := cur%w, cur/w
			for d := 0; d < 8; d++ {
				nx, ny := cx+dx[d], cy+dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if fg[ni] && labels[ni] < 0 {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}
	if len(sizes) <= 1 {
		return mask
	}

	minSize := int(float64(total) * minRatio)
	out := raster.NewGray16(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := raster.At16(mask, x, y)
			if l := labels[y*w+x]; l >= 0 && sizes[l] < minSize {
				v = 0
			}
			raster.Set16(out, x, y, v)
		}
	}
	return out
}
