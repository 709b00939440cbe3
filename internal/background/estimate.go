package background

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects how the border colour is summarised.
type Method string

const (
	// MethodDominant is deterministic and the default.
	MethodDominant Method = "dominant"
	// MethodKMeans picks the centre of the most populated k-means cluster.
	// Seeding is random, so repeated runs may differ slightly.
	MethodKMeans Method = "kmeans"
)

var (
	ErrUnknownMethod = errors.New("background: unknown estimation method")
	ErrEmptyImage    = errors.New("background: image has no pixels")
)

const kmeansClusters = 3

// ParseMethod maps a configuration string to a Method; "" means dominant.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case "":
		return MethodDominant, nil
	case MethodDominant, MethodKMeans:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// RingWidth is the thickness of the border band sampled for an image.
func RingWidth(w, h int) int {
	return max(1, min(w, h)/50)
}

// Ring returns the pixels of the border band of img in scan order.
func Ring(img *image.RGBA) []color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	band := RingWidth(w, h)
	out := make([]color.RGBA, 0, 2*band*(w+h))
	for y := 0; y < h; y++ {
		edgeRow := y < band || y >= h-band
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			if !edgeRow && x >= band && x < w-band {
				continue
			}
			p := row[x*4 : x*4+4 : x*4+4]
			out = append(out, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	return out
}

// Estimate guesses the backdrop colour of a photograph from its border.
func Estimate(img *image.RGBA, m Method) (color.RGBA, error) {
	ring := Ring(img)
	if len(ring) == 0 {
		return color.RGBA{}, ErrEmptyImage
	}
	switch m {
	case MethodDominant, "":
		return dominant(ring), nil
	case MethodKMeans:
		return largestCluster(ring)
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownMethod, m)
}

func dominant(ring []color.RGBA) color.RGBA {
	found := dominantcolor.FindWeight(pack(ring), 4)
	if len(found) == 0 {
		return mean(ring)
	}
	best := slices.MaxFunc(found, func(a, b dominantcolor.Color) int {
		switch {
		case a.Weight < b.Weight:
			return -1
		case a.Weight > b.Weight:
			return 1
		}
		return 0
	})
	c := best.RGBA
	c.A = 255
	return c
}

func largestCluster(ring []color.RGBA) (color.RGBA, error) {
	dataset := make(clusters.Observations, 0, len(ring))
	for _, c := range ring {
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255,
			float64(c.G) / 255,
			float64(c.B) / 255,
		})
	}
	km := kmeans.New()
	cc, err := km.Partition(dataset, min(kmeansClusters, len(dataset)))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("background: kmeans: %w", err)
	}
	best := slices.MaxFunc(cc, func(a, b clusters.Cluster) int {
		return len(a.Observations) - len(b.Observations)
	})
	if len(best.Center) < 3 {
		return mean(ring), nil
	}
	r, g, b := colorful.Color{R: best.Center[0], G: best.Center[1], B: best.Center[2]}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// pack lays the ring out as a near-square opaque image, repeating pixels
// to fill the last row.
func pack(ring []color.RGBA) *image.RGBA {
	side := int(math.Ceil(math.Sqrt(float64(len(ring)))))
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		c := ring[i%len(ring)]
		copy(img.Pix[i*4:], []uint8{c.R, c.G, c.B, 255})
	}
	return img
}

func mean(ring []color.RGBA) color.RGBA {
	var r, g, b int
	for _, c := range ring {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(ring)
	return color.RGBA{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((b + n/2) / n),
		A: 255,
	}
}
