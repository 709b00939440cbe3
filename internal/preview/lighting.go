package preview

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Light holds precomputed lighting parameters for shading a texture under
// its normal map. Directions are in normal-map space: +Z faces the viewer.
type Light struct {
	Dir      r3.Vec
	Half     r3.Vec // Blinn-Phong half-vector between Dir and the view axis
	Ambient  float64
	Hemi     float64
	Direct   float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

var viewDir = r3.Vec{Z: 1}

// DefaultLight is a key light raised above the upper left.
func DefaultLight() Light {
	return NewLight(r3.Vec{X: 0.45, Y: 0.55, Z: 0.70})
}

// NewLight builds a Light with the standard mix for the given direction.
func NewLight(dir r3.Vec) Light {
	dir = r3.Unit(dir)
	return Light{
		Dir:      dir,
		Half:     r3.Unit(r3.Add(dir, viewDir)),
		Ambient:  0.25,
		Hemi:     0.20,
		Direct:   0.85,
		SpecInt:  0.25,
		SpecPow:  24.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the combined lighting scalar for a unit normal.
func (l *Light) Shade(n r3.Vec) float64 {
	// Lambertian
	ndl := math.Max(r3.Dot(n, l.Dir), 0)

	// Hemisphere fill, strongest for normals facing the viewer
	hemi := (n.Z*0.5 + 0.5) * l.Hemi

	// Blinn-Phong specular
	ndh := math.Max(r3.Dot(n, l.Half), 0)
	spec := math.Pow(ndh, l.SpecPow) * l.SpecInt

	return l.Ambient + hemi + ndl*l.Direct + spec
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
