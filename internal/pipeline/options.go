package pipeline

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"skin-scanner/internal/height"
	"skin-scanner/internal/segment"
)

// ErrInvalidConfiguration is returned by Options.Validate.
var ErrInvalidConfiguration = errors.New("pipeline: invalid configuration")

// Options holds every tunable of a conversion. Start from DefaultOptions.
type Options struct {
	Background segment.Background

	// MaskBlur is the Gaussian sigma used to anti-alias the hard mask.
	MaskBlur float64
	// Confidence is the blurred mask value a pixel needs to stay foreground.
	Confidence uint16
	// SpeckRatio drops foreground groups smaller than this fraction of the
	// whole foreground before the bounding box is taken. 0 keeps everything.
	SpeckRatio float64

	// Resolution is the side of both output textures.
	Resolution int
	// Margin is added to the larger bounding-box extent before squaring.
	Margin int

	Height height.Params

	// Relief is the Z component of every unnormalized normal; larger is flatter.
	Relief float64

	// Logger receives stage diagnostics at debug level. nil discards them.
	Logger *zap.Logger
}

// DefaultBackground is the near-black cloth the specimens are shot on.
var DefaultBackground = color.RGBA{R: 18, G: 18, B: 18, A: 255}

// DefaultOptions returns the settings of the reference scanner.
func DefaultOptions() Options {
	return Options{
		Background: segment.Background{
			Color:     DefaultBackground,
			Threshold: 20 * 20,
			Channels:  segment.ChannelsRGB,
		},
		MaskBlur:   2.5,
		Confidence: segment.DefaultConfidence,
		Resolution: 1024,
		Margin:     20,
		Height: height.Params{
			DomeSize:      128,
			DomeBorder:    16,
			DomeRadius:    16,
			SurfaceRadius: 2.0,
			DomeWeight:    19,
			SurfaceWeight: 1,
		},
		Relief: 0.005,
	}
}

// Validate reports the first setting that cannot produce textures.
func (o Options) Validate() error {
	switch {
	case o.Resolution <= 0:
		return fmt.Errorf("%w: resolution %d must be positive", ErrInvalidConfiguration, o.Resolution)
	case o.Margin < 0:
		return fmt.Errorf("%w: margin %d must not be negative", ErrInvalidConfiguration, o.Margin)
	case o.MaskBlur < 0:
		return fmt.Errorf("%w: mask blur %v must not be negative", ErrInvalidConfiguration, o.MaskBlur)
	case o.SpeckRatio < 0 || o.SpeckRatio >= 1:
		return fmt.Errorf("%w: speck ratio %v must be in [0, 1)", ErrInvalidConfiguration, o.SpeckRatio)
	case o.Confidence == 0:
		return fmt.Errorf("%w: confidence must be positive", ErrInvalidConfiguration)
	case o.Background.Channels == 0 || o.Background.Channels&^segment.ChannelsRGB != 0:
		return fmt.Errorf("%w: channel set %#x", ErrInvalidConfiguration, uint8(o.Background.Channels))
	case o.Height.DomeSize <= 0:
		return fmt.Errorf("%w: dome size %d must be positive", ErrInvalidConfiguration, o.Height.DomeSize)
	case o.Height.DomeBorder < 0:
		return fmt.Errorf("%w: dome border %d must not be negative", ErrInvalidConfiguration, o.Height.DomeBorder)
	case o.Height.DomeRadius < 0:
		return fmt.Errorf("%w: dome blur %v must not be negative", ErrInvalidConfiguration, o.Height.DomeRadius)
	case o.Height.SurfaceRadius < 0:
		return fmt.Errorf("%w: surface blur %v must not be negative", ErrInvalidConfiguration, o.Height.SurfaceRadius)
	case o.Height.DomeWeight == 0 && o.Height.SurfaceWeight == 0:
		return fmt.Errorf("%w: dome and surface weights are both zero", ErrInvalidConfiguration)
	case !(o.Relief > 0):
		return fmt.Errorf("%w: relief %v must be positive", ErrInvalidConfiguration, o.Relief)
	}
	return nil
}
