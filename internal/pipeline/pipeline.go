package pipeline

import (
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"skin-scanner/internal/composite"
	"skin-scanner/internal/height"
	"skin-scanner/internal/normal"
	"skin-scanner/internal/region"
	"skin-scanner/internal/resample"
	"skin-scanner/internal/segment"
	"skin-scanner/internal/texture"
)

var (
	// ErrNoForeground aborts a run whose mask holds no confident pixel.
	ErrNoForeground = region.ErrNoForeground

	ErrIO                     = texture.ErrIO
	ErrUnsupportedPixelFormat = texture.ErrUnsupportedPixelFormat
)

// Result holds the two textures plus the geometry that produced them.
type Result struct {
	// Color is the RGBA texture; alpha is foreground confidence.
	Color *image.NRGBA
	// Normal is the opaque tangent-space normal map, same UV mapping as Color.
	Normal *image.RGBA

	Box    region.Box
	Square region.Square
	Height *image.Gray16
}

// Run converts an opaque RGB photograph into a color texture and a normal
// map. src is only read. Either both textures are returned or an error.
// Stage parallelism follows the process-wide parallel.SetWorkers.
func Run(src *image.RGBA, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sb := src.Bounds()
	log.Debug("source",
		zap.Int("width", sb.Dx()),
		zap.Int("height", sb.Dy()),
		zap.Stringer("channels", opts.Background.Channels))

	start := time.Now()
	seg, err := segment.Segment(src, opts.Background, opts.MaskBlur, opts.Confidence)
	if err != nil {
		return Result{}, err
	}
	if opts.SpeckRatio > 0 {
		seg.Mask = region.RemoveSpecks(seg.Mask, opts.SpeckRatio)
		if seg.Box, err = region.FindBox(seg.Mask); err != nil {
			return Result{}, err
		}
	}
	sq := region.SelectSquare(seg.Box, opts.Margin)
	log.Debug("segmented",
		zap.Stringer("box", seg.Box),
		zap.Stringer("square", sq),
		zap.Bool("exceeds_source", sq.OriginX < 0 || sq.OriginY < 0 ||
			sq.OriginX+sq.Side > sb.Dx() || sq.OriginY+sq.Side > sb.Dy()),
		zap.Duration("took", time.Since(start)))

	start = time.Now()
	sqColor := region.CropColor(src, sq, opts.Background.Color)
	sqMask := region.CropMask(seg.Mask, sq)
	color, mask := resample.Canonical(sqColor, sqMask, opts.Resolution)
	surface := resample.Surface(color)
	log.Debug("resampled", zap.Int("resolution", opts.Resolution), zap.Duration("took", time.Since(start)))

	var (
		wg      sync.WaitGroup
		colored *image.NRGBA
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		colored = composite.Compose(color, mask)
	}()

	start = time.Now()
	field := height.Synthesize(mask, surface, opts.Height)
	normals := normal.Generate(field, opts.Relief)
	wg.Wait()
	log.Debug("textures ready", zap.Duration("took", time.Since(start)))

	return Result{
		Color:  colored,
		Normal: normals,
		Box:    seg.Box,
		Square: sq,
		Height: field,
	}, nil
}
