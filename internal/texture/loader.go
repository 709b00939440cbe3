package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrIO wraps every read, decode, encode and write failure.
	ErrIO = errors.New("texture: i/o failure")
	// ErrUnsupportedPixelFormat rejects images that are not opaque 8-bit RGB.
	ErrUnsupportedPixelFormat = errors.New("texture: unsupported pixel format")
)

type decoder struct {
	name   string
	decode func(io.Reader) (image.Image, error)
}

// TGA has no magic number, so it is picked by extension after every
// signature below failed to match.
var signatures = []struct {
	match func([]byte) bool
	dec   decoder
}{
	{func(b []byte) bool { return bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")) }, decoder{"png", png.Decode}},
	{func(b []byte) bool { return bytes.HasPrefix(b, []byte("\xff\xd8")) }, decoder{"jpeg", jpeg.Decode}},
	{func(b []byte) bool { return bytes.HasPrefix(b, []byte("BM")) }, decoder{"bmp", bmp.Decode}},
	{func(b []byte) bool {
		return bytes.HasPrefix(b, []byte("II*\x00")) || bytes.HasPrefix(b, []byte("MM\x00*"))
	}, decoder{"tiff", tiff.Decode}},
	{func(b []byte) bool {
		return len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP"
	}, decoder{"webp", webp.Decode}},
}

// tgaDepthOffset is the pixel-depth byte of the 18-byte TGA header.
const tgaDepthOffset = 16

// Load reads an image file and returns it as an opaque RGBA image with its
// origin at (0, 0), plus the name of the decoder that read it.
func Load(path string) (*image.RGBA, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}

	dec, err := sniff(raw, path)
	if err != nil {
		return nil, "", err
	}
	if dec.name == "tga" && raw[tgaDepthOffset] != 24 {
		return nil, dec.name, fmt.Errorf("texture: %s: %w: %d-bit tga", path, ErrUnsupportedPixelFormat, raw[tgaDepthOffset])
	}

	img, err := dec.decode(bytes.NewReader(raw))
	if err != nil {
		return nil, dec.name, fmt.Errorf("%w: decode %s: %w", ErrIO, path, err)
	}

	rgba, err := toRGBA(img, dec.name)
	if err != nil {
		return nil, dec.name, fmt.Errorf("texture: %s: %w", path, err)
	}
	return rgba, dec.name, nil
}

func sniff(raw []byte, path string) (decoder, error) {
	for _, s := range signatures {
		if s.match(raw) {
			return s.dec, nil
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		if len(raw) <= tgaDepthOffset+1 {
			return decoder{}, fmt.Errorf("%w: decode %s: tga header too short", ErrIO, path)
		}
		return decoder{"tga", tga.Decode}, nil
	}
	return decoder{}, fmt.Errorf("%w: decode %s: %w", ErrIO, path, image.ErrFormat)
}

// toRGBA accepts only layouts that carry 8-bit RGB without meaningful alpha.
func toRGBA(src image.Image, format string) (*image.RGBA, error) {
	switch m := src.(type) {
	case *image.RGBA:
		if !m.Opaque() {
			return nil, fmt.Errorf("%w: %s RGBA with alpha", ErrUnsupportedPixelFormat, format)
		}
	case *image.YCbCr:
	case *image.NRGBA:
		// The TGA decoder reports 24-bit files as NRGBA.
		if format != "tga" || !m.Opaque() {
			return nil, fmt.Errorf("%w: %s NRGBA", ErrUnsupportedPixelFormat, format)
		}
	default:
		return nil, fmt.Errorf("%w: %s %T", ErrUnsupportedPixelFormat, format, src)
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}
