package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

// ParseFormat accepts "png" or "webp" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatWebP:
		return f, nil
	}
	return "", fmt.Errorf("texture: unknown output format %q", s)
}

// Encode writes img to w. Opaque images become RGB PNGs.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatPNG, "":
		return png.Encode(w, img)
	}
	return fmt.Errorf("texture: unknown output format %q", f)
}

// OutputPaths names the two textures produced for input. The suffixes are
// appended to the full input name; dir, when set, replaces its directory.
func OutputPaths(input, dir string, f Format) (colors, normals string) {
	base := input
	if dir != "" {
		base = filepath.Join(dir, filepath.Base(input))
	}
	if f == "" {
		f = FormatPNG
	}
	return base + "_colors." + string(f), base + "_normals." + string(f)
}

// Output is one image destined for Path.
type Output struct {
	Path  string
	Image image.Image
}

// WriteAll encodes every output to a temporary file next to its target and
// only then renames them into place. On any failure nothing is left behind.
func WriteAll(f Format, outs ...Output) error {
	temps := make([]string, 0, len(outs))
	removeTemps := func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}

	for _, o := range outs {
		tmp, err := writeTemp(o, f)
		if err != nil {
			removeTemps()
			return err
		}
		temps = append(temps, tmp)
	}

	for i, o := range outs {
		if err := os.Rename(temps[i], o.Path); err != nil {
			for _, done := range outs[:i] {
				os.Remove(done.Path)
			}
			temps = temps[i:]
			removeTemps()
			return fmt.Errorf("%w: rename %s: %w", ErrIO, o.Path, err)
		}
	}
	return nil
}

func writeTemp(o Output, f Format) (string, error) {
	dir := filepath.Dir(o.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: mkdir %s: %w", ErrIO, dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(o.Path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %w", ErrIO, o.Path, err)
	}
	name := tmp.Name()

	if err := Encode(tmp, o.Image, f); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", fmt.Errorf("%w: encode %s: %w", ErrIO, o.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("%w: write %s: %w", ErrIO, o.Path, err)
	}
	return name, nil
}
