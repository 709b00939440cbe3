package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func opaque(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 77, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	src := opaque(8, 6)
	writeFile(t, path, encodePNG(t, src))

	got, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Error("pixels differ after round trip")
	}
}

func TestLoadJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, opaque(16, 16), nil); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, buf.Bytes())

	got, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if got.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Errorf("bounds = %v", got.Bounds())
	}
	if !got.Opaque() {
		t.Error("decoded JPEG is not opaque")
	}
}

// rawTGA builds an uncompressed true-colour TGA of a single colour.
func rawTGA(w, h int, depth uint8, c color.RGBA) []byte {
	desc := uint8(0x20) // top-left origin
	if depth == 32 {
		desc |= 8
	}
	data := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		uint8(w), uint8(w >> 8), uint8(h), uint8(h >> 8), depth, desc}
	for i := 0; i < w*h; i++ {
		data = append(data, c.B, c.G, c.R)
		if depth == 32 {
			data = append(data, 255)
		}
	}
	return data
}

func TestLoadTGA(t *testing.T) {
	dir := t.TempDir()
	want := color.RGBA{R: 200, G: 120, B: 40, A: 255}

	path := filepath.Join(dir, "shot.tga")
	writeFile(t, path, rawTGA(3, 2, 24, want))
	got, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != "tga" {
		t.Errorf("format = %q, want tga", format)
	}
	if got.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if c := got.RGBAAt(1, 1); c != want {
		t.Errorf("pixel = %v, want %v", c, want)
	}

	alpha := filepath.Join(dir, "alpha.tga")
	writeFile(t, alpha, rawTGA(3, 2, 32, want))
	if _, _, err := Load(alpha); !errors.Is(err, ErrUnsupportedPixelFormat) {
		t.Errorf("32-bit tga: err = %v, want ErrUnsupportedPixelFormat", err)
	}
}

func TestLoadSniffsContentNotExtension(t *testing.T) {
	// A PNG saved under a .tga name is still read as PNG.
	path := filepath.Join(t.TempDir(), "mislabelled.tga")
	writeFile(t, path, encodePNG(t, opaque(4, 4)))
	if _, format, err := Load(path); err != nil || format != "png" {
		t.Errorf("Load = %q, %v; want png", format, err)
	}
}

func TestLoadRejectsAlphaAndGray(t *testing.T) {
	translucent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	translucent.SetNRGBA(1, 1, color.NRGBA{R: 9, A: 100})
	gray := image.NewGray(image.Rect(0, 0, 4, 4))

	dir := t.TempDir()
	for name, img := range map[string]image.Image{"alpha.png": translucent, "gray.png": gray} {
		path := filepath.Join(dir, name)
		writeFile(t, path, encodePNG(t, img))
		if _, _, err := Load(path); !errors.Is(err, ErrUnsupportedPixelFormat) {
			t.Errorf("%s: err = %v, want ErrUnsupportedPixelFormat", name, err)
		}
	}
}

func TestLoadIOErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Load(filepath.Join(dir, "missing.png")); !errors.Is(err, ErrIO) {
		t.Errorf("missing file: err = %v, want ErrIO", err)
	}
	junk := filepath.Join(dir, "junk.png")
	writeFile(t, junk, []byte("not an image"))
	if _, _, err := Load(junk); !errors.Is(err, ErrIO) {
		t.Errorf("junk file: err = %v, want ErrIO", err)
	}
}

func TestOutputPaths(t *testing.T) {
	c, n := OutputPaths("shots/a.jpg", "", FormatPNG)
	if c != "shots/a.jpg_colors.png" || n != "shots/a.jpg_normals.png" {
		t.Errorf("OutputPaths = %q, %q", c, n)
	}
	c, n = OutputPaths("shots/a.jpg", "out", FormatWebP)
	if c != filepath.Join("out", "a.jpg_colors.webp") || n != filepath.Join("out", "a.jpg_normals.webp") {
		t.Errorf("OutputPaths with dir = %q, %q", c, n)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"png": FormatPNG, "WebP": FormatWebP, " png ": FormatPNG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("ParseFormat(gif) succeeded")
	}
}

func TestWriteAllPNG(t *testing.T) {
	dir := t.TempDir()
	colors := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	colors.SetNRGBA(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	normals := opaque(4, 4)
	cp, np := OutputPaths(filepath.Join(dir, "in.png"), "", FormatPNG)

	if err := WriteAll(FormatPNG, Output{cp, colors}, Output{np, normals}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	for _, p := range []string{cp, np} {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("open %s: %v", p, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if img.Bounds().Dx() != 4 {
			t.Errorf("%s width = %d", p, img.Bounds().Dx())
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("dir holds %d entries, want 2 (no temp files)", len(entries))
	}
}

func TestWriteAllWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x_colors.webp")
	if err := WriteAll(FormatWebP, Output{path, opaque(8, 8)}); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("not a WebP container: % x", data[:min(12, len(data))])
	}
}

func TestWriteAllRollsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, []byte("file, not a directory"))

	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(blocker, "bad.png")
	err := WriteAll(FormatPNG, Output{good, opaque(2, 2)}, Output{bad, opaque(2, 2)})
	if !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("dir = %v, want only the blocker", names)
	}
}

func TestFindInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"a.png", "b.JPG", "notes.txt", "a.png_colors.png", "a.png_normals.png",
		filepath.Join("sub", "c.tga"), filepath.Join(".cache", "d.png"),
	} {
		writeFile(t, filepath.Join(dir, name), nil)
	}
	got, err := FindInputs(dir)
	if err != nil {
		t.Fatalf("FindInputs: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.JPG"),
		filepath.Join(dir, "sub", "c.tga"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindInputs = %v, want %v", got, want)
	}
}
