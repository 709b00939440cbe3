package texture

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var inputExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true,
	".tga": true, ".tif": true, ".tiff": true, ".webp": true,
}

// IsOutput reports whether path looks like a texture this tool wrote.
func IsOutput(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, "_colors") || strings.HasSuffix(stem, "_normals")
}

// FindInputs walks dir and returns every photograph it may convert, sorted.
// Previously generated textures are skipped so reruns do not feed on
// their own output.
func FindInputs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !inputExts[strings.ToLower(filepath.Ext(path))] || IsOutput(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", ErrIO, dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
