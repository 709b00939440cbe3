package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"
)

// ManifestEntry represents one converted photograph in the output manifest.
type ManifestEntry struct {
	Input   string `json:"input"`
	Colors  string `json:"colors"`
	Normals string `json:"normals"`
	Box     string `json:"box"`
	Side    int    `json:"side"`
}

// WriteManifest writes the successful results as JSON. Paths are made
// relative to the manifest's directory when possible.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Input:   relTo(dir, r.Input),
			Colors:  relTo(dir, r.Colors),
			Normals: relTo(dir, r.Normals),
			Box:     r.Box,
			Side:    r.Side,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}

// WriteReport writes every result, failures included, as CSV.
func WriteReport(path string, results []Result) error {
	data, err := csvutil.Marshal(results)
	if err != nil {
		return fmt.Errorf("batch: encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write report %s: %w", path, err)
	}
	return nil
}

func relTo(dir, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	base, err := filepath.Abs(dir)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
