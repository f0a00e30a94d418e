package common

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeFilename replaces characters that are unsafe in filenames on any
// of the supported platforms. An empty result falls back to "unknown".
func SanitizeFilename(name string) string {
	replaced := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	replaced = strings.TrimSpace(replaced)
	if replaced == "" {
		return "unknown"
	}
	return replaced
}

// BuildZipArchive writes the given files into a zip at outPath, flattening
// paths to their base names. Missing input files are an error.
func BuildZipArchive(paths []string, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	for _, p := range paths {
		in, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("archive input %s: %w", p, err)
		}
		w, err := zw.Create(filepath.Base(p))
		if err != nil {
			in.Close()
			return err
		}
		if _, err := io.Copy(w, in); err != nil {
			in.Close()
			return err
		}
		in.Close()
	}
	return zw.Close()
}
