// Package atomicio provides crash-safe file writes: write to a temp file,
// then rename over the destination, so a write that is interrupted never
// leaves a half-written file in its place.
package atomicio

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// WriteFile creates any missing parent directories, writes data to
// "path.tmp", removes any existing file at path, then renames the temp file
// into place. On any failure, either the previous contents of path survive
// untouched or no file exists at all.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			os.Remove(tmpPath)
			return err
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}

// StripUNCPrefix removes the `\\?\` prefix Windows adds to canonicalized
// paths. It is a no-op on every other platform.
func StripUNCPrefix(path string) string {
	if runtime.GOOS != "windows" {
		return path
	}
	return strings.TrimPrefix(path, `\\?\`)
}
