// Package archive extracts zip and tar.gz archives into a target directory,
// rejecting path-traversal entries and preserving Unix file modes. The
// underlying archive/zip, archive/tar, and compress/gzip decoders are treated
// as black-box libraries: javart only adds the safety and layout contract
// around them.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kestrelforge/javart/internal/atomicio"
	"github.com/kestrelforge/javart/internal/javaerr"
)

// sanitizeRelative rejects absolute paths and parent-directory traversal,
// returning the cleaned relative path joined with the OS path separator.
// An empty result
// means the entry should be skipped (it names no real path, e.g. "./").
func sanitizeRelative(name string) (string, error) {
	name = filepath.ToSlash(name)
	if name == "" {
		return "", nil
	}

	parts := strings.Split(name, "/")
	var safe []string
	for _, p := range parts {
		switch p {
		case "", ".":
			continue
		case "..":
			return "", javaerr.New(javaerr.InvalidArchive, fmt.Sprintf("unsafe archive entry path detected (parent traversal): %s", name))
		default:
			safe = append(safe, p)
		}
	}

	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", javaerr.New(javaerr.InvalidArchive, fmt.Sprintf("unsafe archive entry path detected (absolute path): %s", name))
	}

	return filepath.Join(safe...), nil
}

// ExtractZip extracts every entry of the zip archive at src into dst.
// Entries resolving inside a META-INF directory are skipped. Path-traversal
// entries are fatal.
func ExtractZip(src, dst string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return javaerr.New(javaerr.InvalidArchive, fmt.Sprintf("failed to open zip %s: %v", src, err))
	}
	defer r.Close()

	for _, f := range r.File {
		rel, err := sanitizeRelative(f.Name)
		if err != nil {
			return err
		}
		if rel == "" {
			continue
		}
		if strings.Contains(rel, "META-INF") {
			continue
		}

		target := filepath.Join(dst, rel)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to create dir %s: %v", target, err))
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to create parent dir: %v", err))
		}

		rc, err := f.Open()
		if err != nil {
			return javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to read zip entry %s: %v", f.Name, err))
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to read zip entry %s: %v", f.Name, err))
		}
		if err := atomicio.WriteFile(target, data); err != nil {
			return javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to write %s: %v", target, err))
		}
		if runtime.GOOS != "windows" {
			_ = os.Chmod(target, f.Mode())
		}
	}

	return nil
}

// ExtractTarGz extracts every entry of the tar.gz archive at src into dst
// and returns the name of the first path component seen, i.e. the
// archive's top-level directory (e.g. "jdk-21.0.5+11-jre"). Fails with
// InvalidArchive if the archive cannot be opened/parsed, or if no top-level
// component is ever found (an effectively empty archive).
func ExtractTarGz(src, dst string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", javaerr.New(javaerr.InvalidArchive, fmt.Sprintf("failed to open tar.gz %s: %v", src, err))
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return "", javaerr.New(javaerr.InvalidArchive, fmt.Sprintf("failed to read gzip stream: %v", err))
	}
	defer gzr.Close()

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to create extract directory: %v", err))
	}

	tr := tar.NewReader(gzr)
	var topLevelDir string

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", javaerr.New(javaerr.InvalidArchive, fmt.Sprintf("malformed tar header: %v", err))
		}

		rel, err := sanitizeRelative(header.Name)
		if err != nil {
			return "", err
		}
		if rel == "" {
			continue
		}

		if topLevelDir == "" {
			first := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
			if first != "" {
				topLevelDir = first
			}
		}

		target := filepath.Join(dst, rel)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to create directory %s: %v", target, err))
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to create parent dir: %v", err))
			}
			data, err := io.ReadAll(tr)
			if err != nil {
				return "", javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to read tar entry %s: %v", header.Name, err))
			}
			if err := atomicio.WriteFile(target, data); err != nil {
				return "", javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to write %s: %v", target, err))
			}
			if runtime.GOOS != "windows" {
				_ = os.Chmod(target, os.FileMode(header.Mode))
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", javaerr.New(javaerr.ExtractionFailed, fmt.Sprintf("failed to create parent dir: %v", err))
			}
			_ = os.Symlink(header.Linkname, target)
		}
	}

	if topLevelDir == "" {
		return "", javaerr.New(javaerr.InvalidArchive, "archive appears to be empty: no top-level directory found")
	}

	return topLevelDir, nil
}
