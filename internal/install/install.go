// Package install composes the catalog, download, and archive subsystems
// into the single DownloadAndInstall operation that turns a (major,
// imageType) request into a validated, on-disk JavaInstallation.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/kestrelforge/javart/internal/appdata"
	"github.com/kestrelforge/javart/internal/archive"
	"github.com/kestrelforge/javart/internal/atomicio"
	"github.com/kestrelforge/javart/internal/catalog"
	"github.com/kestrelforge/javart/internal/checksum"
	"github.com/kestrelforge/javart/internal/detect"
	"github.com/kestrelforge/javart/internal/download"
	"github.com/kestrelforge/javart/internal/events"
	"github.com/kestrelforge/javart/internal/javaerr"
)

// Orchestrator drives the install pipeline for a single provider.
type Orchestrator struct {
	Provider    catalog.Provider
	InstallBase string
}

// NewOrchestrator builds an Orchestrator rooted at javart's managed Java
// directory, {app_data}/java.
func NewOrchestrator(provider catalog.Provider) *Orchestrator {
	return &Orchestrator{Provider: provider, InstallBase: appdata.ManagedJavaDir()}
}

// DownloadAndInstall resolves, downloads, extracts, and validates the
// requested Java release, returning the resulting Installation. A pending
// queue entry is registered before the download starts and only removed on
// full success, so a crash mid-install can be retried via
// ResumePendingDownloads.
func (o *Orchestrator) DownloadAndInstall(ctx context.Context, major int, imageType catalog.ImageType, sink events.Sink) (*detect.Installation, error) {
	if sink == nil {
		sink = events.NoopSink{}
	}

	release, err := o.Provider.FetchRelease(ctx, major, imageType)
	if err != nil {
		return nil, err
	}
	if !release.IsAvailable {
		return nil, javaerr.New(javaerr.NotFound, fmt.Sprintf("no available release for java %d %s", major, imageType))
	}

	versionDir := filepath.Join(o.InstallBase, fmt.Sprintf("%s-%d-%s", o.Provider.InstallPrefix(), major, imageType))

	if err := os.MkdirAll(o.InstallBase, 0o755); err != nil {
		return nil, javaerr.Wrap(javaerr.IoError, "creating install base", err)
	}

	queue := download.LoadQueue()
	queue.Add(download.PendingDownload{
		MajorVersion: major,
		ImageType:    imageType,
		DownloadURL:  release.DownloadURL,
		ArchiveFile:  release.ArchiveFile,
		FileSize:     release.FileSize,
		Checksum:     release.Checksum,
		InstallDir:   versionDir,
		CreatedAt:    time.Now(),
	})
	if err := queue.Save(); err != nil {
		return nil, javaerr.Wrap(javaerr.IoError, "persisting pending download", err)
	}

	archivePath := filepath.Join(o.InstallBase, release.ArchiveFile)

	needsDownload := true
	if data, statErr := os.ReadFile(archivePath); statErr == nil && release.Checksum != "" {
		if checksum.Verify(data, &release.Checksum, nil) {
			needsDownload = false
		}
	}

	if needsDownload {
		var checksumPtr *string
		if release.Checksum != "" {
			checksumPtr = &release.Checksum
		}
		download.ResetCancel()
		if err := download.DownloadWithResume(ctx, release.DownloadURL, archivePath, checksumPtr, nil, release.FileSize, sink); err != nil {
			return nil, err
		}
	}

	sink.OnProgress(events.Progress{FileName: release.ArchiveFile, Status: events.StatusExtracting, Percentage: 100})

	if _, err := os.Stat(versionDir); err == nil {
		if err := os.RemoveAll(versionDir); err != nil {
			return nil, javaerr.Wrap(javaerr.IoError, "removing stale install directory", err)
		}
	}

	var installedDir string
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz") || strings.HasSuffix(archivePath, ".tgz"):
		topLevel, err := archive.ExtractTarGz(archivePath, versionDir)
		if err != nil {
			return nil, err
		}
		installedDir = filepath.Join(versionDir, topLevel)
	case strings.HasSuffix(archivePath, ".zip"):
		if err := archive.ExtractZip(archivePath, versionDir); err != nil {
			return nil, err
		}
		sub, err := singleSubdirectory(versionDir)
		if err != nil {
			return nil, err
		}
		installedDir = sub
	default:
		return nil, javaerr.New(javaerr.InvalidArchive, "unsupported archive format")
	}

	javaBin := javaBinPath(installedDir)
	javaBin = atomicio.StripUNCPrefix(javaBin)
	if real, err := filepath.EvalSymlinks(javaBin); err == nil {
		javaBin = real
	}

	inst := detect.Probe(javaBin, detect.SourceManaged)
	if inst == nil {
		return nil, javaerr.New(javaerr.VerificationFailed, fmt.Sprintf("installed java at %s failed validation", javaBin))
	}

	os.Remove(archivePath)
	queue.Remove(major, imageType)
	if err := queue.Save(); err != nil {
		return nil, javaerr.Wrap(javaerr.IoError, "updating pending download queue", err)
	}

	sink.OnProgress(events.Progress{FileName: release.ArchiveFile, Status: events.StatusCompleted, Percentage: 100})

	return inst, nil
}

func javaBinPath(home string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Contents", "Home", "bin", "java")
	case "windows":
		return filepath.Join(home, "bin", "java.exe")
	default:
		return filepath.Join(home, "bin", "java")
	}
}

// singleSubdirectory returns the one immediate subdirectory of dir, failing
// with InvalidArchive if there is not exactly one.
func singleSubdirectory(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", javaerr.Wrap(javaerr.InvalidArchive, "reading extracted directory", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}

	if len(dirs) != 1 {
		return "", javaerr.New(javaerr.InvalidArchive, fmt.Sprintf("expected exactly one top-level directory in archive, found %d", len(dirs)))
	}

	return filepath.Join(dir, dirs[0]), nil
}
