package install

import (
	"context"

	"github.com/kestrelforge/javart/internal/applog"
	"github.com/kestrelforge/javart/internal/catalog"
	"github.com/kestrelforge/javart/internal/detect"
	"github.com/kestrelforge/javart/internal/download"
	"github.com/kestrelforge/javart/internal/events"
)

// ResumeResult accumulates the outcome of replaying every pending-queue
// entry through DownloadAndInstall.
type ResumeResult struct {
	SuccessfulInstallations []detect.Installation
	FailedDownloads         []FailedDownload
	TotalPending            int
}

// FailedDownload pairs a pending entry with the error it failed with.
type FailedDownload struct {
	MajorVersion int
	Error        error
}

// ResumePendingDownloads re-runs the install for every entry in the
// persisted queue, accumulating successes and failures. Used on startup to
// recover from a crash mid-install.
func (o *Orchestrator) ResumePendingDownloads(ctx context.Context, sink events.Sink) ResumeResult {
	queue := download.LoadQueue()
	pending := queue.List()

	result := ResumeResult{TotalPending: len(pending)}

	for _, entry := range pending {
		imageType := entry.ImageType
		if imageType != catalog.ImageJRE && imageType != catalog.ImageJDK {
			applog.Warnf("pending download for java %d has unknown image_type %q, defaulting to jre", entry.MajorVersion, imageType)
			imageType = catalog.ImageJRE
		}

		inst, err := o.DownloadAndInstall(ctx, entry.MajorVersion, imageType, sink)
		if err != nil {
			result.FailedDownloads = append(result.FailedDownloads, FailedDownload{MajorVersion: entry.MajorVersion, Error: err})
			continue
		}
		result.SuccessfulInstallations = append(result.SuccessfulInstallations, *inst)
	}

	return result
}
