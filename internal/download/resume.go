package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kestrelforge/javart/internal/checksum"
	"github.com/kestrelforge/javart/internal/events"
	"github.com/kestrelforge/javart/internal/javaerr"
)

// cancelFlag is the process-wide cancellation signal the resumable
// downloader checks at chunk boundaries. Batch downloads ignore it; once a
// batch task has started it always runs to completion.
var cancelFlag int32

// RequestCancel sets the process-scoped cancellation flag. The next chunk
// boundary in an in-flight resumable download will observe it and abort.
func RequestCancel() {
	atomic.StoreInt32(&cancelFlag, 1)
}

// ResetCancel clears the cancellation flag, call before starting a new
// resumable download.
func ResetCancel() {
	atomic.StoreInt32(&cancelFlag, 0)
}

func isCancelled() bool {
	return atomic.LoadInt32(&cancelFlag) == 1
}

// DownloadWithResume fetches url into dest, resuming from any partial file
// already on disk via a range request. On completion the result is
// checksum-verified against sha256 (authoritative) or sha1. Cancellation is
// cooperative: RequestCancel causes the next chunk-boundary check to emit a
// Cancelled progress event and abort with a "download cancelled by user"
// error of Kind Other, leaving the partial file in place for a future
// resume attempt.
func DownloadWithResume(ctx context.Context, url, dest string, sha256, sha1 *string, totalSize int64, sink events.Sink) error {
	if sink == nil {
		sink = events.NoopSink{}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return javaerr.Wrap(javaerr.IoError, "creating destination directory", err)
	}

	var startOffset int64
	if info, err := os.Stat(dest); err == nil {
		startOffset = info.Size()
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3
	client.HTTPClient.Timeout = 30 * time.Minute

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return javaerr.Wrap(javaerr.NetworkError, "building request", err)
	}
	if startOffset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", startOffset))
	}

	resp, err := client.Do(req)
	if err != nil {
		return javaerr.Wrap(javaerr.NetworkError, "downloading", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return javaerr.New(javaerr.NetworkError, fmt.Sprintf("unexpected http status %d", resp.StatusCode))
	}

	flags := os.O_CREATE | os.O_WRONLY
	if resp.StatusCode == http.StatusPartialContent {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
		startOffset = 0
	}

	f, err := os.OpenFile(dest, flags, 0o644)
	if err != nil {
		return javaerr.Wrap(javaerr.IoError, "opening destination file", err)
	}

	name := filepath.Base(dest)
	downloaded := startOffset
	buf := make([]byte, 64*1024)

	for {
		if isCancelled() {
			f.Close()
			sink.OnProgress(events.Progress{FileName: name, DownloadedBytes: downloaded, TotalBytes: totalSize, Status: events.StatusCancelled})
			return javaerr.New(javaerr.Other, "download cancelled by user")
		}

		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				f.Close()
				return javaerr.Wrap(javaerr.IoError, "writing file", writeErr)
			}
			downloaded += int64(n)
			sink.OnProgress(events.Progress{
				FileName:        name,
				DownloadedBytes: downloaded,
				TotalBytes:      totalSize,
				Status:          events.StatusDownloading,
				Percentage:      percentage(downloaded, totalSize),
			})
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			return javaerr.Wrap(javaerr.NetworkError, "reading response", readErr)
		}
	}

	if err := f.Close(); err != nil {
		return javaerr.Wrap(javaerr.IoError, "closing file", err)
	}

	sink.OnProgress(events.Progress{FileName: name, DownloadedBytes: downloaded, TotalBytes: totalSize, Status: events.StatusVerifying, Percentage: 100})

	data, err := os.ReadFile(dest)
	if err != nil {
		return javaerr.Wrap(javaerr.IoError, "reading file for verification", err)
	}
	if !checksum.Verify(data, sha256, sha1) {
		return javaerr.New(javaerr.ChecksumMismatch, fmt.Sprintf("checksum mismatch for %s", name))
	}

	return nil
}
