// Package download implements the two transfer modes the install
// orchestrator relies on: a concurrent batch downloader for catalog assets
// in bulk, and a resumable single downloader for the one archive an
// install is actually waiting on.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kestrelforge/javart/internal/checksum"
	"github.com/kestrelforge/javart/internal/events"
	"github.com/kestrelforge/javart/internal/javaerr"
)

const batchConcurrency = 10

// Task is a single file to fetch as part of a batch.
type Task struct {
	URL      string
	DestPath string
	SHA1     string
	SHA256   string
}

// BatchResult summarizes the outcome of a batch download; individual
// failures never abort the batch.
type BatchResult struct {
	Succeeded int
	Failed    int
	Errors    []error
}

func newBatchClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3
	client.RetryWaitMin = 1 * time.Second
	client.RetryWaitMax = 10 * time.Second
	client.HTTPClient.Transport = &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	client.HTTPClient.Timeout = 10 * time.Minute
	return client
}

// DownloadBatch fetches every task concurrently, capped at 10 simultaneous
// transfers. A task whose destination already matches its declared
// checksum is skipped without a network round-trip.
func DownloadBatch(ctx context.Context, tasks []Task, sink events.Sink) *BatchResult {
	if sink == nil {
		sink = events.NoopSink{}
	}
	sink.OnDownloadStart(len(tasks))
	defer sink.OnDownloadComplete()

	if len(tasks) == 0 {
		return &BatchResult{}
	}

	client := newBatchClient()
	sem := make(chan struct{}, batchConcurrency)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failed    int
		errs      []error
	)

	for _, task := range tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			err := downloadOne(ctx, client, task, sink)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				errs = append(errs, fmt.Errorf("%s: %w", task.URL, err))
			} else {
				succeeded++
			}
		}(task)
	}

	wg.Wait()

	return &BatchResult{Succeeded: succeeded, Failed: failed, Errors: errs}
}

func downloadOne(ctx context.Context, client *retryablehttp.Client, task Task, sink events.Sink) error {
	name := filepath.Base(task.DestPath)

	if data, err := os.ReadFile(task.DestPath); err == nil {
		sha256Ptr, sha1Ptr := checksumPtrs(task)
		if checksum.Verify(data, sha256Ptr, sha1Ptr) && (task.SHA1 != "" || task.SHA256 != "") {
			sink.OnProgress(events.Progress{FileName: name, Status: events.StatusSkipped, Percentage: 100})
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(task.DestPath), 0o755); err != nil {
		return javaerr.Wrap(javaerr.IoError, "creating destination directory", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return javaerr.Wrap(javaerr.NetworkError, "building request", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return javaerr.Wrap(javaerr.NetworkError, "downloading", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return javaerr.New(javaerr.NetworkError, fmt.Sprintf("unexpected http status %d", resp.StatusCode))
	}

	totalBytes := resp.ContentLength
	if totalBytes < 0 {
		totalBytes = 0
	}

	tmpPath := task.DestPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return javaerr.Wrap(javaerr.IoError, "creating temp file", err)
	}

	var downloaded int64
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				f.Close()
				os.Remove(tmpPath)
				return javaerr.Wrap(javaerr.IoError, "writing file", writeErr)
			}
			downloaded += int64(n)
			sink.OnProgress(events.Progress{
				FileName:        name,
				DownloadedBytes: downloaded,
				TotalBytes:      totalBytes,
				Status:          events.StatusDownloading,
				Percentage:      percentage(downloaded, totalBytes),
			})
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			f.Close()
			os.Remove(tmpPath)
			return javaerr.Wrap(javaerr.NetworkError, "reading response", readErr)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return javaerr.Wrap(javaerr.IoError, "closing file", err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return javaerr.Wrap(javaerr.IoError, "reading downloaded file for verification", err)
	}
	sha256Ptr, sha1Ptr := checksumPtrs(task)
	if !checksum.Verify(data, sha256Ptr, sha1Ptr) {
		os.Remove(tmpPath)
		return javaerr.New(javaerr.ChecksumMismatch, fmt.Sprintf("checksum mismatch for %s", name))
	}

	if _, err := os.Stat(task.DestPath); err == nil {
		os.Remove(task.DestPath)
	}
	if err := os.Rename(tmpPath, task.DestPath); err != nil {
		os.Remove(tmpPath)
		return javaerr.Wrap(javaerr.IoError, "renaming into place", err)
	}

	sink.OnProgress(events.Progress{FileName: name, Status: events.StatusCompleted, Percentage: 100})

	return nil
}

func checksumPtrs(task Task) (*string, *string) {
	var sha256Ptr, sha1Ptr *string
	if task.SHA256 != "" {
		sha256Ptr = &task.SHA256
	}
	if task.SHA1 != "" {
		sha1Ptr = &task.SHA1
	}
	return sha256Ptr, sha1Ptr
}

func percentage(downloaded, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(downloaded) / float64(total) * 100
}
