package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrelforge/javart/internal/checksum"
)

func TestDownloadWithResume_FullDownload(t *testing.T) {
	content := []byte("the full archive contents")
	sum := checksum.SHA256(content)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "jdk.tar.gz")

	ResetCancel()
	err := DownloadWithResume(context.Background(), server.URL, dest, &sum, nil, int64(len(content)), nil)
	if err != nil {
		t.Fatalf("DownloadWithResume failed: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != string(content) {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestDownloadWithResume_ResumesFromPartialFile(t *testing.T) {
	full := []byte("0123456789ABCDEFGHIJ")
	sum := checksum.SHA256(full)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rangeHeader := r.Header.Get("Range")
		if rangeHeader == "" {
			w.Write(full)
			return
		}
		var start int
		fmtSscanRange(rangeHeader, &start)
		w.WriteHeader(http.StatusPartialContent)
		w.Write(full[start:])
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "jdk.tar.gz")
	if err := os.WriteFile(dest, full[:10], 0o644); err != nil {
		t.Fatalf("seed partial file: %v", err)
	}

	ResetCancel()
	err := DownloadWithResume(context.Background(), server.URL, dest, &sum, nil, int64(len(full)), nil)
	if err != nil {
		t.Fatalf("DownloadWithResume failed: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != string(full) {
		t.Errorf("content mismatch after resume: %q, want %q", data, full)
	}
}

func TestDownloadWithResume_ChecksumMismatchFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("wrong content"))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "jdk.tar.gz")
	bad := "deadbeef"

	ResetCancel()
	err := DownloadWithResume(context.Background(), server.URL, dest, &bad, nil, 0, nil)
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestDownloadWithResume_CancellationStopsChunkLoop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, _ := w.(http.Flusher)
		for i := 0; i < 5; i++ {
			w.Write([]byte("chunk"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "jdk.tar.gz")

	RequestCancel()
	defer ResetCancel()

	err := DownloadWithResume(context.Background(), server.URL, dest, nil, nil, 0, nil)
	if err == nil {
		t.Fatal("expected cancellation to produce an error")
	}
}

// fmtSscanRange parses a "bytes=N-" Range header into start.
func fmtSscanRange(header string, start *int) {
	var n int
	for i := len("bytes="); i < len(header); i++ {
		c := header[i]
		if c == '-' {
			break
		}
		n = n*10 + int(c-'0')
	}
	*start = n
}
