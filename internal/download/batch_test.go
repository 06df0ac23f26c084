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

func TestDownloadBatch_Empty(t *testing.T) {
	result := DownloadBatch(context.Background(), nil, nil)
	if result.Succeeded != 0 || result.Failed != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestDownloadBatch_DownloadsAndVerifies(t *testing.T) {
	content := []byte("jdk archive contents")
	sum := checksum.SHA256(content)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "jdk.tar.gz")

	result := DownloadBatch(context.Background(), []Task{
		{URL: server.URL, DestPath: dest, SHA256: sum},
	}, nil)

	if result.Failed != 0 {
		t.Fatalf("expected no failures, got %+v (errors: %v)", result, result.Errors)
	}
	if result.Succeeded != 1 {
		t.Fatalf("expected 1 success, got %d", result.Succeeded)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("expected destination file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestDownloadBatch_ChecksumMismatchIsPerFileFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("corrupt content"))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "jdk.tar.gz")

	result := DownloadBatch(context.Background(), []Task{
		{URL: server.URL, DestPath: dest, SHA256: "deadbeef"},
	}, nil)

	if result.Succeeded != 0 || result.Failed != 1 {
		t.Fatalf("expected 1 failure, got %+v", result)
	}
}

func TestDownloadBatch_SkipsWhenChecksumAlreadyMatches(t *testing.T) {
	content := []byte("already here")
	sum := checksum.SHA256(content)

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(content)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "jdk.tar.gz")
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	result := DownloadBatch(context.Background(), []Task{
		{URL: server.URL, DestPath: dest, SHA256: sum},
	}, nil)

	if result.Succeeded != 1 || result.Failed != 0 {
		t.Fatalf("expected 1 success (skip), got %+v", result)
	}
	if hits != 0 {
		t.Errorf("expected no network hit on checksum match, got %d", hits)
	}
}

func TestDownloadBatch_IndividualFailureDoesNotAbortOthers(t *testing.T) {
	good := []byte("ok content")
	sum := checksum.SHA256(good)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write(good)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	result := DownloadBatch(context.Background(), []Task{
		{URL: server.URL + "/ok", DestPath: filepath.Join(dir, "ok.bin"), SHA256: sum},
		{URL: server.URL + "/missing", DestPath: filepath.Join(dir, "missing.bin")},
	}, nil)

	if result.Succeeded != 1 || result.Failed != 1 {
		t.Fatalf("expected 1 success + 1 failure, got %+v", result)
	}
}
