package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kestrelforge/javart/internal/javaerr"
)

func newTestProvider(baseURL string) *AdoptiumProvider {
	p := NewAdoptiumProvider()
	p.baseURL = baseURL
	p.client.HTTPClient.Timeout = 5 * time.Second
	return p
}

func TestFetchCatalog_RetriesOn503(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	_, err := p.FetchCatalog(context.Background(), true)
	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if !javaerr.Is(err, javaerr.NetworkError) {
		t.Errorf("expected NetworkError, got %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != retryMaxAttempts {
		t.Errorf("server hit %d times, want %d", got, retryMaxAttempts)
	}
}

func TestFetchCatalog_NoRetryOnParseError(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{invalid"))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	_, err := p.FetchCatalog(context.Background(), true)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if !javaerr.Is(err, javaerr.SerializationError) {
		t.Errorf("expected SerializationError, got %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Errorf("server hit %d times, want exactly 1 (no retry on parse error)", got)
	}
}

func TestFetchCatalog_SuccessFansOutAssetQueries(t *testing.T) {
	var releaseHits, assetHits int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/info/available_releases":
			atomic.AddInt64(&releaseHits, 1)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"available_releases":[17,21],"available_lts_releases":[17,21]}`))
		default:
			atomic.AddInt64(&assetHits, 1)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[{"binary":{"os":"linux","architecture":"x64","image_type":"jdk","package":{"name":"jdk.tar.gz","link":"https://example.test/jdk.tar.gz","size":12345,"checksum":"deadbeef"},"updated_at":"2024-01-01"},"release_name":"jdk-21.0.1+12","version":{"major":21,"semver":"21.0.1+12"}}]`))
		}
	}))
	defer server.Close()

	p := newTestProvider(server.URL)

	cat, err := p.FetchCatalog(context.Background(), true)
	if err != nil {
		t.Fatalf("FetchCatalog failed: %v", err)
	}
	if len(cat.Releases) != 4 {
		t.Fatalf("expected 4 releases (2 majors x 2 image types), got %d", len(cat.Releases))
	}
	if atomic.LoadInt64(&releaseHits) != 1 {
		t.Errorf("expected exactly 1 hit on available_releases, got %d", releaseHits)
	}
	if atomic.LoadInt64(&assetHits) != 4 {
		t.Errorf("expected exactly 4 asset hits, got %d", assetHits)
	}
}

func TestCatalog_IsFresh(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := &Catalog{CachedAt: now.Unix()}

	if !c.IsFresh(now.Add(1 * time.Hour)) {
		t.Error("expected catalog cached 1h ago to still be fresh")
	}
	if c.IsFresh(now.Add(25 * time.Hour)) {
		t.Error("expected catalog cached 25h ago to be stale")
	}
}
