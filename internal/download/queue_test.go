package download

import (
	"testing"
	"time"

	"github.com/kestrelforge/javart/internal/catalog"
)

func TestQueue_AddReplacesOnKey(t *testing.T) {
	q := &Queue{}
	q.Add(PendingDownload{MajorVersion: 21, ImageType: catalog.ImageJRE, DownloadURL: "https://example.test/v1", CreatedAt: time.Unix(1, 0)})
	q.Add(PendingDownload{MajorVersion: 21, ImageType: catalog.ImageJRE, DownloadURL: "https://example.test/v2", CreatedAt: time.Unix(2, 0)})

	if len(q.Entries) != 1 {
		t.Fatalf("expected 1 entry after replace-on-key add, got %d", len(q.Entries))
	}
	if q.Entries[0].DownloadURL != "https://example.test/v2" {
		t.Errorf("expected the second add to replace the first, got %q", q.Entries[0].DownloadURL)
	}
}

func TestQueue_AddDistinguishesImageType(t *testing.T) {
	q := &Queue{}
	q.Add(PendingDownload{MajorVersion: 21, ImageType: catalog.ImageJRE})
	q.Add(PendingDownload{MajorVersion: 21, ImageType: catalog.ImageJDK})

	if len(q.Entries) != 2 {
		t.Fatalf("expected 2 distinct entries for jre vs jdk, got %d", len(q.Entries))
	}
}

func TestQueue_Remove(t *testing.T) {
	q := &Queue{}
	q.Add(PendingDownload{MajorVersion: 17, ImageType: catalog.ImageJDK})
	q.Add(PendingDownload{MajorVersion: 21, ImageType: catalog.ImageJDK})

	q.Remove(17, catalog.ImageJDK)

	if len(q.Entries) != 1 || q.Entries[0].MajorVersion != 21 {
		t.Fatalf("unexpected entries after remove: %+v", q.Entries)
	}
}
