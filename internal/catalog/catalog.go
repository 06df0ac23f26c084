// Package catalog defines the provider-catalog data model and a
// file-backed TTL cache shared by every Provider implementation.
package catalog

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kestrelforge/javart/internal/appdata"
	"github.com/kestrelforge/javart/internal/applog"
	"github.com/kestrelforge/javart/internal/atomicio"
)

// ImageType distinguishes a JRE from a full JDK distribution.
type ImageType string

const (
	ImageJRE ImageType = "jre"
	ImageJDK ImageType = "jdk"
)

// ReleaseInfo is the catalog's view of one (major, imageType) release.
type ReleaseInfo struct {
	MajorVersion int       `json:"majorVersion"`
	ImageType    ImageType `json:"imageType"`
	Version      string    `json:"version"`
	ReleaseName  string    `json:"releaseName"`
	ReleaseDate  string    `json:"releaseDate,omitempty"`
	FileSize     int64     `json:"fileSize"`
	Checksum     string    `json:"checksum,omitempty"`
	DownloadURL  string    `json:"downloadUrl"`
	IsLTS        bool      `json:"isLts"`
	IsAvailable  bool      `json:"isAvailable"`
	Architecture string    `json:"architecture"`
	ArchiveFile  string    `json:"archiveFile"`
}

// DownloadInfo is the result of a single, non-retried asset lookup.
type DownloadInfo = ReleaseInfo

// Catalog is the cached snapshot of everything a provider currently offers.
type Catalog struct {
	Releases          []ReleaseInfo `json:"releases"`
	AvailableVersions []int         `json:"availableVersions"`
	LTSVersions       []int         `json:"ltsVersions"`
	CachedAt          int64         `json:"cachedAt"`
}

const freshnessWindow = 24 * 60 * 60 // seconds

// IsFresh reports whether the catalog was cached within the last 24 hours.
func (c *Catalog) IsFresh(now time.Time) bool {
	return now.Unix()-c.CachedAt < freshnessWindow
}

// LoadCache reads the on-disk catalog cache. It returns (nil, false) when
// the file is missing, corrupt, or stale — all three are treated purely as
// a cache miss, never as an error the caller must handle.
func LoadCache(now time.Time) (*Catalog, bool) {
	data, err := os.ReadFile(appdata.CatalogCachePath())
	if err != nil {
		return nil, false
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		applog.Warnf("java_catalog_cache.json is corrupt, treating as a miss: %v", err)
		return nil, false
	}

	if !c.IsFresh(now) {
		return nil, false
	}

	return &c, true
}

// SaveCache persists the catalog atomically. Failures are logged, never
// propagated: a failed cache write must not fail the catalog fetch that
// produced it.
func SaveCache(c *Catalog) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		applog.Warnf("failed to encode catalog cache: %v", err)
		return
	}
	if err := atomicio.WriteFile(appdata.CatalogCachePath(), data); err != nil {
		applog.Warnf("failed to persist catalog cache: %v", err)
	}
}
