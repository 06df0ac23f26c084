// Package catalog: AdoptiumProvider talks to an Adoptium-shaped REST API
// (GA release listing plus per-major asset lookups) the same way the
// teacher's Downloader talked to Adoptium, generalized to every major
// version/image-type pair instead of one hardcoded release.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kestrelforge/javart/internal/applog"
	"github.com/kestrelforge/javart/internal/javaerr"
)

const (
	defaultBaseURL    = "https://api.adoptium.net/v3"
	assetFetchPermits = 6
	retryMaxAttempts  = 4 // 1 initial + 3 retries
	retryBaseDelay    = 300 * time.Millisecond
)

// AdoptiumProvider implements Provider against the real Adoptium API.
type AdoptiumProvider struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewAdoptiumProvider constructs a provider with a disabled built-in retry
// loop — javart implements its own backoff/attempt-count policy on top of
// retryablehttp's connection-reuse-friendly transport.
func NewAdoptiumProvider() *AdoptiumProvider {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 0
	client.HTTPClient.Timeout = 60 * time.Second

	return &AdoptiumProvider{baseURL: defaultBaseURL, client: client}
}

func (p *AdoptiumProvider) ProviderName() string { return "adoptium" }

func (p *AdoptiumProvider) OSName() string {
	switch runtime.GOOS {
	case "darwin":
		return "mac"
	case "windows":
		return "windows"
	case "linux":
		if _, err := os.Stat("/etc/alpine-release"); err == nil {
			return "alpine-linux"
		}
		return "linux"
	default:
		return "linux"
	}
}

func (p *AdoptiumProvider) ArchName() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x64"
	case "arm64":
		return "aarch64"
	case "386":
		return "x86"
	case "arm":
		return "arm"
	default:
		return "x64"
	}
}

func (p *AdoptiumProvider) InstallPrefix() string { return "temurin" }

type availableReleasesResponse struct {
	AvailableReleases        []int `json:"available_releases"`
	AvailableLTSReleases     []int `json:"available_lts_releases"`
	MostRecentLTS            *int  `json:"most_recent_lts"`
	MostRecentFeatureRelease *int  `json:"most_recent_feature_release"`
}

type assetResponse struct {
	Binary struct {
		OS           string `json:"os"`
		Architecture string `json:"architecture"`
		ImageType    string `json:"image_type"`
		Package      struct {
			Name     string `json:"name"`
			Link     string `json:"link"`
			Size     int64  `json:"size"`
			Checksum string `json:"checksum"`
		} `json:"package"`
		UpdatedAt string `json:"updated_at"`
	} `json:"binary"`
	ReleaseName string `json:"release_name"`
	Version     struct {
		Major          int    `json:"major"`
		Minor          int    `json:"minor"`
		Security       int    `json:"security"`
		Semver         string `json:"semver"`
		OpenJDKVersion string `json:"openjdk_version"`
	} `json:"version"`
}

// doWithRetry performs a GET with the exact retry policy javart specifies:
// up to 4 total attempts, sleeping base*2^attempt between them, retrying on
// both transport errors and non-success status codes. JSON decoding is the
// caller's responsibility and is never retried here.
func (p *AdoptiumProvider) doWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < retryMaxAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, javaerr.Wrap(javaerr.NetworkError, "building request", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = err
			applog.Debugf("catalog request attempt %d failed: %v", attempt+1, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("http status %d", resp.StatusCode)
			applog.Debugf("catalog request attempt %d got status %d", attempt+1, resp.StatusCode)
			continue
		}
		if readErr != nil {
			lastErr = readErr
			continue
		}

		return body, nil
	}

	return nil, javaerr.Wrap(javaerr.NetworkError, "exhausted retries fetching catalog", lastErr)
}

func (p *AdoptiumProvider) assetURL(major int, imageType ImageType) string {
	return fmt.Sprintf("%s/assets/latest/%d/hotspot?os=%s&architecture=%s&image_type=%s",
		p.baseURL, major, p.OSName(), p.ArchName(), imageType)
}

// FetchCatalog loads the TTL cache on a non-forced refresh; otherwise it
// fetches the release index, then fans out an asset query per
// (major, imageType) pair bounded to assetFetchPermits concurrent requests.
func (p *AdoptiumProvider) FetchCatalog(ctx context.Context, forceRefresh bool) (*Catalog, error) {
	now := time.Now()

	if !forceRefresh {
		if cached, ok := LoadCache(now); ok {
			return cached, nil
		}
	}

	body, err := p.doWithRetry(ctx, fmt.Sprintf("%s/info/available_releases", p.baseURL))
	if err != nil {
		return nil, err
	}

	var releases availableReleasesResponse
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, javaerr.Wrap(javaerr.SerializationError, "decoding available_releases", err)
	}

	type job struct {
		major     int
		imageType ImageType
	}

	var jobs []job
	for _, major := range releases.AvailableReleases {
		jobs = append(jobs, job{major, ImageJRE}, job{major, ImageJDK})
	}

	sem := make(chan struct{}, assetFetchPermits)
	results := make([]ReleaseInfo, len(jobs))
	var wg sync.WaitGroup

	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			info, err := p.fetchAssetOnce(ctx, j.major, j.imageType)
			if err != nil {
				applog.Debugf("asset fetch failed for %d/%s: %v", j.major, j.imageType, err)
				results[i] = ReleaseInfo{
					MajorVersion: j.major,
					ImageType:    j.imageType,
					Version:      fmt.Sprintf("%d.x", j.major),
					IsAvailable:  false,
					FileSize:     0,
					DownloadURL:  "",
				}
				return
			}
			results[i] = *info
		}(i, j)
	}

	wg.Wait()

	ltsSet := make(map[int]bool, len(releases.AvailableLTSReleases))
	for _, v := range releases.AvailableLTSReleases {
		ltsSet[v] = true
	}
	for i := range results {
		results[i].IsLTS = ltsSet[results[i].MajorVersion]
	}

	catalogResult := &Catalog{
		Releases:          results,
		AvailableVersions: releases.AvailableReleases,
		LTSVersions:       releases.AvailableLTSReleases,
		CachedAt:          now.Unix(),
	}

	SaveCache(catalogResult)

	return catalogResult, nil
}

func (p *AdoptiumProvider) fetchAssetOnce(ctx context.Context, major int, imageType ImageType) (*ReleaseInfo, error) {
	body, err := p.doWithRetry(ctx, p.assetURL(major, imageType))
	if err != nil {
		return nil, err
	}

	var assets []assetResponse
	if err := json.Unmarshal(body, &assets); err != nil {
		return nil, javaerr.Wrap(javaerr.SerializationError, "decoding asset response", err)
	}
	if len(assets) == 0 {
		return nil, javaerr.New(javaerr.NotFound, "no assets in response")
	}

	asset := assets[0]
	return &ReleaseInfo{
		MajorVersion: major,
		ImageType:    imageType,
		Version:      asset.Version.Semver,
		ReleaseName:  asset.ReleaseName,
		ReleaseDate:  asset.Binary.UpdatedAt,
		FileSize:     asset.Binary.Package.Size,
		Checksum:     asset.Binary.Package.Checksum,
		DownloadURL:  asset.Binary.Package.Link,
		IsAvailable:  true,
		Architecture: asset.Binary.Architecture,
		ArchiveFile:  asset.Binary.Package.Name,
	}, nil
}

// FetchRelease performs a single, non-retried asset lookup.
func (p *AdoptiumProvider) FetchRelease(ctx context.Context, major int, imageType ImageType) (*DownloadInfo, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, p.assetURL(major, imageType), nil)
	if err != nil {
		return nil, javaerr.Wrap(javaerr.NetworkError, "building request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, javaerr.Wrap(javaerr.NetworkError, "fetching release", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, javaerr.New(javaerr.NetworkError, fmt.Sprintf("http status %d", resp.StatusCode))
	}

	var assets []assetResponse
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		return nil, javaerr.Wrap(javaerr.SerializationError, "decoding asset response", err)
	}
	if len(assets) == 0 {
		return nil, javaerr.New(javaerr.NotFound, fmt.Sprintf("no release found for java %d %s", major, imageType))
	}

	asset := assets[0]
	return &DownloadInfo{
		MajorVersion: major,
		ImageType:    imageType,
		Version:      asset.Version.Semver,
		ReleaseName:  asset.ReleaseName,
		ReleaseDate:  asset.Binary.UpdatedAt,
		FileSize:     asset.Binary.Package.Size,
		Checksum:     asset.Binary.Package.Checksum,
		DownloadURL:  asset.Binary.Package.Link,
		IsAvailable:  true,
		Architecture: asset.Binary.Architecture,
		ArchiveFile:  asset.Binary.Package.Name,
	}, nil
}

// AvailableVersions returns the major versions Adoptium currently offers.
func (p *AdoptiumProvider) AvailableVersions(ctx context.Context) ([]int, error) {
	body, err := p.doWithRetry(ctx, fmt.Sprintf("%s/info/available_releases", p.baseURL))
	if err != nil {
		return nil, err
	}
	var releases availableReleasesResponse
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, javaerr.Wrap(javaerr.SerializationError, "decoding available_releases", err)
	}
	return releases.AvailableReleases, nil
}
