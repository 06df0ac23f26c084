// Provider abstracts a remote Java distribution catalog so the install
// orchestrator never depends on a specific vendor's API shape.
package catalog

import "context"

// Provider is the capability set every Java distribution source exposes.
type Provider interface {
	FetchCatalog(ctx context.Context, forceRefresh bool) (*Catalog, error)
	FetchRelease(ctx context.Context, major int, imageType ImageType) (*DownloadInfo, error)
	AvailableVersions(ctx context.Context) ([]int, error)

	ProviderName() string
	OSName() string
	ArchName() string
	InstallPrefix() string
}
