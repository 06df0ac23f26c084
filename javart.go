// Package javart discovers, resolves, downloads, and manages Java runtimes
// for a game-launcher host. It wires together the internal detect, catalog,
// download, install, resolve, and userconfig packages into the public
// surface a launcher embeds.
package javart

import (
	"context"
	"time"

	"github.com/kestrelforge/javart/internal/appdata"
	"github.com/kestrelforge/javart/internal/catalog"
	"github.com/kestrelforge/javart/internal/detect"
	"github.com/kestrelforge/javart/internal/download"
	"github.com/kestrelforge/javart/internal/events"
	"github.com/kestrelforge/javart/internal/install"
	"github.com/kestrelforge/javart/internal/resolve"
	"github.com/kestrelforge/javart/internal/userconfig"
)

// Installation mirrors detect.Installation: a validated Java runtime found
// on the host or under javart's managed tree.
type Installation = detect.Installation

// ImageType distinguishes a JRE from a full JDK distribution.
type ImageType = catalog.ImageType

const (
	ImageJRE = catalog.ImageJRE
	ImageJDK = catalog.ImageJDK
)

// ResumeResult reports the outcome of replaying every pending download.
type ResumeResult = install.ResumeResult

// defaultProvider is the catalog source every facade call uses. A package
// variable rather than a constructor argument keeps the public API small;
// tests that need a different provider use the internal packages directly.
var defaultProvider catalog.Provider = catalog.NewAdoptiumProvider()

func orchestrator() *install.Orchestrator {
	return install.NewOrchestrator(defaultProvider)
}

// DetectJavaInstallations scans the host (PATH, well-known install roots,
// managed version-manager trees, JAVA_HOME), returning every Java runtime
// that passes validation, and records the detection time in the user
// config. javart's own managed install tree is not scanned here.
func DetectJavaInstallations() []Installation {
	all := detect.FindAll()

	cfg := userconfig.Load()
	cfg.UpdateLastDetectionTime(time.Now())
	if err := cfg.Save(); err != nil {
		return all
	}

	return all
}

// GetCompatibleJava returns the newest detected installation whose major
// version falls within [minVersion, maxVersion], either bound optional.
func GetCompatibleJava(minVersion, maxVersion *int) *Installation {
	return resolve.ResolveForLaunch(resolve.Options{
		MinVersion: minVersion,
		MaxVersion: maxVersion,
	})
}

// LaunchOptions seeds a launch-time resolution request.
type LaunchOptions struct {
	InstanceOverride string
	GlobalOverride   string
	MinVersion       *int
	MaxVersion       *int
}

// ResolveJavaForLaunch performs the layered lookup (instance override,
// global override, preferred path, full detection) and returns the runtime
// a launch should use, or nil if nothing compatible was found.
func ResolveJavaForLaunch(opts LaunchOptions) *Installation {
	cfg := userconfig.Load()
	return resolve.ResolveForLaunch(resolve.Options{
		InstanceOverride: opts.InstanceOverride,
		GlobalOverride:   opts.GlobalOverride,
		PreferredPath:    cfg.GetPreferredJavaPath(),
		MinVersion:       opts.MinVersion,
		MaxVersion:       opts.MaxVersion,
	})
}

// FetchJavaCatalog returns the set of Java releases available from the
// configured provider, using the 24-hour on-disk cache unless forceRefresh
// is set.
func FetchJavaCatalog(ctx context.Context, forceRefresh bool) (*catalog.Catalog, error) {
	return defaultProvider.FetchCatalog(ctx, forceRefresh)
}

// DownloadAndInstallJava downloads, extracts, and validates the requested
// Java release, emitting progress through sink (nil is accepted and
// discards progress).
func DownloadAndInstallJava(ctx context.Context, major int, imageType ImageType, sink events.Sink) (*Installation, error) {
	return orchestrator().DownloadAndInstall(ctx, major, imageType, sink)
}

// ResumePendingDownloads replays every entry left in the pending-download
// queue, typically called once at host startup.
func ResumePendingDownloads(ctx context.Context, sink events.Sink) ResumeResult {
	return orchestrator().ResumePendingDownloads(ctx, sink)
}

// CancelCurrentDownload requests cancellation of the in-flight resumable
// download, if any. The download stops at the next chunk boundary.
func CancelCurrentDownload() {
	download.RequestCancel()
}

// GetPendingDownloads returns every install intent still queued, e.g. after
// a crash mid-download.
func GetPendingDownloads() []download.PendingDownload {
	return download.LoadQueue().List()
}

// ClearPendingDownload removes a single entry from the pending-download
// queue without attempting to install it, e.g. when the host has decided to
// abandon a stuck download.
func ClearPendingDownload(major int, imageType ImageType) error {
	queue := download.LoadQueue()
	queue.Remove(major, imageType)
	return queue.Save()
}

// AddUserDefinedPath records an additional Java install location the host
// should consider during resolution.
func AddUserDefinedPath(path string) error {
	cfg := userconfig.Load()
	cfg.AddUserDefinedPath(path)
	return cfg.Save()
}

// RemoveUserDefinedPath removes a previously added Java install location.
func RemoveUserDefinedPath(path string) error {
	cfg := userconfig.Load()
	cfg.RemoveUserDefinedPath(path)
	return cfg.Save()
}

// SetPreferredJavaPath sets the runtime path resolution should prefer ahead
// of a full detection pass.
func SetPreferredJavaPath(path string) error {
	cfg := userconfig.Load()
	cfg.SetPreferredJavaPath(path)
	return cfg.Save()
}

// GetPreferredJavaPath returns the currently preferred runtime path, or ""
// if none is set.
func GetPreferredJavaPath() string {
	return userconfig.Load().GetPreferredJavaPath()
}

// EnsureAppDataDir creates javart's application data directory if it does
// not already exist. Callers that invoke any other facade function do not
// need to call this first; the underlying packages create their own
// directories lazily.
func EnsureAppDataDir() error {
	return appdata.EnsureDir()
}
