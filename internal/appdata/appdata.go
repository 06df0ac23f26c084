// Package appdata resolves the single application data directory that all
// of javart's persisted JSON state and managed Java installs live under.
package appdata

import (
	"os"
	"path/filepath"
)

const appName = "javart"

// Dir returns the resolved application data directory, creating nothing.
// Resolution order: portable mode (a "data" directory next to the running
// executable, if one already exists), then XDG_DATA_HOME, then APPDATA
// (Windows), then ~/.local/share.
func Dir() string {
	if exe, err := os.Executable(); err == nil {
		portable := filepath.Join(filepath.Dir(exe), "data")
		if info, err := os.Stat(portable); err == nil && info.IsDir() {
			return portable
		}
	}

	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if appdataDir := os.Getenv("APPDATA"); appdataDir != "" {
		return filepath.Join(appdataDir, appName)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// CatalogCachePath returns the path to the cached provider catalog.
func CatalogCachePath() string {
	return filepath.Join(Dir(), "java_catalog_cache.json")
}

// ConfigPath returns the path to the persisted user config.
func ConfigPath() string {
	return filepath.Join(Dir(), "java_config.json")
}

// QueuePath returns the path to the pending-download queue.
func QueuePath() string {
	return filepath.Join(Dir(), "java_download_queue.json")
}

// ManagedJavaDir returns the root of javart's managed Java installs.
func ManagedJavaDir() string {
	return filepath.Join(Dir(), "java")
}

// EnsureDir creates the application data directory if it does not exist.
func EnsureDir() error {
	return os.MkdirAll(Dir(), 0o755)
}
