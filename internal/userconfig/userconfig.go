// Package userconfig persists the host's Java preferences: manually added
// paths, a preferred runtime, and the last time detection ran.
package userconfig

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kestrelforge/javart/internal/appdata"
	"github.com/kestrelforge/javart/internal/applog"
	"github.com/kestrelforge/javart/internal/atomicio"
)

// Config is the on-disk shape of java_config.json.
type Config struct {
	UserDefinedPaths  []string   `json:"userDefinedPaths"`
	PreferredJavaPath string     `json:"preferredJavaPath,omitempty"`
	LastDetectionTime *time.Time `json:"lastDetectionTime,omitempty"`
}

// Default returns an empty configuration.
func Default() *Config {
	return &Config{UserDefinedPaths: []string{}}
}

// Load reads the config from {app_data}/java_config.json. A missing file
// yields the default config; a corrupt file also falls back to the
// default, after logging a warning, rather than failing the caller.
func Load() *Config {
	data, err := os.ReadFile(appdata.ConfigPath())
	if err != nil {
		return Default()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		applog.Warnf("java_config.json is corrupt, using defaults: %v", err)
		return Default()
	}
	if cfg.UserDefinedPaths == nil {
		cfg.UserDefinedPaths = []string{}
	}
	return &cfg
}

// Save writes the config atomically.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicio.WriteFile(appdata.ConfigPath(), data)
}

// AddUserDefinedPath appends path if it is not already present. Calling
// this twice with the same path is a no-op the second time.
func (c *Config) AddUserDefinedPath(path string) {
	for _, p := range c.UserDefinedPaths {
		if p == path {
			return
		}
	}
	c.UserDefinedPaths = append(c.UserDefinedPaths, path)
}

// RemoveUserDefinedPath removes path if present.
func (c *Config) RemoveUserDefinedPath(path string) {
	out := c.UserDefinedPaths[:0]
	for _, p := range c.UserDefinedPaths {
		if p != path {
			out = append(out, p)
		}
	}
	c.UserDefinedPaths = out
}

// SetPreferredJavaPath sets the preferred runtime path.
func (c *Config) SetPreferredJavaPath(path string) {
	c.PreferredJavaPath = path
}

// GetPreferredJavaPath returns the preferred runtime path, or "" if unset.
func (c *Config) GetPreferredJavaPath() string {
	return c.PreferredJavaPath
}

// UpdateLastDetectionTime stamps the config with the current time.
func (c *Config) UpdateLastDetectionTime(t time.Time) {
	c.LastDetectionTime = &t
}
