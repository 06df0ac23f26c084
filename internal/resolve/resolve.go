// Package resolve implements the layered lookup that decides which Java
// installation a launch should use: explicit overrides first, then the
// user's persisted preference, then full detection across both the host
// and javart's own managed install tree.
package resolve

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/kestrelforge/javart/internal/appdata"
	"github.com/kestrelforge/javart/internal/detect"
)

// Options bounds and seeds a resolution request.
type Options struct {
	InstanceOverride string
	GlobalOverride   string
	PreferredPath    string
	MinVersion       *int
	MaxVersion       *int
}

// ResolveForLaunch performs the layered lookup described by the
// Compatibility Resolver: the first layer producing a compatible,
// validated installation wins.
func ResolveForLaunch(opts Options) *detect.Installation {
	if opts.InstanceOverride != "" {
		if inst := validateCandidate(opts.InstanceOverride, opts.MinVersion, opts.MaxVersion); inst != nil {
			return inst
		}
	}

	if opts.GlobalOverride != "" {
		if inst := validateCandidate(opts.GlobalOverride, opts.MinVersion, opts.MaxVersion); inst != nil {
			return inst
		}
	}

	if opts.PreferredPath != "" {
		if inst := validateCandidate(opts.PreferredPath, opts.MinVersion, opts.MaxVersion); inst != nil {
			return inst
		}
	}

	return resolveFromFullDetection(opts.MinVersion, opts.MaxVersion)
}

func validateCandidate(path string, min, max *int) *detect.Installation {
	inst := detect.Probe(path, detect.SourceUser)
	if inst == nil {
		return nil
	}
	if !detect.IsVersionCompatible(inst.MajorVersion, min, max) {
		return nil
	}
	return inst
}

// resolveFromFullDetection combines the host-wide scan with javart's
// managed install tree, sorted by major version descending so the newest
// compatible runtime wins ties.
func resolveFromFullDetection(min, max *int) *detect.Installation {
	all := detect.FindAll()
	all = append(all, scanManagedTree()...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].MajorVersion != all[j].MajorVersion {
			return all[i].MajorVersion > all[j].MajorVersion
		}
		return detect.CompareVersions(all[i].Version, all[j].Version) > 0
	})

	for i := range all {
		if detect.IsVersionCompatible(all[i].MajorVersion, min, max) {
			return &all[i]
		}
	}

	return nil
}

// scanManagedTree walks {app_data}/java/* (one extra level deep: each
// version directory contains exactly one extracted JDK/JRE home) looking
// for a java executable, with the macOS Contents/Home/bin/java fallback.
func scanManagedTree() []detect.Installation {
	root := appdata.ManagedJavaDir()
	versionDirs, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var out []detect.Installation
	for _, vd := range versionDirs {
		if !vd.IsDir() {
			continue
		}
		versionPath := filepath.Join(root, vd.Name())
		homes, err := os.ReadDir(versionPath)
		if err != nil {
			continue
		}
		for _, home := range homes {
			if !home.IsDir() {
				continue
			}
			homePath := filepath.Join(versionPath, home.Name())
			javaPath := managedJavaBin(homePath)
			if javaPath == "" {
				continue
			}
			if inst := detect.Probe(javaPath, detect.SourceManaged); inst != nil {
				out = append(out, *inst)
			}
		}
	}

	return out
}

func managedJavaBin(home string) string {
	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}

	candidates := []string{
		filepath.Join(home, "bin", name),
		filepath.Join(home, "Contents", "Home", "bin", name),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
