// FILE: lixenwraith/confstore/discovery.go
package confstore

import (
	"os"
	"path/filepath"
	"strings"
)

// DirDiscoveryOptions configures config directory discovery
type DirDiscoveryOptions struct {
	// Application name, used as the directory name under XDG roots
	Name string

	// Environment variable to check for an explicit directory
	EnvVar string

	// Custom search paths, checked before XDG paths
	Paths []string

	// Whether to search in XDG config directories
	UseXDG bool
}

// DefaultDirDiscoveryOptions returns sensible defaults
func DefaultDirDiscoveryOptions(appName string) DirDiscoveryOptions {
	return DirDiscoveryOptions{
		Name:   appName,
		EnvVar: strings.ToUpper(appName) + "_DIR",
		UseXDG: true,
	}
}

// DiscoverDir returns the first existing config directory. The explicit
// environment variable wins even if the directory does not exist, so that
// Load reports ErrDirectoryMissing for it. The second return value is false
// when nothing was found.
func DiscoverDir(opts DirDiscoveryOptions) (string, bool) {
	if opts.EnvVar != "" {
		if dir := os.Getenv(opts.EnvVar); dir != "" {
			return dir, true
		}
	}

	searchPaths := append([]string(nil), opts.Paths...)
	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}

	return "", false
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	// XDG_CONFIG_HOME
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	// XDG_CONFIG_DIRS
	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
