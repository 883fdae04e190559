package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// defaultDataDirs returns the default Claude Code data directories.
//
// Searches in order:
// 1. ~/.claude/projects/ (standard log location)
// 2. $XDG_CONFIG_HOME/claude/projects/
//
// Returns all directories that exist on the filesystem.
func defaultDataDirs() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir not available
		return []string{"."}
	}

	candidates := []string{
		filepath.Join(homeDir, ".claude", "projects"),
		filepath.Join(xdg.ConfigHome, "claude", "projects"),
	}

	var dirs []string
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			dirs = append(dirs, dir)
		}
	}

	// If no directories exist yet, return the standard path so reports
	// point at the place logs will appear.
	if len(dirs) == 0 {
		return []string{filepath.Join(homeDir, ".claude", "projects")}
	}

	return dirs
}

// defaultCachePath returns the default parse cache path.
//
// Returns: $XDG_CACHE_HOME/ccdash/cache.db.
func defaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "ccdash", "cache.db")
}

// defaultConfigPath returns the default configuration file path.
//
// Returns: $XDG_CONFIG_HOME/ccdash/config.yaml.
func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "ccdash", "config.yaml")
}
