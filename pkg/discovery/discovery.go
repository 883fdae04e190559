// Package discovery locates Claude Code usage log files.
//
// It walks configured data roots recursively and collects every .jsonl
// file, together with the size and modification time needed by the
// scan cache.
//
// Example usage:
//
//	d := discovery.New([]string{"~/.claude/projects"}, logger.Default())
//	files, err := d.Discover()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range files {
//	    fmt.Printf("%s (%d bytes)\n", f.Path, f.Size)
//	}
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Logger defines the logging interface used by the discovery package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// LogFile represents a discovered usage log file.
type LogFile struct {
	// Path is the path to the JSONL file.
	Path string

	// Project is the directory containing the file, relative to the
	// data root it was found under.
	Project string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time.
	ModTime time.Time
}

// Discoverer provides methods for locating usage log files.
type Discoverer interface {
	// Discover walks the configured data roots and returns every .jsonl
	// file found, at any depth.
	//
	// Returns:
	//   - Slice of discovered log files
	//   - Error if a data root exists but cannot be read
	//
	// A data root that does not exist is skipped with a warning; an
	// empty result is not an error. Unreadable subdirectories are
	// skipped, only the roots themselves are fatal.
	Discover() ([]LogFile, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	roots  []string
	logger Logger
}

// New creates a new Discoverer instance.
//
// Parameters:
//   - roots: Data roots to walk (e.g., ~/.claude/projects)
//   - logger: Logger instance for diagnostic messages
//
// Returns a configured Discoverer.
func New(roots []string, logger Logger) Discoverer {
	return &discoverer{
		roots:  roots,
		logger: logger,
	}
}

// Discover implements Discoverer.Discover.
func (d *discoverer) Discover() ([]LogFile, error) {
	var allFiles []LogFile

	for _, root := range d.roots {
		expandedRoot := expandHome(root)

		if _, err := os.Stat(expandedRoot); err != nil {
			if os.IsNotExist(err) {
				d.logger.Warn("data root not found, skipping", "path", expandedRoot)
				continue
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, expandedRoot, err)
		}

		files, err := d.walkRoot(expandedRoot)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, expandedRoot, err)
		}

		allFiles = append(allFiles, files...)
	}

	d.logger.Debug("discovery complete", "files", len(allFiles))
	return allFiles, nil
}

// walkRoot recursively collects .jsonl files under one data root.
func (d *discoverer) walkRoot(root string) ([]LogFile, error) {
	files := make([]LogFile, 0, 32)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// The root itself failing is fatal, anything below is not.
			if path == root {
				return err
			}
			d.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			d.logger.Warn("failed to stat file", "path", path, "error", err)
			return nil
		}

		project, relErr := filepath.Rel(root, filepath.Dir(path))
		if relErr != nil {
			project = filepath.Dir(path)
		}

		files = append(files, LogFile{
			Path:    path,
			Project: project,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.Debug("walked data root", "path", root, "files", len(files))
	return files, nil
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
