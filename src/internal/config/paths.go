// Package config manages toolvm configuration including store and cache paths
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// ToolName is the directory name used under the platform temp directory
// for the download cache.
const ToolName = "toolvm"

// Paths holds all important toolvm directory paths
type Paths struct {
	Root     string // Root toolvm directory (~/.toolvm)
	Versions string // Permanent version store (~/.toolvm/versions)
	Cache    string // Download/extraction cache (<tmpdir>/toolvm)
}

var (
	defaultPaths *Paths
	pathsOnce    sync.Once
)

// DefaultPaths returns the default toolvm paths.
// This function is thread-safe and guarantees single initialization.
func DefaultPaths() *Paths {
	pathsOnce.Do(func() {
		defaultPaths = initPaths()
	})
	return defaultPaths
}

// initPaths initializes the default paths
func initPaths() *Paths {
	root := getRootDir()
	return &Paths{
		Root:     root,
		Versions: filepath.Join(root, "versions"),
		Cache:    filepath.Join(os.TempDir(), ToolName),
	}
}

// getRootDir returns the root toolvm directory
func getRootDir() string {
	// Check for TOOLVM_ROOT environment variable first
	if root := os.Getenv("TOOLVM_ROOT"); root != "" {
		return root
	}

	// Use home directory
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return ".toolvm"
	}

	return filepath.Join(home, ".toolvm")
}

// EnsureDirectories creates all necessary toolvm directories
func EnsureDirectories() error {
	paths := DefaultPaths()
	dirs := []string{
		paths.Root,
		paths.Versions,
		paths.Cache,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// ResetPathsCache resets the cached paths, forcing reinitialization on next access.
// This is primarily useful for testing.
func ResetPathsCache() {
	pathsOnce = sync.Once{}
	defaultPaths = nil
}
