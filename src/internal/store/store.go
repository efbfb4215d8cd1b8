// Package store owns the on-disk layout of installed runtime versions, the
// per-runtime "default" symlink, and the download/extraction cache.
//
// Layout:
//
//	<versionsRoot>/<runtime>/<version>/...   extracted payload
//	<versionsRoot>/<runtime>/default         symlink to the active version
//	<cacheRoot>/<archive-filename>           cached raw archives
//	<cacheRoot>/<runtime>-<version>/         extraction scratch
//
// Switching the default is delete-then-create, so a concurrent reader can
// observe a window with no default entry. toolvm is a single-user tool with
// sequential invocations; there is no cross-invocation locking.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toolvm/toolvm/src/internal/config"
	"github.com/toolvm/toolvm/src/internal/runtime"
	"github.com/toolvm/toolvm/src/internal/semver"
	"github.com/toolvm/toolvm/src/internal/ui"
)

// DefaultLinkName is the name of the per-runtime default symlink
const DefaultLinkName = "default"

var (
	// ErrNoRuntimeDir means the runtime has never had a version installed
	ErrNoRuntimeDir = errors.New("runtime has no installed versions")

	// ErrNoVersionDir means the requested version is not installed
	ErrNoVersionDir = errors.New("version is not installed")

	// ErrNoMatchingVersion means no installed version satisfies a range
	ErrNoMatchingVersion = errors.New("no installed version matches")
)

// Store is a filesystem-backed registry of installed runtime versions
type Store struct {
	versionsRoot string
	cacheRoot    string
}

// Open resolves the default store and cache locations, creating them when
// missing. Failure to create either directory is fatal to the invocation.
func Open() (*Store, error) {
	if err := config.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("unable to create toolvm directories: %w", err)
	}
	paths := config.DefaultPaths()
	return &Store{
		versionsRoot: paths.Versions,
		cacheRoot:    paths.Cache,
	}, nil
}

// OpenAt opens a store rooted at explicit directories, creating them when
// missing. Used by tests and anything that cannot rely on the defaults.
func OpenAt(versionsRoot, cacheRoot string) (*Store, error) {
	for _, dir := range []string{versionsRoot, cacheRoot} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create store directory %s: %w", dir, err)
		}
	}
	return &Store{versionsRoot: versionsRoot, cacheRoot: cacheRoot}, nil
}

// VersionsRoot returns the permanent version store directory
func (s *Store) VersionsRoot() string {
	return s.versionsRoot
}

// CacheRoot returns the cache directory
func (s *Store) CacheRoot() string {
	return s.cacheRoot
}

// RuntimeDir returns the directory holding a runtime's versions, or ok=false
// when the runtime has never been installed.
func (s *Store) RuntimeDir(runtimeName string) (string, bool) {
	dir := filepath.Join(s.versionsRoot, runtimeName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// VersionDir returns the install directory of a specific version, or
// ok=false when that version is not installed.
func (s *Store) VersionDir(runtimeName, version string) (string, bool) {
	dir := filepath.Join(s.versionsRoot, runtimeName, version)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// Installations enumerates the installed versions of a runtime by scanning
// its directory. Entries whose names fail to parse as versions are logged
// and skipped. The installation matching the default symlink's target is
// marked IsDefault. The result is recomputed from disk on every call.
func (s *Store) Installations(runtimeName string) ([]runtime.Installation, error) {
	dir, ok := s.RuntimeDir(runtimeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRuntimeDir, runtimeName)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read versions directory: %w", err)
	}

	defaultTarget, _ := s.DefaultVersion(runtimeName)

	installs := make([]runtime.Installation, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if name == DefaultLinkName {
			continue
		}
		if !entry.IsDir() {
			continue
		}
		v, err := semver.Parse(name)
		if err != nil {
			ui.Debug("Skipping unparsable version directory %s/%s: %v", runtimeName, name, err)
			continue
		}
		installs = append(installs, runtime.Installation{
			VersionString: name,
			Version:       v,
			IsDefault:     name == defaultTarget,
		})
	}

	return installs, nil
}

// DefaultVersion reads the default symlink for a runtime and returns the
// version it points to, or ok=false when no default is set.
func (s *Store) DefaultVersion(runtimeName string) (string, bool) {
	link := filepath.Join(s.versionsRoot, runtimeName, DefaultLinkName)
	target, err := os.Readlink(link)
	if err != nil {
		return "", false
	}
	return filepath.Base(target), true
}

// DefaultDir returns the path of the default symlink itself when one is
// set, for PATH construction.
func (s *Store) DefaultDir(runtimeName string) (string, bool) {
	if _, ok := s.DefaultVersion(runtimeName); !ok {
		return "", false
	}
	return filepath.Join(s.versionsRoot, runtimeName, DefaultLinkName), true
}

// UseAsDefault points the runtime's default symlink at an installed
// version. The target must exist. Any existing default entry is removed
// first (best effort), then the fresh symlink is created; between the two
// steps a concurrent reader observes no default.
func (s *Store) UseAsDefault(runtimeName, version string) error {
	if _, ok := s.RuntimeDir(runtimeName); !ok {
		return fmt.Errorf("%w: %s", ErrNoRuntimeDir, runtimeName)
	}
	if _, ok := s.VersionDir(runtimeName, version); !ok {
		return fmt.Errorf("%w: %s %s", ErrNoVersionDir, runtimeName, version)
	}

	link := filepath.Join(s.versionsRoot, runtimeName, DefaultLinkName)
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		ui.Debug("Removing old default symlink: %v", err)
	}

	if err := os.Symlink(version, link); err != nil {
		return fmt.Errorf("failed to create default symlink: %w", err)
	}
	return nil
}

// UseAsDefaultRange switches the default to the highest installed version
// inside the range and returns the version chosen.
func (s *Store) UseAsDefaultRange(runtimeName string, rng semver.Range) (string, error) {
	installs, err := s.Installations(runtimeName)
	if err != nil {
		return "", err
	}

	runtime.SortInstallationsDescending(installs)
	for _, inst := range installs {
		if rng.Contains(inst.Version) {
			return inst.VersionString, s.UseAsDefault(runtimeName, inst.VersionString)
		}
	}

	return "", fmt.Errorf("%w: %s %s", ErrNoMatchingVersion, runtimeName, rng)
}

// SaveOutDir commits an extracted directory into the permanent store via
// rename, which is atomic on the same filesystem, and returns the final
// path. The runtime directory is created on first install.
func (s *Store) SaveOutDir(outDir, runtimeName, version string) (string, error) {
	runtimeDir := filepath.Join(s.versionsRoot, runtimeName)
	if err := os.MkdirAll(runtimeDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create runtime directory: %w", err)
	}

	dest := filepath.Join(runtimeDir, version)
	if err := os.Rename(outDir, dest); err != nil {
		return "", fmt.Errorf("failed to move %s into store: %w", outDir, err)
	}
	return dest, nil
}

// Remove deletes an installed version. When the removed version was the
// default, the dangling symlink is deleted and the default is re-pointed at
// the highest remaining installed version, if any.
func (s *Store) Remove(runtimeName, version string) error {
	dir, ok := s.VersionDir(runtimeName, version)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrNoVersionDir, runtimeName, version)
	}

	wasDefault := false
	if current, ok := s.DefaultVersion(runtimeName); ok && current == version {
		wasDefault = true
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}

	if !wasDefault {
		return nil
	}

	link := filepath.Join(s.versionsRoot, runtimeName, DefaultLinkName)
	if err := os.Remove(link); err != nil && !os.IsNotExist(err) {
		ui.Debug("Removing dangling default symlink: %v", err)
	}

	installs, err := s.Installations(runtimeName)
	if err != nil {
		ui.Warning("Could not scan %s installs to re-point the default: %v", runtimeName, err)
		return nil
	}
	if len(installs) == 0 {
		return nil
	}

	runtime.SortInstallationsDescending(installs)
	next := installs[0].VersionString
	if err := s.UseAsDefault(runtimeName, next); err != nil {
		return fmt.Errorf("failed to re-point default after removal: %w", err)
	}
	ui.Info("Default %s version is now %s", runtimeName, next)
	return nil
}

// CachedArchivePath returns where an archive with the given basename is
// cached.
func (s *Store) CachedArchivePath(archiveName string) string {
	return filepath.Join(s.cacheRoot, archiveName)
}

// ScratchDir returns the extraction scratch directory for a runtime
// version, creating it when missing. A populated scratch directory is
// reused by the decompression step, making extraction idempotent.
func (s *Store) ScratchDir(runtimeName, version string) (string, error) {
	dir := filepath.Join(s.cacheRoot, fmt.Sprintf("%s-%s", runtimeName, version))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return dir, nil
}

// ClearCache removes every entry under the cache root, best effort per
// entry, and returns the number removed. The permanent version store is
// untouched.
func (s *Store) ClearCache() (int, error) {
	entries, err := os.ReadDir(s.cacheRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		path := filepath.Join(s.cacheRoot, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			ui.Warning("Could not remove cache entry %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}
