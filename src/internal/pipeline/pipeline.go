// Package pipeline orchestrates the acquisition of runtime versions:
// catalog resolution, matching, download, verification, extraction, and
// commit into the store.
package pipeline

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/toolvm/toolvm/src/internal/download"
	"github.com/toolvm/toolvm/src/internal/runtime"
	"github.com/toolvm/toolvm/src/internal/semver"
	"github.com/toolvm/toolvm/src/internal/store"
	"github.com/toolvm/toolvm/src/internal/ui"
)

// ErrNoMatchingTarget means the remote catalog has no version inside the
// requested range.
var ErrNoMatchingTarget = errors.New("no matching version found in catalog")

// Pipeline runs acquisition flows against one store with one HTTP client
// per invocation.
type Pipeline struct {
	store  *store.Store
	client *http.Client
}

// New creates a pipeline over a store
func New(s *store.Store, client *http.Client) *Pipeline {
	return &Pipeline{store: s, client: client}
}

// Add installs the highest version of a runtime that satisfies the loose
// spec. When an installed version already satisfies the spec, Add returns
// without touching the network. Installing the first-ever version of a
// runtime makes it the default; later installs never change an existing
// default.
func (p *Pipeline) Add(prov runtime.Provider, spec string) error {
	rng, err := semver.ParseRange(spec)
	if err != nil {
		return err
	}

	// Installed versions are consulted before the catalog so a repeated
	// add performs zero network calls.
	if inst, ok := p.installedMatch(prov.Name(), rng); ok {
		ui.Info("%s %s is already installed", prov.DisplayName(), inst.VersionString)
		return nil
	}

	ui.Header("Installing %s %s...", prov.DisplayName(), spec)

	targets, err := prov.DownloadTargets(p.client)
	if err != nil {
		return fmt.Errorf("failed to resolve %s catalog: %w", prov.Name(), err)
	}

	target, err := matchTarget(targets, rng)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrNoMatchingTarget, prov.Name(), spec)
	}

	if _, ok := p.store.VersionDir(prov.Name(), target.VersionString); ok {
		ui.Info("%s %s is already installed", prov.DisplayName(), target.VersionString)
		return nil
	}

	archivePath := p.store.CachedArchivePath(target.ArchiveName())
	cached, err := download.FileCached(p.client, target.TarballURL, archivePath)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", target.TarballURL, err)
	}
	if cached {
		ui.Progress("Using cached archive %s", target.ArchiveName())
	}

	if err := p.verify(prov, target, archivePath); err != nil {
		return err
	}

	scratchDir, err := p.store.ScratchDir(prov.Name(), target.VersionString)
	if err != nil {
		return err
	}

	var outDir string
	err = ui.WithSpinner("Extracting "+target.ArchiveName(), func() error {
		var derr error
		outDir, derr = prov.Decompress(archivePath, scratchDir)
		return derr
	})
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", target.ArchiveName(), err)
	}

	installPath, err := p.store.SaveOutDir(outDir, prov.Name(), target.VersionString)
	if err != nil {
		return err
	}

	// First-ever install for a runtime becomes the default; an existing
	// default is never silently replaced.
	if _, ok := p.store.DefaultVersion(prov.Name()); !ok {
		if err := p.store.UseAsDefault(prov.Name(), target.VersionString); err != nil {
			return fmt.Errorf("failed to set default version: %w", err)
		}
		ui.Info("Set %s as the default %s version", target.VersionString, prov.Name())
	}

	ui.Success("%s %s installed", prov.DisplayName(), target.VersionString)
	ui.Info("Location: %s", installPath)
	return nil
}

// verify checks the archive digest, fetching it from the provider's side
// channel when the catalog did not embed one. A mismatch truncates the
// cache entry so the next run re-downloads instead of trusting corrupt
// data.
func (p *Pipeline) verify(prov runtime.Provider, target runtime.DownloadTarget, archivePath string) error {
	shasum := target.Shasum
	if shasum == "" {
		var err error
		shasum, err = prov.TarballShasum(p.client, target)
		if err != nil {
			return fmt.Errorf("failed to obtain checksum for %s: %w", target.ArchiveName(), err)
		}
	}

	if err := download.VerifyFile(archivePath, shasum); err != nil {
		var mismatch *download.ErrChecksumMismatch
		if errors.As(err, &mismatch) {
			if terr := download.InvalidateFile(archivePath); terr != nil {
				ui.Warning("Could not invalidate cache entry %s: %v", archivePath, terr)
			}
		}
		return fmt.Errorf("checksum verification failed for %s: %w", target.ArchiveName(), err)
	}

	ui.Debug("Checksum verified for %s", target.ArchiveName())
	return nil
}

// installedMatch returns the highest installed version inside the range
func (p *Pipeline) installedMatch(runtimeName string, rng semver.Range) (runtime.Installation, bool) {
	installs, err := p.store.Installations(runtimeName)
	if err != nil {
		return runtime.Installation{}, false
	}
	runtime.SortInstallationsDescending(installs)
	for _, inst := range installs {
		if rng.Contains(inst.Version) {
			return inst, true
		}
	}
	return runtime.Installation{}, false
}

// matchTarget picks the highest catalog entry inside the range. The
// catalog contract guarantees descending order, so the first hit wins.
func matchTarget(targets []runtime.DownloadTarget, rng semver.Range) (runtime.DownloadTarget, error) {
	for _, t := range targets {
		if rng.Contains(t.Version) {
			return t, nil
		}
	}
	return runtime.DownloadTarget{}, ErrNoMatchingTarget
}

// ListRemote returns the remote catalog, optionally filtered by a loose
// spec. The result keeps the provider's descending order.
func (p *Pipeline) ListRemote(prov runtime.Provider, spec string) ([]runtime.DownloadTarget, error) {
	targets, err := prov.DownloadTargets(p.client)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s catalog: %w", prov.Name(), err)
	}
	if spec == "" {
		return targets, nil
	}

	rng, err := semver.ParseRange(spec)
	if err != nil {
		return nil, err
	}
	filtered := targets[:0]
	for _, t := range targets {
		if rng.Contains(t.Version) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// ListInstalled returns the installed versions of a runtime sorted
// descending, optionally filtered by a loose spec.
func (p *Pipeline) ListInstalled(prov runtime.Provider, spec string) ([]runtime.Installation, error) {
	installs, err := p.store.Installations(prov.Name())
	if err != nil {
		return nil, err
	}
	runtime.SortInstallationsDescending(installs)

	if spec == "" {
		return installs, nil
	}

	rng, err := semver.ParseRange(spec)
	if err != nil {
		return nil, err
	}
	filtered := installs[:0]
	for _, inst := range installs {
		if rng.Contains(inst.Version) {
			filtered = append(filtered, inst)
		}
	}
	return filtered, nil
}

// Use switches the default version to the highest installed version that
// satisfies the loose spec. Only installed versions are considered.
func (p *Pipeline) Use(prov runtime.Provider, spec string) (string, error) {
	rng, err := semver.ParseRange(spec)
	if err != nil {
		return "", err
	}
	return p.store.UseAsDefaultRange(prov.Name(), rng)
}

// Remove deletes an exact installed version, re-pointing the default when
// needed.
func (p *Pipeline) Remove(prov runtime.Provider, version string) error {
	return p.store.Remove(prov.Name(), version)
}
