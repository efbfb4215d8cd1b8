// Package zig implements the Zig runtime provider for toolvm
package zig

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	goruntime "runtime"
	"strings"
	"time"

	"github.com/toolvm/toolvm/src/internal/constants"
	"github.com/toolvm/toolvm/src/internal/download"
	"github.com/toolvm/toolvm/src/internal/runtime"
	"github.com/toolvm/toolvm/src/internal/semver"
	"github.com/toolvm/toolvm/src/internal/ui"
)

// Mirrors of the ziglang.org download index
var defaultMirrors = []string{
	"https://ziglang.org/download/index.json",
	"https://machengine.org/zig/index.json",
}

// Provider implements the runtime.Provider interface for Zig
type Provider struct {
	mirrors []string
	rng     *rand.Rand
}

// NewProvider creates a new Zig runtime provider
func NewProvider() *Provider {
	return NewProviderWith(defaultMirrors, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewProviderWith creates a provider with explicit mirrors and random
// source, for tests.
func NewProviderWith(mirrors []string, rng *rand.Rand) *Provider {
	return &Provider{mirrors: mirrors, rng: rng}
}

// Name returns the runtime name
func (p *Provider) Name() string {
	return "zig"
}

// DisplayName returns the human-readable name
func (p *Provider) DisplayName() string {
	return "Zig"
}

// BinSubpath returns the executable directory inside an extracted install.
// Zig archives place the compiler at the extraction root.
func (p *Provider) BinSubpath() string {
	return ""
}

// releaseFile is one downloadable build inside a release entry
type releaseFile struct {
	Tarball string `json:"tarball"`
	Shasum  string `json:"shasum"`
}

// DownloadTargets fetches the download index and returns targets for the
// running OS/architecture, sorted descending by version. The index is an
// object keyed by version string; entries whose key is not a version
// (like "master") are skipped.
func (p *Provider) DownloadTargets(client *http.Client) ([]runtime.DownloadTarget, error) {
	targetKey, err := platformTargetKey()
	if err != nil {
		return nil, err
	}

	body, err := download.FetchFirst(client, download.ShuffleMirrors(p.rng, p.mirrors))
	if err != nil {
		return nil, fmt.Errorf("failed fetching zig version index: %w", err)
	}

	var index map[string]map[string]json.RawMessage
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, fmt.Errorf("failed parsing zig version index: %w", err)
	}

	targets := make([]runtime.DownloadTarget, 0, len(index))
	for versionString, release := range index {
		parsed, err := semver.Parse(versionString)
		if err != nil {
			ui.Debug("Skipping zig index key %q: %v", versionString, err)
			continue
		}

		raw, ok := release[targetKey]
		if !ok {
			continue
		}
		var file releaseFile
		if err := json.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("failed converting zig release %s: %w", versionString, err)
		}
		if file.Tarball == "" || file.Shasum == "" {
			continue
		}

		targets = append(targets, runtime.DownloadTarget{
			VersionString: versionString,
			Version:       parsed,
			TarballURL:    file.Tarball,
			Shasum:        file.Shasum,
		})
	}

	runtime.SortTargetsDescending(targets)
	return targets, nil
}

// TarballShasum is unreachable for zig: the index embeds every digest
func (p *Provider) TarballShasum(client *http.Client, target runtime.DownloadTarget) (string, error) {
	return "", runtime.ErrShasumNotSupported
}

// Decompress extracts a zig archive (tar.xz on unix, zip on windows) into
// scratchDir and returns the single top-level directory. A populated
// scratch directory from a prior run is returned as-is.
func (p *Provider) Decompress(archivePath, scratchDir string) (string, error) {
	if download.ScratchPopulated(scratchDir) {
		ui.Debug("Reusing populated scratch directory %s", scratchDir)
		return download.TopLevelDir(scratchDir)
	}

	var err error
	switch {
	case strings.HasSuffix(archivePath, ".tar.xz"):
		err = download.ExtractTarXz(archivePath, scratchDir)
	case strings.HasSuffix(archivePath, ".zip"):
		err = download.ExtractZip(archivePath, scratchDir)
	default:
		err = fmt.Errorf("unsupported zig archive format: %s", archivePath)
	}
	if err != nil {
		return "", err
	}

	return download.TopLevelDir(scratchDir)
}

// platformTargetKey returns the index key for the running OS/architecture
// (e.g., "x86_64-linux", "aarch64-macos").
func platformTargetKey() (string, error) {
	var arch string
	switch goruntime.GOARCH {
	case constants.ArchAMD64:
		arch = "x86_64"
	case constants.ArchARM64:
		arch = "aarch64"
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goruntime.GOARCH)
	}

	switch goruntime.GOOS {
	case constants.OSLinux:
		return arch + "-linux", nil
	case constants.OSDarwin:
		return arch + "-macos", nil
	case constants.OSWindows:
		return arch + "-windows", nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", goruntime.GOOS)
	}
}

// init registers the Zig provider on package load
func init() {
	if err := runtime.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register Zig provider: %v", err))
	}
}
