// Package golang implements the Go toolchain provider for toolvm
package golang

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	goruntime "runtime"
	"strings"
	"time"

	"github.com/toolvm/toolvm/src/internal/download"
	"github.com/toolvm/toolvm/src/internal/runtime"
	"github.com/toolvm/toolvm/src/internal/semver"
	"github.com/toolvm/toolvm/src/internal/ui"
)

// Mirrors of the go.dev release index; archives are fetched relative to
// the mirror that answered.
var defaultMirrors = []string{
	"https://go.dev/dl",
	"https://golang.google.cn/dl",
}

// Provider implements the runtime.Provider interface for the Go toolchain
type Provider struct {
	mirrors []string
	rng     *rand.Rand
}

// NewProvider creates a new Go toolchain provider
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
	return "go"
}

// DisplayName returns the human-readable name
func (p *Provider) DisplayName() string {
	return "Go"
}

// BinSubpath returns the executable directory inside an extracted install
func (p *Provider) BinSubpath() string {
	return "bin"
}

// releaseEntry is one release in the go.dev JSON index
type releaseEntry struct {
	Version string        `json:"version"` // "go1.23.4"
	Stable  bool          `json:"stable"`
	Files   []releaseFile `json:"files"`
}

// releaseFile is one downloadable file inside a release
type releaseFile struct {
	Filename string `json:"filename"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	SHA256   string `json:"sha256"`
	Kind     string `json:"kind"` // "archive", "installer", "source"
}

// DownloadTargets fetches the release index and returns archive targets
// for the running OS/architecture, sorted descending by version. Release
// tags that do not parse as full versions (like the pre-1.21 "go1.20"
// spelling or release candidates) are skipped.
func (p *Provider) DownloadTargets(client *http.Client) ([]runtime.DownloadTarget, error) {
	mirrors := download.ShuffleMirrors(p.rng, p.mirrors)
	var body []byte
	var base string
	var lastErr error
	for _, mirror := range mirrors {
		body, lastErr = download.Fetch(client, mirror+"/?mode=json&include=all")
		if lastErr == nil {
			base = mirror
			break
		}
		ui.Debug("Go mirror failed, trying next: %v", lastErr)
	}
	if body == nil {
		return nil, fmt.Errorf("failed fetching go version index: %w", lastErr)
	}

	var entries []releaseEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed parsing go version index: %w", err)
	}

	seen := make(map[string]bool)
	targets := make([]runtime.DownloadTarget, 0, len(entries))
	for _, entry := range entries {
		versionString := strings.TrimPrefix(entry.Version, "go")
		if seen[versionString] {
			continue
		}
		parsed, err := semver.Parse(versionString)
		if err != nil {
			ui.Debug("Skipping go release tag %q: %v", entry.Version, err)
			continue
		}

		file, ok := matchFile(entry.Files)
		if !ok {
			continue
		}
		seen[versionString] = true
		targets = append(targets, runtime.DownloadTarget{
			VersionString: versionString,
			Version:       parsed,
			TarballURL:    base + "/" + file.Filename,
			Shasum:        file.SHA256,
		})
	}

	runtime.SortTargetsDescending(targets)
	return targets, nil
}

// TarballShasum is unreachable for go: the index embeds every digest
func (p *Provider) TarballShasum(client *http.Client, target runtime.DownloadTarget) (string, error) {
	return "", runtime.ErrShasumNotSupported
}

// Decompress extracts a go archive (tar.gz on unix, zip on windows) into
// scratchDir and returns the single top-level directory ("go/"). A
// populated scratch directory from a prior run is returned as-is.
func (p *Provider) Decompress(archivePath, scratchDir string) (string, error) {
	if download.ScratchPopulated(scratchDir) {
		ui.Debug("Reusing populated scratch directory %s", scratchDir)
		return download.TopLevelDir(scratchDir)
	}

	var err error
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"):
		err = download.ExtractTarGz(archivePath, scratchDir)
	case strings.HasSuffix(archivePath, ".zip"):
		err = download.ExtractZip(archivePath, scratchDir)
	default:
		err = fmt.Errorf("unsupported go archive format: %s", archivePath)
	}
	if err != nil {
		return "", err
	}

	return download.TopLevelDir(scratchDir)
}

// matchFile finds the archive for the running OS/architecture. go.dev
// uses Go's own GOOS/GOARCH names, so no mapping is needed.
func matchFile(files []releaseFile) (releaseFile, bool) {
	for _, f := range files {
		if f.Kind == "archive" && f.OS == goruntime.GOOS && f.Arch == goruntime.GOARCH {
			return f, true
		}
	}
	return releaseFile{}, false
}

// init registers the Go provider on package load
func init() {
	if err := runtime.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register Go provider: %v", err))
	}
}
