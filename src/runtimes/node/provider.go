// Package node implements the Node.js runtime provider for toolvm
package node

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

// Release mirrors of the nodejs.org version index. Tried in randomized
// order; the matching dist root is used for archive and checksum URLs.
var defaultMirrors = []string{
	"https://nodejs.org/dist",
	"https://nodejs.org/download/release",
}

// Provider implements the runtime.Provider interface for Node.js
type Provider struct {
	mirrors []string
	rng     *rand.Rand
}

// NewProvider creates a new Node.js runtime provider
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
	return "node"
}

// DisplayName returns the human-readable name
func (p *Provider) DisplayName() string {
	return "Node.js"
}

// BinSubpath returns the executable directory inside an extracted install
func (p *Provider) BinSubpath() string {
	if goruntime.GOOS == constants.OSWindows {
		return ""
	}
	return "bin"
}

// indexEntry is one release in the nodejs.org index.json document
type indexEntry struct {
	Version string   `json:"version"` // "v22.19.0"
	Files   []string `json:"files"`   // platform tokens like "linux-x64"
}

// DownloadTargets fetches the release index and returns targets for the
// running OS/architecture, sorted descending by version.
func (p *Provider) DownloadTargets(client *http.Client) ([]runtime.DownloadTarget, error) {
	fileToken, err := platformFileToken()
	if err != nil {
		return nil, err
	}

	mirrors := download.ShuffleMirrors(p.rng, p.mirrors)
	var body []byte
	var base string
	var lastErr error
	for _, mirror := range mirrors {
		body, lastErr = download.Fetch(client, mirror+"/index.json")
		if lastErr == nil {
			base = mirror
			break
		}
		ui.Debug("Node mirror failed, trying next: %v", lastErr)
	}
	if body == nil {
		return nil, fmt.Errorf("failed fetching node version index: %w", lastErr)
	}

	var entries []indexEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed parsing node version index: %w", err)
	}

	seen := make(map[string]bool)
	targets := make([]runtime.DownloadTarget, 0, len(entries))
	for _, entry := range entries {
		if !hasFile(entry.Files, fileToken) {
			continue
		}
		versionString := strings.TrimPrefix(entry.Version, "v")
		if seen[versionString] {
			continue
		}
		parsed, err := semver.Parse(versionString)
		if err != nil {
			ui.Debug("Skipping unparsable node version %q: %v", entry.Version, err)
			continue
		}
		seen[versionString] = true
		targets = append(targets, runtime.DownloadTarget{
			VersionString: versionString,
			Version:       parsed,
			TarballURL:    fmt.Sprintf("%s/v%s/%s", base, versionString, archiveName(versionString)),
			// index.json does not embed digests; SHASUMS256.txt is
			// fetched lazily per version
		})
	}

	runtime.SortTargetsDescending(targets)
	return targets, nil
}

// TarballShasum fetches the SHASUMS256.txt manifest next to the archive
// and returns the digest line matching the archive filename.
func (p *Provider) TarballShasum(client *http.Client, target runtime.DownloadTarget) (string, error) {
	manifestURL := strings.TrimSuffix(target.TarballURL, "/"+target.ArchiveName()) + "/SHASUMS256.txt"
	body, err := download.Fetch(client, manifestURL)
	if err != nil {
		return "", fmt.Errorf("failed fetching checksum manifest: %w", err)
	}

	sum, err := findShasum(string(body), target.ArchiveName())
	if err != nil {
		return "", fmt.Errorf("%w (manifest %s)", err, manifestURL)
	}
	return sum, nil
}

// findShasum scans "<hex>  <filename>" manifest lines for an exact
// filename match.
func findShasum(manifest, filename string) (string, error) {
	for _, line := range strings.Split(manifest, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		if fields[1] == filename {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("no checksum found for %s", filename)
}

// Decompress extracts a node archive (tar.gz on unix, zip on windows) into
// scratchDir and returns the single top-level directory. A populated
// scratch directory from a prior run is returned as-is.
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
		err = fmt.Errorf("unsupported node archive format: %s", archivePath)
	}
	if err != nil {
		return "", err
	}

	return download.TopLevelDir(scratchDir)
}

// platformFileToken returns the index.json files token for the running
// OS/architecture (e.g., "linux-x64", "osx-arm64-tar", "win-x64-zip").
func platformFileToken() (string, error) {
	arch, err := nodeArch()
	if err != nil {
		return "", err
	}

	switch goruntime.GOOS {
	case constants.OSLinux:
		return "linux-" + arch, nil
	case constants.OSDarwin:
		return "osx-" + arch + "-tar", nil
	case constants.OSWindows:
		return "win-" + arch + "-zip", nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", goruntime.GOOS)
	}
}

// nodeArch maps the Go architecture to Node.js naming
func nodeArch() (string, error) {
	switch goruntime.GOARCH {
	case constants.ArchAMD64:
		return "x64", nil
	case constants.ArchARM64:
		return "arm64", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goruntime.GOARCH)
	}
}

// archiveName returns the platform archive filename for a version
func archiveName(version string) string {
	arch, _ := nodeArch()
	switch goruntime.GOOS {
	case constants.OSWindows:
		return fmt.Sprintf("node-v%s-win-%s.zip", version, arch)
	case constants.OSDarwin:
		return fmt.Sprintf("node-v%s-darwin-%s.tar.gz", version, arch)
	default:
		return fmt.Sprintf("node-v%s-linux-%s.tar.gz", version, arch)
	}
}

// hasFile reports whether the release ships the platform token
func hasFile(files []string, token string) bool {
	for _, f := range files {
		if f == token {
			return true
		}
	}
	return false
}

// init registers the Node.js provider on package load
func init() {
	if err := runtime.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register Node.js provider: %v", err))
	}
}
