// Package selfupdate replaces the running toolvm binary with the latest
// published release, reusing the download, verification, and extraction
// machinery of the acquisition pipeline.
package selfupdate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/toolvm/toolvm/src/internal/config"
	"github.com/toolvm/toolvm/src/internal/constants"
	"github.com/toolvm/toolvm/src/internal/download"
	"github.com/toolvm/toolvm/src/internal/semver"
	"github.com/toolvm/toolvm/src/internal/store"
	"github.com/toolvm/toolvm/src/internal/ui"
)

// DefaultFeedURL is the release descriptor for toolvm itself
const DefaultFeedURL = "https://api.github.com/repos/toolvm/toolvm/releases/latest"

// Release is the latest-release feed document
type Release struct {
	TagName string  `json:"tag_name"` // "v1.2.3"
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable file attached to a release
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Digest             string `json:"digest"` // "sha256:<hex>"
}

// Updater fetches the release feed and swaps the running executable
type Updater struct {
	Store          *store.Store
	Client         *http.Client
	FeedURL        string
	CurrentVersion string
	ExecutablePath string // resolved self-path; empty means os.Executable
}

// New creates an updater with the default feed
func New(s *store.Store, client *http.Client, currentVersion string) *Updater {
	return &Updater{
		Store:          s,
		Client:         client,
		FeedURL:        DefaultFeedURL,
		CurrentVersion: currentVersion,
	}
}

// Run checks the feed and, when a strictly newer release exists, downloads,
// verifies, and installs it over the running executable. The running binary
// is only touched after the new one has been verified and extracted;
// an older or equal release is a no-op, not an error.
func (u *Updater) Run() error {
	body, err := download.Fetch(u.Client, u.FeedURL)
	if err != nil {
		return fmt.Errorf("failed fetching release feed: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return fmt.Errorf("failed parsing release feed: %w", err)
	}

	latest, err := semver.Parse(strings.TrimPrefix(release.TagName, "v"))
	if err != nil {
		return fmt.Errorf("release tag %q is not a version: %w", release.TagName, err)
	}

	// Development builds carry a non-version string and always update
	if current, err := semver.Parse(u.CurrentVersion); err == nil {
		if latest.Compare(current) <= 0 {
			ui.Info("toolvm %s is up to date (latest release is %s)", u.CurrentVersion, release.TagName)
			return nil
		}
	}

	asset, err := matchAsset(release.Assets)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(asset.Digest, "sha256:") {
		return fmt.Errorf("release asset %s has no sha256 digest", asset.Name)
	}
	digest := strings.TrimPrefix(asset.Digest, "sha256:")

	ui.Header("Updating toolvm to %s...", release.TagName)

	archivePath := u.Store.CachedArchivePath(asset.Name)
	if _, err := download.FileCached(u.Client, asset.BrowserDownloadURL, archivePath); err != nil {
		return fmt.Errorf("failed downloading release asset: %w", err)
	}

	if err := download.VerifyFile(archivePath, digest); err != nil {
		var mismatch *download.ErrChecksumMismatch
		if errors.As(err, &mismatch) {
			if terr := download.InvalidateFile(archivePath); terr != nil {
				ui.Warning("Could not invalidate cache entry %s: %v", archivePath, terr)
			}
		}
		return fmt.Errorf("release asset failed verification, keeping current binary: %w", err)
	}

	scratchDir, err := u.Store.ScratchDir(config.ToolName, latest.String())
	if err != nil {
		return err
	}
	if err := download.ExtractArchive(archivePath, scratchDir); err != nil {
		return fmt.Errorf("failed extracting release asset: %w", err)
	}

	newBinary, err := findBinary(scratchDir)
	if err != nil {
		return err
	}

	exePath := u.ExecutablePath
	if exePath == "" {
		resolved, err := os.Executable()
		if err != nil {
			return fmt.Errorf("cannot resolve own executable path: %w", err)
		}
		if resolved, err = filepath.EvalSymlinks(resolved); err != nil {
			return fmt.Errorf("cannot resolve own executable path: %w", err)
		}
		exePath = resolved
	}

	// Verification is done; now delete the running binary and move the
	// new one into its exact path. This ordering is deliberate and must
	// not change.
	if err := os.Remove(exePath); err != nil {
		return fmt.Errorf("failed removing current executable: %w", err)
	}
	if err := moveFile(newBinary, exePath); err != nil {
		return fmt.Errorf("failed installing new executable: %w", err)
	}

	ui.Success("toolvm updated to %s", release.TagName)
	return nil
}

// matchAsset finds the release asset for the running OS/architecture
func matchAsset(assets []Asset) (Asset, error) {
	archTokens := []string{goruntime.GOARCH}
	switch goruntime.GOARCH {
	case constants.ArchAMD64:
		archTokens = append(archTokens, "x86_64", "x64")
	case constants.ArchARM64:
		archTokens = append(archTokens, "aarch64")
	}

	for _, asset := range assets {
		name := strings.ToLower(asset.Name)
		if !strings.Contains(name, goruntime.GOOS) {
			continue
		}
		for _, token := range archTokens {
			if strings.Contains(name, token) {
				return asset, nil
			}
		}
	}
	return Asset{}, fmt.Errorf("no release asset matches %s/%s", goruntime.GOOS, goruntime.GOARCH)
}

// findBinary locates the toolvm executable inside the extracted release
func findBinary(dir string) (string, error) {
	wantName := config.ToolName
	if goruntime.GOOS == constants.OSWindows {
		wantName += constants.ExtExe
	}

	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == wantName {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("release archive does not contain a %s binary", wantName)
	}
	return found, nil
}

// moveFile renames src onto dst, falling back to a copy when the two live
// on different filesystems (the cache is under the platform temp dir).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return os.Remove(src)
}
