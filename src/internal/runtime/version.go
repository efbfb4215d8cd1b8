package runtime

import (
	"fmt"
	"net/url"
	"path"
	"sort"

	"github.com/toolvm/toolvm/src/internal/semver"
)

// DownloadTarget describes one downloadable build of a runtime version.
// Targets live only for the duration of a single command invocation and
// are never persisted.
type DownloadTarget struct {
	VersionString string         // Version exactly as the provider expresses it (e.g., "22.19.0")
	Version       semver.Version // Parsed form used for matching and sorting
	TarballURL    string         // Directly fetchable archive URL
	Shasum        string         // Hex sha256, empty if it must be fetched lazily
}

// ArchiveName returns the basename of the target's archive, used as the
// download cache key.
func (t DownloadTarget) ArchiveName() string {
	u, err := url.Parse(t.TarballURL)
	if err != nil {
		return path.Base(t.TarballURL)
	}
	return path.Base(u.Path)
}

// String returns a formatted string representation
func (t DownloadTarget) String() string {
	return fmt.Sprintf("%s (%s)", t.VersionString, t.TarballURL)
}

// Installation represents an installed runtime version, derived by scanning
// the store on every query.
type Installation struct {
	VersionString string
	Version       semver.Version
	IsDefault     bool
}

// String returns a formatted string representation
func (i Installation) String() string {
	if i.IsDefault {
		return i.VersionString + " (default)"
	}
	return i.VersionString
}

// SortTargetsDescending sorts download targets in place from highest to
// lowest version.
func SortTargetsDescending(targets []DownloadTarget) {
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Version.Compare(targets[j].Version) > 0
	})
}

// SortInstallationsDescending sorts installations in place from highest to
// lowest version.
func SortInstallationsDescending(installs []Installation) {
	sort.Slice(installs, func(i, j int) bool {
		return installs[i].Version.Compare(installs[j].Version) > 0
	})
}
