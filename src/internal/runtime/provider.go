// Package runtime defines the provider interface and registry for managed toolchains
package runtime

import (
	"errors"
	"net/http"
)

// ErrShasumNotSupported is returned by TarballShasum for providers whose
// catalog already embeds the digest in every download target.
var ErrShasumNotSupported = errors.New("provider embeds checksums in its catalog")

// Provider defines the interface that all runtime providers must implement.
// Adding a runtime means supplying these functions in a new package under
// src/runtimes and blank-importing it from main; the store and the
// acquisition pipeline never change.
type Provider interface {
	// Name returns the name of the runtime (e.g., "node", "zig", "go")
	Name() string

	// DisplayName returns a human-readable name (e.g., "Node.js", "Zig", "Go")
	DisplayName() string

	// BinSubpath returns the path from an extracted install root to its
	// executable directory, used for PATH construction ("bin", or "" when
	// the executables sit at the root)
	BinSubpath() string

	// DownloadTargets fetches the remote catalog, filters it to entries for
	// the running OS/architecture, and returns them sorted strictly
	// descending by version with no duplicates. Providers with several
	// mirrors try them in randomized order and only fail once every mirror
	// has been exhausted.
	DownloadTargets(client *http.Client) ([]DownloadTarget, error)

	// Decompress extracts the archive into scratchDir and returns the
	// single top-level directory produced. When scratchDir already contains
	// an entry from a prior run, that directory is returned without
	// re-extracting.
	Decompress(archivePath, scratchDir string) (string, error)

	// TarballShasum fetches the checksum for a target whose Shasum field is
	// empty, typically from a side-channel manifest of "<hex>  <filename>"
	// lines. Providers with embedded checksums return ErrShasumNotSupported.
	TarballShasum(client *http.Client, target DownloadTarget) (string, error)
}
