package cmd

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/toolvm/toolvm/src/internal/runtime"
	"github.com/toolvm/toolvm/src/internal/store"
)

// stubProvider implements runtime.Provider for testing
type stubProvider struct {
	name       string
	binSubpath string
}

func (p *stubProvider) Name() string        { return p.name }
func (p *stubProvider) DisplayName() string { return p.name }
func (p *stubProvider) BinSubpath() string  { return p.binSubpath }
func (p *stubProvider) DownloadTargets(client *http.Client) ([]runtime.DownloadTarget, error) {
	return nil, nil
}
func (p *stubProvider) Decompress(archivePath, scratchDir string) (string, error) {
	return "", nil
}
func (p *stubProvider) TarballShasum(client *http.Client, target runtime.DownloadTarget) (string, error) {
	return "", runtime.ErrShasumNotSupported
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenAt(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	return s
}

func installVersion(t *testing.T, s *store.Store, runtimeName, version string) {
	t.Helper()
	dir := filepath.Join(s.VersionsRoot(), runtimeName, version)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := s.UseAsDefault(runtimeName, version); err != nil {
		t.Fatalf("UseAsDefault: %v", err)
	}
}

func TestDefaultBinDirs(t *testing.T) {
	for _, p := range []*stubProvider{
		{name: "alpha", binSubpath: "bin"},
		{name: "beta", binSubpath: ""},
	} {
		if err := runtime.Register(p); err != nil {
			t.Fatalf("Register(%s): %v", p.name, err)
		}
	}

	s := newTestStore(t)
	installVersion(t, s, "alpha", "1.2.3")
	installVersion(t, s, "beta", "4.5.6")

	dirs := defaultBinDirs(s)

	want := []string{
		filepath.Join(s.VersionsRoot(), "alpha", store.DefaultLinkName, "bin"),
		filepath.Join(s.VersionsRoot(), "beta", store.DefaultLinkName),
	}
	if len(dirs) != len(want) {
		t.Fatalf("defaultBinDirs() returned %d dirs, want %d: %v", len(dirs), len(want), dirs)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("dirs[%d] = %q, want %q", i, dirs[i], want[i])
		}
	}
}

func TestDefaultBinDirsSkipsRuntimesWithoutDefault(t *testing.T) {
	if err := runtime.Register(&stubProvider{name: "gamma", binSubpath: "bin"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	s := newTestStore(t)
	// gamma has a runtime dir but no default symlink
	if err := os.MkdirAll(filepath.Join(s.VersionsRoot(), "gamma", "9.0.0"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if dirs := defaultBinDirs(s); len(dirs) != 0 {
		t.Errorf("defaultBinDirs() = %v, want none for a store with no defaults", dirs)
	}
}
