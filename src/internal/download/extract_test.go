package download

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

type tarEntry struct {
	name    string
	content string
	mode    int64
	dir     bool
}

func writeTar(t *testing.T, w io.Writer, entries []tarEntry) {
	t.Helper()
	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: e.mode}
		if e.dir {
			hdr.Typeflag = tar.TypeDir
		} else {
			hdr.Typeflag = tar.TypeReg
			hdr.Size = int64(len(e.content))
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header: %v", err)
		}
		if !e.dir {
			if _, err := tw.Write([]byte(e.content)); err != nil {
				t.Fatalf("writing tar content: %v", err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar writer: %v", err)
	}
}

var sampleEntries = []tarEntry{
	{name: "tool-1.0.0/", mode: 0755, dir: true},
	{name: "tool-1.0.0/bin/", mode: 0755, dir: true},
	{name: "tool-1.0.0/bin/tool", content: "#!/bin/sh\necho tool\n", mode: 0755},
	{name: "tool-1.0.0/README", content: "readme\n", mode: 0644},
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool.tar.gz")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	gzw := gzip.NewWriter(f)
	writeTar(t, gzw, sampleEntries)
	if err := gzw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}

	dest := filepath.Join(dir, "out")
	if err := ExtractTarGz(archive, dest); err != nil {
		t.Fatalf("ExtractTarGz() error = %v", err)
	}

	assertExtraction(t, dest)
}

func TestExtractTarXz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool.tar.xz")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	xzw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("creating xz writer: %v", err)
	}
	writeTar(t, xzw, sampleEntries)
	if err := xzw.Close(); err != nil {
		t.Fatalf("closing xz writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}

	dest := filepath.Join(dir, "out")
	if err := ExtractTarXz(archive, dest); err != nil {
		t.Fatalf("ExtractTarXz() error = %v", err)
	}

	assertExtraction(t, dest)
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool.zip")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	zw := zip.NewWriter(f)
	for _, e := range sampleEntries {
		if e.dir {
			continue
		}
		hdr := &zip.FileHeader{Name: e.name}
		hdr.SetMode(os.FileMode(e.mode))
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("creating zip entry: %v", err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatalf("writing zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}

	dest := filepath.Join(dir, "out")
	if err := ExtractZip(archive, dest); err != nil {
		t.Fatalf("ExtractZip() error = %v", err)
	}

	assertExtraction(t, dest)
}

// Built with bsdtar --format 7zip over the same tree sampleEntries
// describes; the sevenzip package only reads, so the fixture is embedded.
const sample7z = "N3q8ryccAAPCSCoXwQAAAAAAAAAiAAAAAAAAAFUxYcYAORlISGr+oo7WwAA0nrDjXJITLivJ" +
	"/k5SX53O5UMLY///5AOAAAAAgTMHrg/QaX28nz9HQVz2ZxwWBTX1snatDZg5xcIyWCpxNar+" +
	"4vJiNZNhuFk8CFEdGHKjc/OdJJrl9A697VLV6WItooJFne7l+vX5GNa4If1kCWK1svpcfpsK" +
	"/a+kaIEe7z3ExyXY7ZIRsEVxJ/h0LSLu9+F4cEEGBTjXGahdEM/JakE3GLsLD5XVokOzvQSS" +
	"vz0Gh//+o6aAFwYmAQmAmwAHCwEAASMDAQEFXQAAgAAMgTYKAZoQFFgAAA=="

func TestExtract7z(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(sample7z)
	if err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	dir := t.TempDir()
	archive := filepath.Join(dir, "tool.7z")
	if err := os.WriteFile(archive, raw, 0644); err != nil {
		t.Fatalf("writing archive: %v", err)
	}

	// Through the dispatch, the path self-update assets take
	dest := filepath.Join(dir, "out")
	if err := ExtractArchive(archive, dest); err != nil {
		t.Fatalf("ExtractArchive() error = %v", err)
	}

	assertExtraction(t, dest)
}

func assertExtraction(t *testing.T, dest string) {
	t.Helper()

	binPath := filepath.Join(dest, "tool-1.0.0", "bin", "tool")
	info, err := os.Stat(binPath)
	if err != nil {
		t.Fatalf("extracted binary missing: %v", err)
	}
	if info.Mode()&0111 == 0 {
		t.Errorf("executable bit lost on %s (mode %v)", binPath, info.Mode())
	}

	content, err := os.ReadFile(filepath.Join(dest, "tool-1.0.0", "README"))
	if err != nil {
		t.Fatalf("extracted README missing: %v", err)
	}
	if string(content) != "readme\n" {
		t.Errorf("README content = %q", content)
	}

	top, err := TopLevelDir(dest)
	if err != nil {
		t.Fatalf("TopLevelDir() error = %v", err)
	}
	if filepath.Base(top) != "tool-1.0.0" {
		t.Errorf("TopLevelDir() = %s, want tool-1.0.0", top)
	}
}

func TestExtractArchiveDispatch(t *testing.T) {
	if err := ExtractArchive("tool.rar", t.TempDir()); err == nil {
		t.Error("ExtractArchive() accepted an unsupported format")
	}
}

func TestExtractTarGzRejectsSlip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar.gz")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	gzw := gzip.NewWriter(f)
	writeTar(t, gzw, []tarEntry{
		{name: "../escape", content: "bad", mode: 0644},
	})
	if err := gzw.Close(); err != nil {
		t.Fatalf("closing gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}

	if err := ExtractTarGz(archive, filepath.Join(dir, "out")); err == nil {
		t.Error("ExtractTarGz() accepted a path traversal entry")
	}
}

func TestScratchPopulated(t *testing.T) {
	dir := t.TempDir()
	if ScratchPopulated(dir) {
		t.Error("empty scratch reported populated")
	}
	if ScratchPopulated(filepath.Join(dir, "missing")) {
		t.Error("missing scratch reported populated")
	}
	if err := os.Mkdir(filepath.Join(dir, "tool-1.0.0"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if !ScratchPopulated(dir) {
		t.Error("non-empty scratch reported empty")
	}
}
