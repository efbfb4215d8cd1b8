package download

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newCountingServer(t *testing.T, payload string) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestFileCachedReusesNonEmptyFile(t *testing.T) {
	server, requests := newCountingServer(t, "fresh payload")

	dest := filepath.Join(t.TempDir(), "node.tar.gz")
	if err := os.WriteFile(dest, []byte("cached payload"), 0644); err != nil {
		t.Fatalf("write cache file: %v", err)
	}

	reused, err := FileCached(http.DefaultClient, server.URL, dest)
	if err != nil {
		t.Fatalf("FileCached() error = %v", err)
	}
	if !reused {
		t.Error("FileCached() did not reuse a non-empty cache entry")
	}
	if *requests != 0 {
		t.Errorf("FileCached() made %d requests for a cached file, want 0", *requests)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if string(data) != "cached payload" {
		t.Errorf("cache entry was overwritten: %q", data)
	}
}

func TestFileCachedRedownloadsZeroLengthFile(t *testing.T) {
	server, requests := newCountingServer(t, "fresh payload")

	// A zero-length entry is what a prior checksum failure leaves behind
	dest := filepath.Join(t.TempDir(), "node.tar.gz")
	if err := os.WriteFile(dest, nil, 0644); err != nil {
		t.Fatalf("write cache file: %v", err)
	}

	reused, err := FileCached(http.DefaultClient, server.URL, dest)
	if err != nil {
		t.Fatalf("FileCached() error = %v", err)
	}
	if reused {
		t.Error("FileCached() trusted a zero-length cache entry")
	}
	if *requests != 1 {
		t.Errorf("FileCached() made %d requests, want 1", *requests)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "fresh payload" {
		t.Errorf("downloaded content = %q, want %q", data, "fresh payload")
	}
}

func TestFileCachedDownloadsMissingFile(t *testing.T) {
	server, requests := newCountingServer(t, "fresh payload")

	dest := filepath.Join(t.TempDir(), "sub", "node.tar.gz")
	reused, err := FileCached(http.DefaultClient, server.URL, dest)
	if err != nil {
		t.Fatalf("FileCached() error = %v", err)
	}
	if reused {
		t.Error("FileCached() claimed reuse with no cache entry")
	}
	if *requests != 1 {
		t.Errorf("FileCached() made %d requests, want 1", *requests)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}
}
