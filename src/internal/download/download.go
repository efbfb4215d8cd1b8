// Package download provides utilities for fetching, verifying, and
// extracting runtime archives
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/toolvm/toolvm/src/internal/ui"
)

// NewClient returns the HTTP client used for one command invocation.
// Connections are not reused across invocations.
func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
	}
}

// Fetch performs a GET and returns the whole body. Meant for small catalog
// and manifest documents, never for archives.
func Fetch(client *http.Client, url string) ([]byte, error) {
	ui.Debug("Fetching %s", url)

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w (URL: %s)", err, url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch failed (HTTP %s): %s", resp.Status, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response body: %w (URL: %s)", err, url)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body: %s", url)
	}
	return body, nil
}

// File downloads a file from a URL to a destination path with a progress
// bar, streaming the body straight to disk.
func File(client *http.Client, url, destPath string) error {
	ui.Debug("Starting download: %s", url)
	ui.Debug("Destination: %s", destPath)

	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	resp, err := client.Get(url)
	if err != nil {
		ui.Debug("HTTP request failed: %v", err)
		return fmt.Errorf("failed to connect: %w (URL: %s)", err, url)
	}
	defer func() { _ = resp.Body.Close() }()

	ui.Debug("HTTP response: %s", resp.Status)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed (HTTP %s): %s", resp.Status, url)
	}

	size := resp.ContentLength
	ui.Debug("Content-Length: %d bytes", size)

	bar := progressbar.DefaultBytes(
		size,
		"Downloading",
	)

	_, err = io.Copy(io.MultiWriter(out, bar), resp.Body)
	if err != nil {
		ui.Debug("Download failed: %v", err)
		return err
	}

	fmt.Println() // New line after progress bar
	ui.Debug("Download complete: %s", destPath)
	return nil
}

// FileCached downloads a file unless a non-empty copy already exists at
// destPath. Zero-length files are not trusted; a previous run truncates the
// cache entry on checksum failure and this forces the re-download.
// Returns true when the cached copy was reused.
func FileCached(client *http.Client, url, destPath string) (bool, error) {
	info, err := os.Stat(destPath)
	if err == nil && info.Size() > 0 {
		ui.Debug("Reusing cached archive: %s (%d bytes)", destPath, info.Size())
		return true, nil
	}

	if err := File(client, url, destPath); err != nil {
		return false, err
	}
	return false, nil
}
