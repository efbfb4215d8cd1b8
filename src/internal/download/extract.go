package download

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// ExtractArchive extracts an archive based on its filename suffix.
// Supported formats: .tar.gz/.tgz, .tar.xz, .zip, .7z.
func ExtractArchive(archivePath, destDir string) error {
	name := filepath.Base(archivePath)
	switch {
	case strings.HasSuffix(name, ".tar.gz") || strings.HasSuffix(name, ".tgz"):
		return ExtractTarGz(archivePath, destDir)
	case strings.HasSuffix(name, ".tar.xz"):
		return ExtractTarXz(archivePath, destDir)
	case strings.HasSuffix(name, ".zip"):
		return ExtractZip(archivePath, destDir)
	case strings.HasSuffix(name, ".7z"):
		return Extract7z(archivePath, destDir)
	default:
		return fmt.Errorf("unsupported archive format: %s", name)
	}
}

// ExtractZip extracts a zip archive to a destination directory
func ExtractZip(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := extractZipFile(file, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}

	return nil
}

func extractZipFile(file *zip.File, destDir string) error {
	destPath := filepath.Join(destDir, file.Name)

	// Check for ZipSlip vulnerability
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path: %s", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, file.Mode())
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	srcFile, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = destFile.Close() }()

	_, err = io.Copy(destFile, srcFile)
	return err
}

// ExtractTarGz extracts a tar.gz archive to a destination directory
func ExtractTarGz(tarGzPath, destDir string) error {
	file, err := os.Open(tarGzPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer func() { _ = gzReader.Close() }()

	return extractTarStream(tar.NewReader(gzReader), destDir)
}

// ExtractTarXz extracts a tar.xz archive to a destination directory
func ExtractTarXz(tarXzPath, destDir string) error {
	file, err := os.Open(tarXzPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	xzReader, err := xz.NewReader(file)
	if err != nil {
		return err
	}

	return extractTarStream(tar.NewReader(xzReader), destDir)
}

func extractTarStream(tarReader *tar.Reader, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if err := extractTarFile(header, tarReader, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", header.Name, err)
		}
	}

	return nil
}

func extractTarFile(header *tar.Header, reader io.Reader, destDir string) error {
	destPath := filepath.Join(destDir, header.Name)

	// Check for ZipSlip vulnerability
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path: %s", header.Name)
	}

	switch header.Typeflag {
	case tar.TypeDir:
		return os.MkdirAll(destPath, os.FileMode(header.Mode))

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}

		// Opening with the header mode preserves the executable bit
		outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode))
		if err != nil {
			return err
		}
		defer func() { _ = outFile.Close() }()

		_, err = io.Copy(outFile, reader)
		return err

	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		return os.Symlink(header.Linkname, destPath)

	default:
		// Skip other types
		return nil
	}
}

// Extract7z extracts a 7z archive to a destination directory
func Extract7z(archivePath, destDir string) error {
	reader, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, file := range reader.File {
		if err := extract7zFile(file, destDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}

	return nil
}

func extract7zFile(file *sevenzip.File, destDir string) error {
	destPath := filepath.Join(destDir, file.Name)

	// Check for ZipSlip vulnerability
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path: %s", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, file.Mode())
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	srcFile, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = destFile.Close() }()

	_, err = io.Copy(destFile, srcFile)
	return err
}

// TopLevelDir returns the single top-level directory inside an extraction
// directory. Runtime archives unpack to one root (e.g., node-v22.19.0-linux-x64/).
func TopLevelDir(extractDir string) (string, error) {
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			return filepath.Join(extractDir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("no directory found in %s after extraction", extractDir)
}

// ScratchPopulated reports whether a scratch extraction directory already
// holds a prior run's output, making re-extraction unnecessary.
func ScratchPopulated(scratchDir string) bool {
	entries, err := os.ReadDir(scratchDir)
	return err == nil && len(entries) > 0
}
