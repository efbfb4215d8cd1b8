package download

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toolvm/toolvm/src/internal/ui"
)

// ErrChecksumMismatch is returned when a file's checksum doesn't match.
type ErrChecksumMismatch struct {
	Expected string
	Actual   string
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ComputeSHA256 computes the SHA256 checksum of a file, streaming it in
// chunks rather than loading it into memory.
func ComputeSHA256(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// VerifyFile checks if an existing file matches the expected SHA256
// checksum. Comparison is case-insensitive on the hex digest.
func VerifyFile(filePath, expectedSHA256 string) error {
	actualSHA256, err := ComputeSHA256(filePath)
	if err != nil {
		return err
	}

	expectedNorm := strings.ToLower(strings.TrimSpace(expectedSHA256))
	actualNorm := strings.ToLower(actualSHA256)

	if actualNorm != expectedNorm {
		return &ErrChecksumMismatch{
			Expected: expectedSHA256,
			Actual:   actualSHA256,
		}
	}

	return nil
}

// InvalidateFile truncates a cached file to zero length so the next run
// re-downloads it instead of trusting corrupt data. The entry is truncated,
// not deleted, to keep the cache key visible.
func InvalidateFile(filePath string) error {
	ui.Debug("Invalidating cache entry: %s", filePath)
	return os.Truncate(filePath, 0)
}
