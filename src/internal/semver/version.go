// Package semver implements semantic version parsing, total ordering, and
// loose user version ranges for toolvm
package semver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Version represents a parsed semantic version
type Version struct {
	Raw   string // The raw version string (e.g., "22.19.0", "0.14.0-dev.1")
	Major int
	Minor int
	Patch int
	Pre   string // Prerelease/build tag, empty for releases
}

// Parse parses a strict "MAJOR.MINOR.PATCH[-PRE]" version string
func Parse(text string) (Version, error) {
	raw := text
	pre := ""

	// Split off the prerelease tag first; build metadata is kept with it
	if idx := strings.IndexAny(text, "-+"); idx >= 0 {
		pre = text[idx+1:]
		text = text[:idx]
	}

	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected MAJOR.MINOR.PATCH", raw)
	}

	major, err := parseComponent(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version in %q: %w", raw, err)
	}
	minor, err := parseComponent(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q: %w", raw, err)
	}
	patch, err := parseComponent(parts[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version in %q: %w", raw, err)
	}

	return Version{Raw: raw, Major: major, Minor: minor, Patch: patch, Pre: pre}, nil
}

func parseComponent(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return n, nil
}

// String returns the string representation of the version
func (v Version) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// Compare returns -1, 0, or 1 when v is less than, equal to, or greater
// than other. The ordering is total: the numeric triple is compared first,
// then prerelease tags (a release sorts above any prerelease of the same
// triple, prereleases compare by dot-separated identifiers with numeric
// identifiers ordered below alphanumeric ones).
func (v Version) Compare(other Version) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	return comparePre(v.Pre, other.Pre)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePre(a, b string) int {
	if a == b {
		return 0
	}
	// A release is greater than any prerelease of the same triple
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}

	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")
	for i := 0; i < len(aIDs) && i < len(bIDs); i++ {
		if c := comparePreID(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}
	// The longer identifier list wins when all shared identifiers are equal
	return compareInt(len(aIDs), len(bIDs))
}

func comparePreID(a, b string) int {
	aNum, aErr := strconv.Atoi(a)
	bNum, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return compareInt(aNum, bNum)
	case aErr == nil:
		// Numeric identifiers sort below alphanumeric ones
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Equal checks if two versions compare equal
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// SortDescending sorts versions in place from highest to lowest.
// Resolution policy everywhere in toolvm is "first match in descending
// order", so both remote catalogs and installed sets go through this.
func SortDescending(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) > 0
	})
}
