package semver

import (
	"fmt"
	"math"
	"strings"
)

// maxComponent is the widened value for version components the user left
// unspecified, so "22" covers every 22.x.y.
const maxComponent = math.MaxInt

// Range is an inclusive version range built from a loose user spec.
// By construction Min <= Max, so a range is never empty.
type Range struct {
	Min Version
	Max Version
}

// ParseRange parses a loose "MAJOR[.MINOR[.PATCH]]" user spec into a Range.
// Unspecified trailing components widen the range: the minimum fills them
// with 0 and the maximum with the largest representable value.
func ParseRange(text string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(text), ".")
	if len(parts) < 1 || len(parts) > 3 {
		return Range{}, fmt.Errorf("invalid version spec %q: expected MAJOR[.MINOR[.PATCH]]", text)
	}

	major, err := parseComponent(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("invalid major version in %q: %w", text, err)
	}

	minV := Version{Major: major}
	maxV := Version{Major: major, Minor: maxComponent, Patch: maxComponent}

	if len(parts) >= 2 {
		minor, err := parseComponent(parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("invalid minor version in %q: %w", text, err)
		}
		minV.Minor = minor
		maxV.Minor = minor
		maxV.Patch = maxComponent
	}

	if len(parts) == 3 {
		patch, err := parseComponent(parts[2])
		if err != nil {
			return Range{}, fmt.Errorf("invalid patch version in %q: %w", text, err)
		}
		minV.Patch = patch
		maxV.Patch = patch
	}

	return Range{Min: minV, Max: maxV}, nil
}

// Contains reports whether v falls inside the range, bounds included.
func (r Range) Contains(v Version) bool {
	return r.Min.Compare(v) <= 0 && v.Compare(r.Max) <= 0
}

// String renders the range for log and error messages
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s]", boundString(r.Min), boundString(r.Max))
}

func boundString(v Version) string {
	format := func(n int) string {
		if n == maxComponent {
			return "*"
		}
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s.%s.%s", format(v.Major), format(v.Minor), format(v.Patch))
}
