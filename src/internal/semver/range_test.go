package semver

import (
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMin  string
		maxMinor int
		maxPatch int
		wantErr  bool
	}{
		{
			name:     "major only widens minor and patch",
			input:    "22",
			wantMin:  "22.0.0",
			maxMinor: maxComponent,
			maxPatch: maxComponent,
		},
		{
			name:     "major.minor widens patch",
			input:    "0.15",
			wantMin:  "0.15.0",
			maxMinor: 15,
			maxPatch: maxComponent,
		},
		{
			name:     "full version pins exactly",
			input:    "22.19.0",
			wantMin:  "22.19.0",
			maxMinor: 19,
			maxPatch: 0,
		},
		{name: "bad major", input: "x", wantErr: true},
		{name: "bad minor", input: "22.x", wantErr: true},
		{name: "bad patch", input: "22.19.x", wantErr: true},
		{name: "too many components", input: "1.2.3.4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRange(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) error = %v", tt.input, err)
			}

			minWant, err := Parse(tt.wantMin)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.wantMin, err)
			}
			if r.Min.Compare(minWant) != 0 {
				t.Errorf("Min = %v, want %v", r.Min, minWant)
			}
			if r.Max.Minor != tt.maxMinor {
				t.Errorf("Max.Minor = %d, want %d", r.Max.Minor, tt.maxMinor)
			}
			if r.Max.Patch != tt.maxPatch {
				t.Errorf("Max.Patch = %d, want %d", r.Max.Patch, tt.maxPatch)
			}
			if r.Min.Compare(r.Max) > 0 {
				t.Errorf("range %v is empty", r)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		version string
		want    bool
	}{
		{name: "major range includes patch release", spec: "22", version: "22.19.3", want: true},
		{name: "major range excludes next major", spec: "22", version: "23.0.0", want: false},
		{name: "minor range includes patches", spec: "0.15", version: "0.15.9", want: true},
		{name: "minor range excludes next minor", spec: "0.15", version: "0.16.0", want: false},
		{name: "exact pin matches itself", spec: "22.19.0", version: "22.19.0", want: true},
		{name: "exact pin excludes neighbors", spec: "22.19.0", version: "22.19.1", want: false},
		{name: "range lower bound inclusive", spec: "22", version: "22.0.0", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.spec)
			if err != nil {
				t.Fatalf("ParseRange(%q) error = %v", tt.spec, err)
			}
			v, err := Parse(tt.version)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.version, err)
			}
			if got := r.Contains(v); got != tt.want {
				t.Errorf("ParseRange(%q).Contains(%q) = %v, want %v", tt.spec, tt.version, got, tt.want)
			}
		})
	}
}

func TestHighestMatchWins(t *testing.T) {
	// Catalog [1.2.0, 1.3.0, 1.3.1] with spec "1.3" resolves to 1.3.1
	raw := []string{"1.2.0", "1.3.0", "1.3.1"}
	versions := make([]Version, len(raw))
	for i, s := range raw {
		v, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", s, err)
		}
		versions[i] = v
	}
	SortDescending(versions)

	r, err := ParseRange("1.3")
	if err != nil {
		t.Fatalf("ParseRange error = %v", err)
	}

	var picked string
	for _, v := range versions {
		if r.Contains(v) {
			picked = v.Raw
			break
		}
	}
	if picked != "1.3.1" {
		t.Errorf("picked %q, want 1.3.1", picked)
	}
}
