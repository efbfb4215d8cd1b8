package path

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/toolvm/toolvm/src/internal/constants"
)

func TestIsInPath(t *testing.T) {
	tests := []struct {
		name      string
		dir       string
		setupPath string
		expected  bool
	}{
		{
			name:      "directory exists in PATH",
			dir:       "/usr/bin",
			setupPath: "/usr/bin:/usr/local/bin",
			expected:  true,
		},
		{
			name:      "directory not in PATH",
			dir:       "/nonexistent",
			setupPath: "/usr/bin:/usr/local/bin",
			expected:  false,
		},
		{
			name:      "empty PATH",
			dir:       "/usr/bin",
			setupPath: "",
			expected:  false,
		},
	}

	separator := ":"
	if runtime.GOOS == constants.OSWindows {
		separator = ";"
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PATH", strings.ReplaceAll(tt.setupPath, ":", separator))

			result := IsInPath(filepath.Clean(tt.dir))
			if result != tt.expected {
				t.Errorf("IsInPath(%q) = %v, want %v", tt.dir, result, tt.expected)
			}
		})
	}
}

func TestIsInPathWithSpaces(t *testing.T) {
	testDir := "/path with spaces"
	t.Setenv("PATH", strings.Join([]string{"/usr/bin", testDir, "/usr/local/bin"}, ListSeparator()))

	if !IsInPath(testDir) {
		t.Errorf("IsInPath(%q) = false, want true", testDir)
	}
}

func TestExportLine(t *testing.T) {
	dirs := []string{"/home/u/.toolvm/node/default/bin", "/home/u/.toolvm/zig/default"}

	tests := []struct {
		shell string
		want  string
	}{
		{
			shell: constants.ShellBash,
			want:  `export PATH="/home/u/.toolvm/node/default/bin:/home/u/.toolvm/zig/default:$PATH"`,
		},
		{
			shell: constants.ShellZsh,
			want:  `export PATH="/home/u/.toolvm/node/default/bin:/home/u/.toolvm/zig/default:$PATH"`,
		},
		{
			shell: constants.ShellFish,
			want:  `set -gx PATH "/home/u/.toolvm/node/default/bin" "/home/u/.toolvm/zig/default" $PATH`,
		},
		{
			shell: constants.ShellPowershell,
			want:  `$env:Path = "/home/u/.toolvm/node/default/bin;/home/u/.toolvm/zig/default;" + $env:Path`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			got := ExportLine(tt.shell, dirs)
			if got != tt.want {
				t.Errorf("ExportLine(%q) = %q, want %q", tt.shell, got, tt.want)
			}
		})
	}
}

func TestExportLineUnknownShellFallsBackToPosix(t *testing.T) {
	got := ExportLine("ksh", []string{"/opt/bin"})
	if !strings.HasPrefix(got, "export PATH=") {
		t.Errorf("ExportLine(ksh) = %q, want POSIX export", got)
	}
}

func TestDetectShell(t *testing.T) {
	if runtime.GOOS == constants.OSWindows {
		t.Skip("SHELL detection is unix-only")
	}
	t.Setenv("SHELL", "/usr/bin/zsh")
	if got := DetectShell(); got != "zsh" {
		t.Errorf("DetectShell() = %q, want zsh", got)
	}

	t.Setenv("SHELL", "")
	if got := DetectShell(); got != "unknown" {
		t.Errorf("DetectShell() with no SHELL = %q, want unknown", got)
	}
}
