// Package path provides utilities for PATH environment variable manipulation.
package path

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/toolvm/toolvm/src/internal/constants"
)

// ListSeparator returns the PATH entry separator for the current OS.
func ListSeparator() string {
	if runtime.GOOS == constants.OSWindows {
		return ";"
	}
	return ":"
}

// IsInPath reports whether dir is already an entry of the PATH variable.
func IsInPath(dir string) bool {
	dir = filepath.Clean(dir)
	for _, p := range strings.Split(os.Getenv("PATH"), ListSeparator()) {
		if filepath.Clean(p) == dir {
			return true
		}
	}
	return false
}

// ExportLine builds the statement that prepends dirs to PATH for the given
// shell. The output is meant to be eval'd, e.g. eval "$(toolvm shell bash)".
func ExportLine(shell string, dirs []string) string {
	switch shell {
	case constants.ShellFish:
		quoted := make([]string, len(dirs))
		for i, d := range dirs {
			quoted[i] = fmt.Sprintf("%q", d)
		}
		return fmt.Sprintf("set -gx PATH %s $PATH", strings.Join(quoted, " "))
	case constants.ShellPowershell:
		return fmt.Sprintf(`$env:Path = "%s;" + $env:Path`, strings.Join(dirs, ";"))
	default:
		// bash, zsh and other POSIX shells
		return fmt.Sprintf(`export PATH="%s:$PATH"`, strings.Join(dirs, ":"))
	}
}
