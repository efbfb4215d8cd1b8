package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/toolvm/toolvm/src/internal/path"
	"github.com/toolvm/toolvm/src/internal/runtime"
	"github.com/toolvm/toolvm/src/internal/store"
	"github.com/toolvm/toolvm/src/internal/ui"
)

var shellApplyFlag bool

var shellCmd = &cobra.Command{
	Use:   "shell [shell-name]",
	Short: "Print the PATH export for your shell",
	Long: `Emit the statement that puts every runtime's default version on PATH,
suitable for eval'ing from your shell startup file. The shell name is one of
bash, zsh, fish or powershell; when omitted it is detected from $SHELL.

With --apply the statement is appended to your shell config instead of
printed (on Windows, the user PATH in the registry is updated).

Examples:
  eval "$(toolvm shell bash)"
  toolvm shell fish
  toolvm shell --apply`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := ""
		if len(args) == 1 {
			shell = args[0]
		} else {
			shell = path.DetectShell()
		}

		s, err := store.Open()
		if err != nil {
			return err
		}

		dirs := defaultBinDirs(s)
		if len(dirs) == 0 {
			ui.Warning("No default versions found")
			ui.Info("Install one with: toolvm add <runtime> <version>")
			return nil
		}

		if shellApplyFlag {
			return path.Persist(dirs)
		}

		fmt.Println(path.ExportLine(shell, dirs))
		return nil
	},
}

// defaultBinDirs collects the executable directory behind each runtime's
// default symlink, in registry order.
func defaultBinDirs(s *store.Store) []string {
	var dirs []string
	for _, name := range runtime.List() {
		provider, err := runtime.Get(name)
		if err != nil {
			continue
		}
		defaultDir, ok := s.DefaultDir(name)
		if !ok {
			continue
		}
		if sub := provider.BinSubpath(); sub != "" {
			defaultDir = filepath.Join(defaultDir, sub)
		}
		dirs = append(dirs, defaultDir)
	}
	return dirs
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVar(&shellApplyFlag, "apply", false, "Persist the PATH change to your shell config")
}
