//go:build !windows

package path

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toolvm/toolvm/src/internal/config"
	"github.com/toolvm/toolvm/src/internal/constants"
	"github.com/toolvm/toolvm/src/internal/ui"
)

// DetectShell returns the user's shell name (bash, zsh, fish, ...).
func DetectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "unknown"
	}
	return filepath.Base(shell)
}

// ShellConfigFile returns the startup file for the given shell.
func ShellConfigFile(shell string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch shell {
	case constants.ShellBash:
		// Prefer .bashrc if it exists, otherwise .bash_profile
		bashrc := filepath.Join(home, ".bashrc")
		if _, err := os.Stat(bashrc); err == nil {
			return bashrc
		}
		return filepath.Join(home, ".bash_profile")

	case constants.ShellZsh:
		return filepath.Join(home, ".zshrc")

	case constants.ShellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")

	default:
		return filepath.Join(home, ".profile")
	}
}

// Persist appends the PATH export for dirs to the user's shell config,
// after prompting for confirmation.
func Persist(dirs []string) error {
	shell := DetectShell()
	if shell == "unknown" {
		return fmt.Errorf("could not detect shell - please add %s to your PATH manually", strings.Join(dirs, ListSeparator()))
	}

	configFile := ShellConfigFile(shell)
	if configFile == "" {
		return fmt.Errorf("could not determine config file for shell %s", shell)
	}

	line := ExportLine(shell, dirs)
	if containsPathModification(configFile, line) {
		ui.Warning("PATH modification already exists in %s, but may not be active in the current shell", configFile)
		ui.Info("Please restart your terminal or run: source %s", configFile)
		return nil
	}

	block := fmt.Sprintf("\n# Added by %s\n%s\n", config.ToolName, line)

	ui.Header("PATH Setup")
	ui.Info("Shell: %s", ui.Highlight(shell))
	ui.Info("Config file: %s", ui.Highlight(configFile))
	ui.Info("Will append: %s", ui.Highlight(line))
	fmt.Printf("\nProceed? [Y/n]: ")

	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))
	if response != "" && response != constants.ResponseY && response != constants.ResponseYes {
		ui.Warning("PATH not modified. Please add this manually to your %s:", configFile)
		ui.Info("%s", line)
		return nil
	}

	if shell == constants.ShellFish {
		if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	f, err := os.OpenFile(configFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("failed to write to config file: %w", err)
	}

	ui.Success("Updated PATH in %s", configFile)
	ui.Warning("Please restart your terminal or run: source %s", configFile)
	return nil
}

// containsPathModification checks if the config file already carries the line.
func containsPathModification(configFile, line string) bool {
	f, err := os.Open(configFile)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == line {
			return true
		}
	}
	return false
}
