//go:build windows

package path

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"unsafe"

	"github.com/toolvm/toolvm/src/internal/constants"
	"github.com/toolvm/toolvm/src/internal/ui"
	"golang.org/x/sys/windows/registry"
)

var (
	moduser32              = syscall.NewLazyDLL("user32.dll")
	procSendMessageTimeout = moduser32.NewProc("SendMessageTimeoutW")
)

const (
	hwndBroadcast   = 0xffff
	wmSettingChange = 0x001A
	smtoAbortIfHung = 0x0002
)

// DetectShell returns "powershell" or "cmd" on Windows.
func DetectShell() string {
	if os.Getenv("PSModulePath") != "" {
		return constants.ShellPowershell
	}
	return "cmd"
}

// ShellConfigFile returns empty string on Windows; PATH lives in the registry.
func ShellConfigFile(shell string) string {
	return ""
}

// Persist prepends dirs to the user PATH in the registry, after prompting
// for confirmation, and broadcasts the environment change.
func Persist(dirs []string) error {
	joined := strings.Join(dirs, ";")

	ui.Header("PATH Setup")
	ui.Info("This will prepend to your user PATH environment variable")
	ui.Info("Directories: %s", ui.Highlight(joined))
	fmt.Printf("\nProceed? [Y/n]: ")

	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))
	if response != "" && response != constants.ResponseY && response != constants.ResponseYes {
		ui.Warning("PATH not modified")
		return nil
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, `Environment`, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer func() { _ = key.Close() }()

	currentPath, _, err := key.GetStringValue("Path")
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to read current PATH: %w", err)
	}

	entries := strings.Split(currentPath, ";")
	var missing []string
	for _, d := range dirs {
		found := false
		for _, p := range entries {
			if strings.EqualFold(strings.TrimSpace(p), d) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		ui.Info("All directories are already in your registry PATH")
		return nil
	}

	newPath := strings.Join(missing, ";")
	if currentPath != "" {
		newPath += ";" + currentPath
	}
	if err := key.SetStringValue("Path", newPath); err != nil {
		return fmt.Errorf("failed to update PATH in registry: %w", err)
	}

	broadcastSettingChange()

	ui.Success("Added %s to your PATH", strings.Join(missing, ";"))
	ui.Warning("Please restart your terminal for the changes to take effect")
	return nil
}

// broadcastSettingChange notifies running processes of the environment change.
func broadcastSettingChange() {
	env := syscall.StringToUTF16Ptr("Environment")
	_, _, _ = procSendMessageTimeout.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(env)),
		uintptr(smtoAbortIfHung),
		5000,
		0,
	)
}
