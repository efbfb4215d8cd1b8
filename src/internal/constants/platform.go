// Package constants defines common constants used across toolvm
package constants

// Operating systems
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// CPU architectures
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
	Arch386   = "386"
)

// Shell types
const (
	ShellBash       = "bash"
	ShellZsh        = "zsh"
	ShellFish       = "fish"
	ShellPowershell = "powershell"
)

// File extensions
const (
	ExtExe = ".exe"
)

// Prompt responses
const (
	ResponseY   = "y"
	ResponseYes = "yes"
)
