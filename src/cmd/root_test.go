package cmd

import (
	"testing"

	"github.com/toolvm/toolvm/src/internal/config"
	"github.com/toolvm/toolvm/src/internal/runtime"
)

func TestAddUnknownRuntimeReturnsError(t *testing.T) {
	if err := addCmd.RunE(addCmd, []string{"bogusruntime", "22"}); err == nil {
		t.Error("add accepted an unknown runtime, want an error so the process exits non-zero")
	}
}

func TestUseInvalidVersionReturnsError(t *testing.T) {
	if err := runtime.Register(&stubProvider{name: "delta", binSubpath: "bin"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	t.Setenv("TOOLVM_ROOT", t.TempDir())
	config.ResetPathsCache()
	defer config.ResetPathsCache()

	if err := useCmd.RunE(useCmd, []string{"delta", "not.a.version"}); err == nil {
		t.Error("use accepted a malformed version, want an error so the process exits non-zero")
	}
}

func TestRemoveNotInstalledReturnsError(t *testing.T) {
	if err := runtime.Register(&stubProvider{name: "epsilon", binSubpath: "bin"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	t.Setenv("TOOLVM_ROOT", t.TempDir())
	config.ResetPathsCache()
	defer config.ResetPathsCache()

	removeYesFlag = true
	defer func() { removeYesFlag = false }()

	if err := removeCmd.RunE(removeCmd, []string{"epsilon", "9.9.9"}); err == nil {
		t.Error("remove reported success for a version that is not installed")
	}
}
