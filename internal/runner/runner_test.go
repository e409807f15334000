package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crossbuild-cli/crossbuild/internal/recipe"
	"github.com/crossbuild-cli/crossbuild/internal/shadow"
	"github.com/crossbuild-cli/crossbuild/internal/toolchain"
)

// fakeInvoker records invocations and can observe the filesystem while
// the tool would be running.
type fakeInvoker struct {
	calls     []toolchain.Invocation
	exitCode  int
	invokeErr error
	observe   func()
}

func (f *fakeInvoker) Invoke(_ context.Context, inv toolchain.Invocation) (*toolchain.Output, error) {
	f.calls = append(f.calls, inv)
	if f.observe != nil {
		f.observe()
	}
	if f.invokeErr != nil {
		return nil, f.invokeErr
	}
	return &toolchain.Output{ExitCode: f.exitCode}, nil
}

func setup(t *testing.T) (configPath string) {
	t.Helper()
	t.Setenv("CROSSBUILD_HOME", t.TempDir())
	configPath = filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[build]\njobs = 4\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return configPath
}

func TestRun_InvokesOnceAndRestores(t *testing.T) {
	configPath := setup(t)

	inv := &fakeInvoker{}
	// While the tool runs, the config file must be invisible.
	inv.observe = func() {
		if _, err := os.Stat(configPath); !os.IsNotExist(err) {
			t.Error("config file visible during tool invocation")
		}
	}

	r := New(zerolog.Nop(), inv, configPath)
	rec := *recipe.Builtin(recipe.BuiltinCrossTarget, "aarch64-unknown-linux-gnu")

	if err := r.Run(context.Background(), rec); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(inv.calls) != 1 {
		t.Fatalf("tool invoked %d times, want exactly once", len(inv.calls))
	}
	call := inv.calls[0]
	if call.Release {
		t.Error("cross-target must use the default profile")
	}
	if call.Target != "aarch64-unknown-linux-gnu" {
		t.Errorf("target = %q, want verbatim aarch64-unknown-linux-gnu", call.Target)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config file not restored: %v", err)
	}
	if string(data) != "[build]\njobs = 4\n" {
		t.Errorf("restored config is not byte-identical: %q", data)
	}
}

func TestRun_RestoresOnToolFailure(t *testing.T) {
	configPath := setup(t)

	inv := &fakeInvoker{exitCode: 101}
	r := New(zerolog.Nop(), inv, configPath)

	err := r.Run(context.Background(), *recipe.Builtin(recipe.BuiltinRelease, ""))

	var exitErr *toolchain.ExitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitCodeError, got %v", err)
	}
	if exitErr.Code != 101 {
		t.Errorf("exit code = %d, want 101", exitErr.Code)
	}

	if _, statErr := os.Stat(configPath); statErr != nil {
		t.Errorf("config file not restored after tool failure: %v", statErr)
	}
	if _, statErr := os.Stat(configPath + ".old"); !os.IsNotExist(statErr) {
		t.Error("backup file left behind after tool failure")
	}
}

func TestRun_RestoresOnInvokeError(t *testing.T) {
	configPath := setup(t)

	inv := &fakeInvoker{invokeErr: fmt.Errorf("binary vanished")}
	r := New(zerolog.Nop(), inv, configPath)

	if err := r.Run(context.Background(), *recipe.Builtin(recipe.BuiltinBuild, "")); err == nil {
		t.Fatal("expected error from failing invoker")
	}

	if _, statErr := os.Stat(configPath); statErr != nil {
		t.Errorf("config file not restored after invoke error: %v", statErr)
	}
}

func TestRun_BackupOccupiedSkipsInvocation(t *testing.T) {
	configPath := setup(t)
	if err := os.WriteFile(configPath+".old", []byte("stranded\n"), 0644); err != nil {
		t.Fatalf("writing backup: %v", err)
	}

	inv := &fakeInvoker{}
	r := New(zerolog.Nop(), inv, configPath)

	err := r.Run(context.Background(), *recipe.Builtin(recipe.BuiltinBuild, ""))
	if !errors.Is(err, shadow.ErrBackupExists) {
		t.Fatalf("expected ErrBackupExists, got %v", err)
	}
	if len(inv.calls) != 0 {
		t.Error("tool must not run when the shadow cannot be acquired")
	}
}

func TestRun_MissingConfigStillRuns(t *testing.T) {
	t.Setenv("CROSSBUILD_HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")

	inv := &fakeInvoker{}
	r := New(zerolog.Nop(), inv, configPath)

	if err := r.Run(context.Background(), *recipe.Builtin(recipe.BuiltinBuild, "")); err != nil {
		t.Fatalf("Run with absent config: %v", err)
	}
	if len(inv.calls) != 1 {
		t.Errorf("tool invoked %d times, want once", len(inv.calls))
	}
}
