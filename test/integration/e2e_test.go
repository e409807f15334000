//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crossbuild-cli/crossbuild/internal/cargo"
	"github.com/crossbuild-cli/crossbuild/internal/recipe"
	"github.com/crossbuild-cli/crossbuild/internal/runner"
	"github.com/crossbuild-cli/crossbuild/internal/shadow"
	"github.com/crossbuild-cli/crossbuild/internal/toolchain"
)

const configContents = "[build]\ntarget = \"x86_64-unknown-linux-gnu\"\n"

// TestFullFlowBuiltinRecipe runs a built-in recipe end to end against the
// real invoker and a fake tool: shadow -> invoke once -> restore.
func TestFullFlowBuiltinRecipe(t *testing.T) {
	env := setupTestEnv(t)
	installFakeTool(t, env, 0)
	writeFile(t, env.ConfigPath, configContents)

	configPath, err := cargo.ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath: %v", err)
	}

	inv := &toolchain.CrossInvoker{Tool: "cross", Stdout: os.Stderr, Stderr: os.Stderr}
	r := runner.New(zerolog.Nop(), inv, configPath)

	rec := recipe.Builtin(recipe.BuiltinReleaseTarget, "aarch64-unknown-linux-gnu")
	if err := r.Run(context.Background(), *rec); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(env.ArgsLog)
	if err != nil {
		t.Fatalf("reading args log: %v", err)
	}
	calls := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(calls) != 1 {
		t.Fatalf("tool invoked %d times, want exactly once", len(calls))
	}
	if calls[0] != "build --release --target aarch64-unknown-linux-gnu" {
		t.Errorf("tool argv = %q", calls[0])
	}

	assertFileContents(t, env.ConfigPath, configContents)
	assertAbsent(t, env.ConfigPath+".old")

	if j, _ := shadow.ReadJournal(); j != nil {
		t.Error("journal left behind after successful run")
	}
}

// TestFullFlowUserRecipe loads a recipes file and runs one of its entries.
func TestFullFlowUserRecipe(t *testing.T) {
	env := setupTestEnv(t)
	installFakeTool(t, env, 0)
	writeFile(t, env.ConfigPath, configContents)
	writeFile(t, recipe.FilePath(), `recipes:
  - name: rpi
    description: Release build for the Pi
    profile: release
    target: armv7-unknown-linux-gnueabihf
    extra_args: ["--locked"]
`)

	f, err := recipe.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rec := f.Lookup("rpi")
	if rec == nil {
		t.Fatal("rpi recipe missing")
	}

	configPath, _ := cargo.ConfigPath()
	r := runner.New(zerolog.Nop(), &toolchain.CrossInvoker{Tool: "cross", Stdout: os.Stderr, Stderr: os.Stderr}, configPath)
	if err := r.Run(context.Background(), *rec); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, _ := os.ReadFile(env.ArgsLog)
	got := strings.TrimSpace(string(data))
	if got != "build --release --target armv7-unknown-linux-gnueabihf --locked" {
		t.Errorf("tool argv = %q", got)
	}

	assertFileContents(t, env.ConfigPath, configContents)
}

// TestToolFailureThenRestore documents the failure path: the runner
// restores the config file even when the tool fails, and a simulated
// crash is recoverable with shadow.Restore.
func TestToolFailureThenRestore(t *testing.T) {
	env := setupTestEnv(t)
	installFakeTool(t, env, 101)
	writeFile(t, env.ConfigPath, configContents)

	configPath, _ := cargo.ConfigPath()
	r := runner.New(zerolog.Nop(), &toolchain.CrossInvoker{Tool: "cross", Stdout: os.Stderr, Stderr: os.Stderr}, configPath)

	err := r.Run(context.Background(), *recipe.Builtin(recipe.BuiltinBuild, ""))
	var exitErr *toolchain.ExitCodeError
	if !errors.As(err, &exitErr) || exitErr.Code != 101 {
		t.Fatalf("expected ExitCodeError 101, got %v", err)
	}
	// Unlike the original shell recipes, failure still restores.
	assertFileContents(t, env.ConfigPath, configContents)

	// Simulate a crash that stranded the file mid-shadow.
	if err := os.Rename(env.ConfigPath, env.ConfigPath+".old"); err != nil {
		t.Fatalf("staging stranded backup: %v", err)
	}
	if err := shadow.Restore(zerolog.Nop(), configPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	assertFileContents(t, env.ConfigPath, configContents)
	assertAbsent(t, env.ConfigPath+".old")
}

// TestConcurrentAcquireRejected verifies the backup path doubles as the
// mutual-exclusion check between two invocations.
func TestConcurrentAcquireRejected(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, env.ConfigPath, configContents)

	configPath, _ := cargo.ConfigPath()

	first, err := shadow.Acquire(zerolog.Nop(), configPath)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	if _, err := shadow.Acquire(zerolog.Nop(), configPath); !errors.Is(err, shadow.ErrBackupExists) {
		t.Fatalf("second Acquire: expected ErrBackupExists, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	assertFileContents(t, env.ConfigPath, configContents)
}
