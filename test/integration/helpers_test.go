//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	StateDir   string // CROSSBUILD_HOME — journal, config.yaml, recipes.yaml
	ConfigPath string // CROSSBUILD_CARGO_CONFIG — the shadowed file
	ToolDir    string // prepended to PATH, holds the fake tool
	ArgsLog    string // argv log written by the fake tool
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so every operation is sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		StateDir: t.TempDir(),
		ToolDir:  t.TempDir(),
	}
	env.ConfigPath = filepath.Join(t.TempDir(), "config.toml")
	env.ArgsLog = filepath.Join(env.ToolDir, "args.log")

	t.Setenv("CROSSBUILD_HOME", env.StateDir)
	t.Setenv("CROSSBUILD_CARGO_CONFIG", env.ConfigPath)
	t.Setenv("PATH", env.ToolDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	return env
}

// installFakeTool writes a fake `cross` that logs its argv and exits with
// the given code.
func installFakeTool(t *testing.T, env *testEnv, exitCode int) {
	t.Helper()

	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--version\" ]; then echo \"cross 0.2.5\"; exit 0; fi\n" +
		"echo \"$@\" >> " + env.ArgsLog + "\n" +
		"exit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(filepath.Join(env.ToolDir, "cross"), []byte(script), 0755); err != nil {
		t.Fatalf("writing fake tool: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileContents(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if string(data) != want {
		t.Errorf("%s contents = %q, want %q", path, data, want)
	}
}

func assertAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist", path)
	}
}
