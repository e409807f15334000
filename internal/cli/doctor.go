package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/crossbuild-cli/crossbuild/internal/branding"
	"github.com/crossbuild-cli/crossbuild/internal/cargo"
	"github.com/crossbuild-cli/crossbuild/internal/config"
	"github.com/crossbuild-cli/crossbuild/internal/recipe"
	"github.com/crossbuild-cli/crossbuild/internal/shadow"
	"github.com/crossbuild-cli/crossbuild/internal/toolchain"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the build tool and Cargo config state",
	Long:  `Run diagnostic checks on the external build tool, the Cargo config file, and leftover state from failed builds.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		failed := false

		if !checkTool(cmd, w) {
			failed = true
		}
		if !checkCargoConfig(w) {
			failed = true
		}
		if !checkRecipesFile(w) {
			failed = true
		}

		if failed {
			return fmt.Errorf("doctor found problems")
		}
		fmt.Fprintln(w, "\nAll checks passed.")
		return nil
	},
}

// checkTool verifies the external tool is installed and new enough.
func checkTool(cmd *cobra.Command, w io.Writer) bool {
	fmt.Fprintln(w, "Build tool check:")
	tool := config.Get(config.KeyTool)

	path, err := exec.LookPath(tool)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %q not found on PATH\n", tool)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s\n", path)

	version, err := toolchain.DetectVersion(cmd.Context(), tool)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] could not detect %q version: %v\n", tool, err)
		return true
	}
	fmt.Fprintf(w, "  [ OK ] %s %s\n", tool, version)

	if min := config.Get(config.KeyMinToolVersion); min != "" {
		ok, err := toolchain.MeetsMinimum(version, min)
		if err != nil {
			fmt.Fprintf(w, "  [WARN] version comparison failed: %v\n", err)
			return true
		}
		if !ok {
			fmt.Fprintf(w, "  [FAIL] %s %s is older than the configured minimum %s\n", tool, version, min)
			return false
		}
		fmt.Fprintf(w, "  [ OK ] meets minimum version %s\n", min)
	}

	return true
}

// checkCargoConfig inspects the config file, its legacy sibling, the
// backup path, and the shadow journal.
func checkCargoConfig(w io.Writer) bool {
	fmt.Fprintln(w, "Cargo config check:")

	configPath, err := cargo.ConfigPath()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] resolving config path: %v\n", err)
		return false
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(w, "  [ OK ] %s exists\n", configPath)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s absent (builds run without user config)\n", configPath)
	}

	legacyPath := cargo.LegacyConfigPath(configPath)
	if _, err := os.Stat(legacyPath); err == nil {
		fmt.Fprintf(w, "  [WARN] legacy %s exists and is never shadowed; the tool will still read it\n", legacyPath)
	}

	ok := true
	backupPath := cargo.BackupPath(configPath)
	if _, err := os.Stat(backupPath); err == nil {
		fmt.Fprintf(w, "  [FAIL] stranded backup at %s — run `%s restore`\n", backupPath, branding.CLIName())
		ok = false
	}

	j, err := shadow.ReadJournal()
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [WARN] unreadable shadow journal: %v\n", err)
	case j != nil:
		fmt.Fprintf(w, "  [WARN] shadow journal present (pid %d, acquired %s) — a build is running or crashed\n",
			j.PID, j.AcquiredAt.Format("2006-01-02 15:04:05"))
	}

	return ok
}

// checkRecipesFile validates the user recipes file when present.
func checkRecipesFile(w io.Writer) bool {
	fmt.Fprintln(w, "Recipes check:")

	path := recipe.FilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [ OK ] %s absent (built-in recipes only)\n", path)
		return true
	}

	result, err := recipe.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [FAIL] %s: %s (%s)\n", path, issue.Message, issue.Path)
		}
		return false
	}

	fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
	return true
}
