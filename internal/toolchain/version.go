package toolchain

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DetectVersion runs `<tool> --version` and returns the parsed version
// string. Tools print lines like "cross 0.2.5" or "cross 0.2.5 (abc1234
// 2023-11-01)"; the second whitespace-separated field is the version.
func DetectVersion(ctx context.Context, tool string) (string, error) {
	toolBin, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("locating build tool %q: %w", tool, err)
	}

	out, err := exec.CommandContext(ctx, toolBin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("querying %q version: %w", tool, err)
	}

	return parseVersionOutput(string(out))
}

// parseVersionOutput extracts the version field from the first line of
// `--version` output.
func parseVersionOutput(out string) (string, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("unrecognized version output %q", line)
	}
	return fields[1], nil
}

// CompareVersions compares two version strings using semver.
// Returns -1 if current < minimum, 0 if equal, 1 if current > minimum.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(current, minimum string) (int, error) {
	cv, err := parseSemver(current)
	if err != nil {
		return 0, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	mv, err := parseSemver(minimum)
	if err != nil {
		return 0, fmt.Errorf("parsing minimum version %q: %w", minimum, err)
	}
	return cv.Compare(mv), nil
}

// MeetsMinimum returns true when current is at least the minimum version.
func MeetsMinimum(current, minimum string) (bool, error) {
	cmp, err := CompareVersions(current, minimum)
	if err != nil {
		return false, err
	}
	return cmp >= 0, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
