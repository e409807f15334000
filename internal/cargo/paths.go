package cargo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crossbuild-cli/crossbuild/internal/branding"
)

// File name constants for the Cargo configuration convention.
const (
	// ConfigFileName is the modern config file name inside the cargo home.
	ConfigFileName = "config.toml"

	// LegacyConfigFileName is the extensionless spelling Cargo still reads.
	LegacyConfigFileName = "config"

	// BackupSuffix is appended to the config path while it is shadowed.
	BackupSuffix = ".old"

	// homeDirName is the conventional cargo home under $HOME.
	homeDirName = ".cargo"
)

// Home returns the cargo home directory.
// It checks the CARGO_HOME environment variable first,
// then falls back to ~/.cargo.
func Home() (string, error) {
	if v := os.Getenv("CARGO_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, homeDirName), nil
}

// ConfigPath returns the path of the user-level Cargo config file.
// It checks the CROSSBUILD_CARGO_CONFIG environment variable first,
// then falls back to <cargo home>/config.toml.
func ConfigPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("CARGO_CONFIG")); v != "" {
		return v, nil
	}
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigFileName), nil
}

// BackupPath returns the path the config file is parked at while shadowed.
func BackupPath(configPath string) string {
	return configPath + BackupSuffix
}

// LegacyConfigPath returns the extensionless sibling of the given config
// path. Cargo reads it when present, but the recipes never shadow it, so
// doctor warns about it instead.
func LegacyConfigPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), LegacyConfigFileName)
}

// ConfigExists reports whether the config file is present at its path.
func ConfigExists() (bool, error) {
	p, err := ConfigPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking config file %s: %w", p, err)
	}
	return true, nil
}
