package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/crossbuild-cli/crossbuild/internal/config"
)

// FileName is the recipes file name inside the state directory.
const FileName = "recipes.yaml"

// FilePath returns the full path to the recipes file (~/.crossbuild/recipes.yaml).
func FilePath() string {
	return filepath.Join(config.Dir(), FileName)
}

// Parse unmarshals recipes file content after validating it against the
// embedded schema.
func Parse(data []byte) (*File, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("invalid recipes file: %s", result.Issues[0].Message)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing recipes file: %w", err)
	}
	return &f, nil
}

// ParseFile reads and parses a recipes file at the given path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipes file %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Load parses the user recipes file. A missing file is not an error: it
// yields an empty File, so only the built-in recipes are available.
func Load() (*File, error) {
	path := FilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &File{}, nil
	}
	return ParseFile(path)
}
