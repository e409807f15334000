// Package config manages user-level settings stored at ~/.crossbuild/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the external tool name and its minimum accepted version.
package config
