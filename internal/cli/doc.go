// Package cli wires the cobra command tree: the four built-in build
// recipes, user-defined recipes, restore, doctor, config, and version.
package cli
