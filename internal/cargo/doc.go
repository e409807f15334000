// Package cargo resolves the paths of the user-level Cargo configuration
// file that the build recipes shadow. It never reads or parses the file;
// the rest of the tool only renames it.
package cargo
