// Package recipe models the build recipes: the four built-ins the CLI
// always exposes (build, release, cross-target, release-target) and the
// user-defined recipes file at ~/.crossbuild/recipes.yaml, parsed with
// yaml/v3 and validated against an embedded JSON schema.
package recipe
