package recipe

import (
	"github.com/crossbuild-cli/crossbuild/internal/toolchain"
)

// Build profiles.
const (
	ProfileDebug   = "debug"
	ProfileRelease = "release"
)

// Recipe is one named build recipe: a profile, an optional target triple,
// and optional extra tool arguments.
type Recipe struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Profile     string   `yaml:"profile,omitempty" json:"profile,omitempty"`
	Target      string   `yaml:"target,omitempty" json:"target,omitempty"`
	ExtraArgs   []string `yaml:"extra_args,omitempty" json:"extra_args,omitempty"`
}

// File is the parsed recipes file.
type File struct {
	Recipes []Recipe `yaml:"recipes" json:"recipes"`
}

// Lookup returns the recipe with the given name, or nil.
func (f *File) Lookup(name string) *Recipe {
	for i := range f.Recipes {
		if f.Recipes[i].Name == name {
			return &f.Recipes[i]
		}
	}
	return nil
}

// Invocation translates the recipe into an external tool invocation. The
// target string is carried over verbatim.
func (r Recipe) Invocation() toolchain.Invocation {
	return toolchain.Invocation{
		Release:   r.Profile == ProfileRelease,
		Target:    r.Target,
		ExtraArgs: r.ExtraArgs,
	}
}

// Built-in recipe names, mirroring the original task-runner file.
const (
	BuiltinBuild         = "build"
	BuiltinRelease       = "release"
	BuiltinCrossTarget   = "cross-target"
	BuiltinReleaseTarget = "release-target"
)

// Builtin returns the built-in recipe with the given name, with target
// substituted for the two parameterized recipes. It returns nil for
// unknown names.
func Builtin(name, target string) *Recipe {
	switch name {
	case BuiltinBuild:
		return &Recipe{Name: name, Description: "Build with the default profile", Profile: ProfileDebug}
	case BuiltinRelease:
		return &Recipe{Name: name, Description: "Build with the release profile", Profile: ProfileRelease}
	case BuiltinCrossTarget:
		return &Recipe{Name: name, Description: "Build for a target with the default profile", Profile: ProfileDebug, Target: target}
	case BuiltinReleaseTarget:
		return &Recipe{Name: name, Description: "Build for a target with the release profile", Profile: ProfileRelease, Target: target}
	default:
		return nil
	}
}
