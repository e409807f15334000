package main

import (
	"errors"
	"os"

	"github.com/crossbuild-cli/crossbuild/internal/cli"
	"github.com/crossbuild-cli/crossbuild/internal/toolchain"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		// Propagate the external tool's exit code when the build itself
		// failed; everything else is a wrapper error.
		var exitErr *toolchain.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
