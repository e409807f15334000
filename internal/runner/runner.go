// Package runner sequences one recipe execution: shadow the Cargo config
// file, invoke the external tool exactly once, restore the file. The
// restore runs on every exit path, including tool failure and
// cancellation.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/crossbuild-cli/crossbuild/internal/recipe"
	"github.com/crossbuild-cli/crossbuild/internal/shadow"
	"github.com/crossbuild-cli/crossbuild/internal/toolchain"
)

// Runner executes recipes against a configured invoker.
type Runner struct {
	// Invoker runs the external build tool.
	Invoker toolchain.Invoker

	// ConfigPath is the Cargo config file to shadow.
	ConfigPath string

	// Logger receives structured step events.
	Logger zerolog.Logger
}

// New creates a Runner.
func New(logger zerolog.Logger, invoker toolchain.Invoker, configPath string) *Runner {
	return &Runner{
		Invoker:    invoker,
		ConfigPath: configPath,
		Logger:     logger,
	}
}

// Run executes one recipe. A non-zero tool exit is returned as a
// *toolchain.ExitCodeError after the config file has been restored, so
// the caller can propagate the tool's exit status.
func (r *Runner) Run(ctx context.Context, rec recipe.Recipe) (err error) {
	log := r.Logger.With().Str("recipe", rec.Name).Logger()

	s, err := shadow.Acquire(log, r.ConfigPath)
	if err != nil {
		return fmt.Errorf("recipe %s: %w", rec.Name, err)
	}
	defer func() {
		if relErr := s.Release(); relErr != nil {
			err = errors.Join(err, relErr)
		}
	}()

	inv := rec.Invocation()
	log.Info().Strs("args", inv.Args()).Msg("invoking build tool")

	out, invErr := r.Invoker.Invoke(ctx, inv)
	if invErr != nil {
		return fmt.Errorf("recipe %s: %w", rec.Name, invErr)
	}

	if out.ExitCode != 0 {
		log.Warn().Int("exit_code", out.ExitCode).Msg("build tool failed")
		return &toolchain.ExitCodeError{Code: out.ExitCode}
	}

	log.Info().Msg("build tool finished")
	return nil
}
