package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crossbuild-cli/crossbuild/internal/cargo"
	"github.com/crossbuild-cli/crossbuild/internal/config"
	"github.com/crossbuild-cli/crossbuild/internal/recipe"
	"github.com/crossbuild-cli/crossbuild/internal/runner"
	"github.com/crossbuild-cli/crossbuild/internal/toolchain"
)

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(crossTargetCmd)
	rootCmd.AddCommand(releaseTargetCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build with the default profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecipe(cmd, *recipe.Builtin(recipe.BuiltinBuild, ""))
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Build with the release profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecipe(cmd, *recipe.Builtin(recipe.BuiltinRelease, ""))
	},
}

var crossTargetCmd = &cobra.Command{
	Use:   "cross-target <triple>",
	Short: "Build for a target with the default profile",
	Long: `Build for the given cross-compilation target with the default profile.
The target triple is passed through to the build tool verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecipe(cmd, *recipe.Builtin(recipe.BuiltinCrossTarget, args[0]))
	},
}

var releaseTargetCmd = &cobra.Command{
	Use:   "release-target <triple>",
	Short: "Build for a target with the release profile",
	Long: `Build for the given cross-compilation target with the release profile.
The target triple is passed through to the build tool verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecipe(cmd, *recipe.Builtin(recipe.BuiltinReleaseTarget, args[0]))
	},
}

// runRecipe executes one recipe with the config file shadowed. Interrupts
// cancel the tool but the shadow release still runs.
func runRecipe(cmd *cobra.Command, rec recipe.Recipe) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tool := config.Get(config.KeyTool)

	// Gate on the minimum tool version when one is configured.
	if min := config.Get(config.KeyMinToolVersion); min != "" {
		current, err := toolchain.DetectVersion(ctx, tool)
		if err != nil {
			return fmt.Errorf("checking %q version: %w", tool, err)
		}
		ok, err := toolchain.MeetsMinimum(current, min)
		if err != nil {
			return fmt.Errorf("comparing %q version: %w", tool, err)
		}
		if !ok {
			return fmt.Errorf("%s %s is older than the configured minimum %s", tool, current, min)
		}
	}

	if extra := config.Get(config.KeyExtraArgs); extra != "" {
		rec.ExtraArgs = append(rec.ExtraArgs, strings.Fields(extra)...)
	}

	configPath, err := cargo.ConfigPath()
	if err != nil {
		return fmt.Errorf("resolving Cargo config path: %w", err)
	}

	invoker := &toolchain.CrossInvoker{
		Tool:   tool,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Running %s (tool: %s)...\n", rec.Name, tool)

	return runner.New(logger, invoker, configPath).Run(ctx, rec)
}
