package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossbuild-cli/crossbuild/internal/branding"
	"github.com/crossbuild-cli/crossbuild/internal/recipe"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <recipe>",
	Short: "Run a user-defined recipe",
	Long: `Execute a recipe from ` + "`~/.crossbuild/recipes.yaml`" + `.

Like the built-in recipes, the Cargo config file is shadowed for the
duration of the tool invocation and restored afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		f, err := recipe.Load()
		if err != nil {
			return err
		}

		rec := f.Lookup(name)
		if rec == nil {
			return fmt.Errorf("recipe %q not found (see `%s recipes`)", name, branding.CLIName())
		}

		return runRecipe(cmd, *rec)
	},
}
