package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/crossbuild-cli/crossbuild/internal/recipe"
)

func init() {
	rootCmd.AddCommand(recipesCmd)
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List built-in and user-defined recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := recipe.Load()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)

		fmt.Fprintln(w, "BUILT-IN\tDESCRIPTION")
		for _, name := range []string{
			recipe.BuiltinBuild,
			recipe.BuiltinRelease,
			recipe.BuiltinCrossTarget,
			recipe.BuiltinReleaseTarget,
		} {
			r := recipe.Builtin(name, "<triple>")
			fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Description)
		}

		if len(f.Recipes) > 0 {
			fmt.Fprintln(w, "\nUSER\tPROFILE\tTARGET\tDESCRIPTION")
			for _, r := range f.Recipes {
				profile := r.Profile
				if profile == "" {
					profile = recipe.ProfileDebug
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, profile, r.Target, r.Description)
			}
		}

		return w.Flush()
	},
}
