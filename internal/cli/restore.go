package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crossbuild-cli/crossbuild/internal/cargo"
	"github.com/crossbuild-cli/crossbuild/internal/shadow"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Recover a Cargo config file stranded by a failed build",
	Long: `Move a Cargo config file back from its backup path.

A build that crashed between shadowing the config file and restoring it
leaves the file at <config>.old. This command moves it back. It never
overwrites an existing config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := cargo.ConfigPath()
		if err != nil {
			return fmt.Errorf("resolving Cargo config path: %w", err)
		}

		err = shadow.Restore(logger, configPath)
		switch {
		case errors.Is(err, shadow.ErrNotShadowed):
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to restore.")
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", configPath)
		return nil
	},
}
