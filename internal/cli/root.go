package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/crossbuild-cli/crossbuild/internal/branding"
	"github.com/crossbuild-cli/crossbuild/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var verbose bool

// logger is the process-wide structured logger, configured in the
// persistent pre-run so every command sees the --verbose flag.
var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs cross-compilation builds with the user-level Cargo
configuration file shadowed, so the external build tool only sees built-in
and project-local defaults. The file is moved back on every exit path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		return err
	}
	return nil
}
