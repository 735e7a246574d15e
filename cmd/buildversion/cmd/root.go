package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/buildversion/internal/config"
	"github.com/oshokin/buildversion/internal/logger"
	"github.com/oshokin/buildversion/internal/service/printer"
	"github.com/oshokin/buildversion/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// format of the printed version.
	format string
	// fromGit runs the configured tag command instead of reading stdin.
	fromGit bool

	// rootCmd represents the base command for printing a version.
	rootCmd = &cobra.Command{
		Use:   "buildversion [tag]",
		Short: "Print the version derived from a git tag.",
		Long: `Reads a tag such as "v2.5-13" (usually the output of "git describe --tags")
and prints the four-part version "2.5.0.13". A missing build suffix becomes 0.

The tag is taken from the argument, from the configured tag command when
--git is set, or from the first line of standard input.
A tag that does not start with v<major>.<minor> fails without printing anything.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return applyLogLevel()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &printer.Options{
				ConfigPath: configPath,
				FromGit:    fromGit,
				Format:     format,
				Input:      cmd.InOrStdin(),
				Output:     cmd.OutOrStdout(),
			}

			if len(args) > 0 {
				options.Tag = args[0]
			}

			return printer.Run(ctx, options)
		},
	}
)

// Execute runs the buildversion CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyLogLevel sets the global level from the flag or, failing that, the settings file.
func applyLogLevel() error {
	level, err := config.ResolveLogLevel(configPath, logLevel)
	if err != nil {
		return err
	}

	logger.SetLevel(level)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVarP(&format, "format", "f", printer.FormatDotted, "output format: dotted, semver, canonical")
	rootCmd.Flags().BoolVarP(&fromGit, "git", "g", false, "run the configured tag command instead of reading stdin")
}
