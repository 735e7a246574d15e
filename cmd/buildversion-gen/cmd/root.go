package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/buildversion/internal/config"
	"github.com/oshokin/buildversion/internal/logger"
	"github.com/oshokin/buildversion/internal/render"
	"github.com/oshokin/buildversion/internal/service/generator"
	"github.com/oshokin/buildversion/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// options collects the generator flags.
	options generator.Options
	// force allows `init` to overwrite existing settings.
	force bool

	// rootCmd represents the base command for generating a build header.
	rootCmd = &cobra.Command{
		Use:   "buildversion-gen",
		Short: "Generate a build header with version, revision and build time.",
		Long: `Looks up the version tag ("git describe --tags"), the revision ("git rev-parse HEAD")
and the current time, then writes three declarations:

  static const char buildVersion[] = "2.5.0.13";
  static const char buildRevision[] = "<commit hash>";
  static const char buildDateTime[] = "<timestamp>";

Other formats: go (const block), plain (name=value), yaml, json.
Lookups can be replaced with fixed values via --tag, --revision and --datetime.
A malformed tag fails without writing anything; an unchanged output file is left alone.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return applyLogLevel()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options.ConfigPath = configPath
			options.Stdout = cmd.OutOrStdout()

			return generator.Run(ctx, &options)
		},
	}

	// initCmd writes the default settings file.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := logger.WithName(context.Background(), "buildversion-gen")

			return generator.WriteDefaultConfig(ctx, configPath, force)
		},
	}
)

// Execute runs the buildversion-gen CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(initCmd)

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

// formatNames lists the supported formats for help output.
func formatNames() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}

	return strings.Join(names, ", ")
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default "+config.DefaultConfigFilename+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&options.Format, "format", "f", "", "output format: "+formatNames()+" (default from settings, "+config.DefaultFormat+")")
	rootCmd.Flags().StringVarP(&options.Output, "output", "o", "", `output file, "-" for standard output`)
	rootCmd.Flags().StringVarP(&options.Package, "package", "p", "", "package clause for the go format")
	rootCmd.Flags().StringVar(&options.Tag, "tag", "", "use this tag instead of running the tag command")
	rootCmd.Flags().StringVar(&options.Revision, "revision", "", "use this revision instead of running the revision command")
	rootCmd.Flags().StringVar(&options.DateTime, "datetime", "", "use this timestamp instead of the clock")

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing settings file")
}
