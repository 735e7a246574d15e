package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oshokin/buildversion/internal/config"
	"github.com/oshokin/buildversion/internal/domain/buildversion"
	"github.com/oshokin/buildversion/internal/logger"
	"github.com/oshokin/buildversion/internal/source"
)

// Output formats for the printed version.
const (
	// FormatDotted prints major.minor.0.build.
	FormatDotted = "dotted"
	// FormatSemver prints major.minor.0+build.
	FormatSemver = "semver"
	// FormatCanonical prints vmajor.minor.0.
	FormatCanonical = "canonical"
)

// Options contains inputs for the printer entry point.
type Options struct {
	// ConfigPath is an optional path to the settings file, used with FromGit.
	ConfigPath string
	// Tag overrides the input; when empty the first line of Input is used.
	Tag string
	// FromGit runs the configured tag command instead of reading Input.
	FromGit bool
	// Format is one of FormatDotted, FormatSemver or FormatCanonical.
	Format string
	// Input is read when neither Tag nor FromGit is set; os.Stdin when nil.
	Input io.Reader
	// Output receives the version line; os.Stdout when nil.
	Output io.Writer
}

// errUnknownFormat is returned for an unsupported output format.
var errUnknownFormat = errors.New("unsupported output format")

// Run resolves the tag, parses it and prints one version line.
// Nothing is written to Output unless the tag parses.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "buildversion")

	provider, err := tagProvider(opts)
	if err != nil {
		return err
	}

	tag, err := provider.Provide(ctx)
	if err != nil {
		return fmt.Errorf("read tag: %w", err)
	}

	logger.DebugKV(ctx, "Resolved tag", "tag", strings.TrimSpace(tag))

	v, err := buildversion.Parse(tag)
	if err != nil {
		return err
	}

	line, err := Format(v, opts.Format)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	if _, err = fmt.Fprintln(output, line); err != nil {
		return fmt.Errorf("write version: %w", err)
	}

	return nil
}

// Format renders v in the requested output format. Empty means FormatDotted.
func Format(v *buildversion.Version, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatDotted:
		return v.String(), nil
	case FormatSemver:
		sv, err := v.Semver()
		if err != nil {
			return "", err
		}

		return sv.SemVer(), nil
	case FormatCanonical:
		sv, err := v.Semver()
		if err != nil {
			return "", err
		}

		return sv.Canonical(), nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// tagProvider picks where the tag comes from.
//
//nolint:ireturn // Callers only need a Provider.
func tagProvider(opts *Options) (source.Provider, error) {
	switch {
	case opts.Tag != "":
		return source.Static(opts.Tag), nil
	case opts.FromGit:
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}

		return source.NewCommand(cfg.TagCommand, cfg.Timeout), nil
	default:
		input := opts.Input
		if input == nil {
			input = os.Stdin
		}

		return source.Reader{R: input}, nil
	}
}
