package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oshokin/buildversion/internal/config"
	"github.com/oshokin/buildversion/internal/domain/buildversion"
	"github.com/oshokin/buildversion/internal/logger"
	"github.com/oshokin/buildversion/internal/render"
	"github.com/oshokin/buildversion/internal/source"
)

// Options contains inputs for the generator entry point.
type Options struct {
	// ConfigPath is an optional path to the settings file.
	ConfigPath string
	// Format overrides the configured output format.
	Format string
	// Output overrides the configured output path. "-" forces standard output.
	Output string
	// Package overrides the configured package clause for the Go format.
	Package string
	// Tag, Revision and DateTime replace the matching lookup with a fixed value.
	Tag      string
	Revision string
	DateTime string
	// Stdout receives the header when no output file is set; os.Stdout when nil.
	Stdout io.Writer
}

// Providers are the three collaborators a build header is made from.
type Providers struct {
	Tag      source.Provider
	Revision source.Provider
	DateTime source.Provider
}

// stdoutPath selects standard output even when the settings name a file.
const stdoutPath = "-"

// DefaultFileMode is used for generated files.
const DefaultFileMode os.FileMode = 0o644

// errProviderNotSet indicates a Providers value with a missing collaborator.
var errProviderNotSet = errors.New("provider is not set")

// generator renders one build header.
type generator struct {
	cfg       *config.Config
	format    render.Format
	output    string
	providers Providers
	stdout    io.Writer
}

// Run executes the generation workflow.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "buildversion-gen")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	gen, err := newGenerator(cfg, opts)
	if err != nil {
		return fmt.Errorf("initialize generator: %w", err)
	}

	return gen.Run(ctx)
}

// newGenerator applies command line overrides on top of cfg.
func newGenerator(cfg *config.Config, opts *Options) (*generator, error) {
	if opts.Format != "" {
		cfg.Format = opts.Format
	}

	if opts.Package != "" {
		cfg.Package = opts.Package
	}

	output := cfg.Output
	if opts.Output != "" {
		output = opts.Output
	}

	if output == stdoutPath {
		output = ""
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	return &generator{
		cfg:       cfg,
		format:    format,
		output:    output,
		providers: DefaultProviders(cfg, opts),
		stdout:    stdout,
	}, nil
}

// DefaultProviders builds the providers described by cfg, with fixed values
// from opts taking precedence.
func DefaultProviders(cfg *config.Config, opts *Options) Providers {
	p := Providers{
		Tag:      source.NewCommand(cfg.TagCommand, cfg.Timeout),
		Revision: source.NewCommand(cfg.RevisionCommand, cfg.Timeout),
		DateTime: source.Clock{},
	}

	if len(cfg.DateTimeCommand) > 0 {
		p.DateTime = source.NewCommand(cfg.DateTimeCommand, cfg.Timeout)
	}

	if opts.Tag != "" {
		p.Tag = source.Static(opts.Tag)
	}

	if opts.Revision != "" {
		p.Revision = source.Static(opts.Revision)
	}

	if opts.DateTime != "" {
		p.DateTime = source.Static(opts.DateTime)
	}

	return p
}

// Run renders the header and writes it to the configured destination.
func (g *generator) Run(ctx context.Context) error {
	ctx = logger.WithKV(ctx, "format", string(g.format))

	info, err := Collect(ctx, g.providers)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = render.NewWriter(g.format, &buf, render.WithPackage(g.cfg.Package)).Render(info.Records()); err != nil {
		return fmt.Errorf("render build header: %w", err)
	}

	if g.output == "" {
		_, err = g.stdout.Write(buf.Bytes())

		return err
	}

	written, err := WriteFileIfChanged(g.output, buf.Bytes())
	if err != nil {
		return err
	}

	if written {
		logger.InfoKV(ctx, "Wrote build header", "path", g.output, "version", info.Version.String())
	} else {
		logger.InfoKV(ctx, "Build header is up to date", "path", g.output)
	}

	return nil
}

// Collect queries every provider and assembles the build header Info.
func Collect(ctx context.Context, p Providers) (*buildversion.Info, error) {
	tag, err := provide(ctx, "tag", p.Tag)
	if err != nil {
		return nil, err
	}

	revision, err := provide(ctx, "revision", p.Revision)
	if err != nil {
		return nil, err
	}

	dateTime, err := provide(ctx, "datetime", p.DateTime)
	if err != nil {
		return nil, err
	}

	info, err := buildversion.NewInfo(tag, revision, dateTime)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Collected build info",
		"version", info.Version.String(),
		"revision", info.Revision,
		"datetime", info.DateTime,
	)

	return info, nil
}

func provide(ctx context.Context, name string, p source.Provider) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%s: %w", name, errProviderNotSet)
	}

	value, err := p.Provide(ctx)
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", name, err)
	}

	return value, nil
}

// WriteFileIfChanged replaces path with contents unless it already holds them.
// The file is replaced atomically through a temporary file in the same directory.
func WriteFileIfChanged(path string, contents []byte) (bool, error) {
	path = filepath.Clean(path)

	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, contents) {
		return false, nil
	}

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return false, fmt.Errorf("create temporary file: %w", err)
	}

	// Best-effort cleanup; after a successful rename there is nothing to remove.
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(contents); err != nil {
		_ = tmp.Close()

		return false, fmt.Errorf("write %s: %w", tmp.Name(), err)
	}

	if err = tmp.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err = os.Chmod(tmp.Name(), DefaultFileMode); err != nil {
		return false, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("replace %s: %w", path, err)
	}

	return true, nil
}

// WriteDefaultConfig stores the built-in settings at path.
// An existing file is only replaced when force is set.
func WriteDefaultConfig(ctx context.Context, path string, force bool) error {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Saved default settings", "path", path)

	return nil
}
