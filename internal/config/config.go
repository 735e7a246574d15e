package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/buildversion/internal/logger"
)

// Config holds the settings shared by the buildversion binaries.
type Config struct {
	// TagCommand prints the version tag, e.g. v2.5-13-g1a2b3c4.
	TagCommand []string `yaml:"tag_command"`
	// RevisionCommand prints the full revision hash.
	RevisionCommand []string `yaml:"revision_command"`
	// DateTimeCommand prints the build timestamp. Empty means the built-in clock.
	DateTimeCommand []string `yaml:"datetime_command,omitempty"`
	// Timeout bounds every lookup command.
	Timeout time.Duration `yaml:"timeout"`
	// Format selects the generator output format.
	Format string `yaml:"format"`
	// Output is the generated file path. Empty means standard output.
	Output string `yaml:"output,omitempty"`
	// Package is the package clause used by the Go output format.
	Package string `yaml:"package"`
	// LogLevel is the minimum level written to stderr.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "buildversion.yaml"

	// DefaultTimeout is the default duration for lookup commands.
	DefaultTimeout = 10 * time.Second

	// DefaultFormat matches the header consumed by buildversion.gen.cpp.
	DefaultFormat = "cpp"

	// DefaultPackage is used by the Go output format when none is set.
	DefaultPackage = "version"

	// DefaultLogLevel keeps the tools quiet on success.
	DefaultLogLevel = "warn"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errTagCommandRequired is returned when the tag lookup is disabled.
	errTagCommandRequired = errors.New("tag command must be provided")
	// errRevisionCommandRequired is returned when the revision lookup is disabled.
	errRevisionCommandRequired = errors.New("revision command must be provided")
	// errInvalidPackage is returned for a package clause that is not an identifier.
	errInvalidPackage = errors.New("package must be a valid Go identifier")
	// errInvalidLogLevel is returned for unknown log levels.
	errInvalidLogLevel = errors.New("unknown log level")
)

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		TagCommand:      []string{"git", "describe", "--tags"},
		RevisionCommand: []string{"git", "rev-parse", "HEAD"},
		Timeout:         DefaultTimeout,
		Format:          DefaultFormat,
		Package:         DefaultPackage,
		LogLevel:        DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
// When path is empty the default file is used if it exists.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for optional fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if len(cfg.TagCommand) == 0 || cfg.TagCommand[0] == "" {
		return errTagCommandRequired
	}

	if len(cfg.RevisionCommand) == 0 || cfg.RevisionCommand[0] == "" {
		return errRevisionCommandRequired
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}

	if cfg.Package == "" {
		cfg.Package = DefaultPackage
	}

	if !token.IsIdentifier(cfg.Package) {
		return fmt.Errorf("%w: %q", errInvalidPackage, cfg.Package)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	return nil
}

// ResolveLogLevel returns override when set, otherwise the level from the
// settings at path. Unreadable settings fall back to DefaultLogLevel so that
// the command itself can report the problem.
func ResolveLogLevel(path, override string) (zapcore.Level, error) {
	level := override
	if level == "" {
		level = DefaultLogLevel
		if cfg, err := Load(path); err == nil {
			level = cfg.LogLevel
		}
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return parsed, fmt.Errorf("%w: %q", errInvalidLogLevel, level)
	}

	return parsed, nil
}
