// Package config loads the bijector CLI configuration.
//
// Values are layered: built-in defaults, then a YAML or TOML file, then
// environment variables prefixed BIJECTOR__ with "__" separating levels
// (BIJECTOR__CHECK__SAMPLES=64 sets check.samples).
package config

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/born-ml/bijector/internal/check"
)

// SchemaVersion is the only supported schema_version.
const SchemaVersion = "v1"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "BIJECTOR__"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// LogConfig selects the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug|info|warn|error|fatal
	Format string `koanf:"format"` // text|json|logfmt
}

// CheckConfig mirrors check.Options.
type CheckConfig struct {
	Tolerance float64 `koanf:"tolerance"`
	Samples   int     `koanf:"samples"`
	Seed      uint64  `koanf:"seed"`
	Workers   int     `koanf:"workers"`
}

// Config is the full configuration.
type Config struct {
	SchemaVersion string       `koanf:"schema_version"`
	Log           LogConfig    `koanf:"log"`
	Check         CheckConfig  `koanf:"check"`
	Cases         []check.Case `koanf:"cases"`
}

func defaults() map[string]any {
	opts := check.DefaultOptions()
	return map[string]any{
		"schema_version":  SchemaVersion,
		"log.level":       "info",
		"log.format":      "text",
		"check.tolerance": opts.Tolerance,
		"check.samples":   opts.Samples,
		"check.seed":      opts.Seed,
		"check.workers":   opts.Workers,
	}
}

// Default returns the configuration used when no file or environment is set.
func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load merges defaults, the file at path (if path is non-empty) and the
// environment, then validates the result.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	for key, v := range defaults() {
		if err := k.Set(key, v); err != nil {
			return Config{}, errors.Wrapf(err, "default %s", key)
		}
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, errors.Wrapf(err, "load %s", path)
		}
	}

	provider := env.Provider(EnvPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return Config{}, errors.Wrap(err, "load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return TOML(), nil
	default:
		return nil, errors.Wrapf(ErrInvalid, "unsupported config format %q", filepath.Ext(path))
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.SchemaVersion != SchemaVersion {
		return errors.Wrapf(ErrInvalid, "schema_version %q not supported (want %s)", c.SchemaVersion, SchemaVersion)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return errors.Wrapf(ErrInvalid, "log.format %q (want text, json or logfmt)", c.Log.Format)
	}
	if !(c.Check.Tolerance > 0) {
		return errors.Wrapf(ErrInvalid, "check.tolerance must be positive, got %v", c.Check.Tolerance)
	}
	if c.Check.Samples <= 0 {
		return errors.Wrapf(ErrInvalid, "check.samples must be positive, got %d", c.Check.Samples)
	}
	for i, cs := range c.Cases {
		if strings.TrimSpace(cs.Spec) == "" {
			return errors.Wrapf(ErrInvalid, "cases[%d]: empty spec", i)
		}
		for _, d := range cs.Shape {
			if d < 0 {
				return errors.Wrapf(ErrInvalid, "cases[%d]: negative dimension in shape %v", i, cs.Shape)
			}
		}
	}
	return nil
}

// CheckOptions converts the check section into check.Options.
func (c Config) CheckOptions(logger *log.Logger) check.Options {
	return check.Options{
		Tolerance: c.Check.Tolerance,
		Samples:   c.Check.Samples,
		Seed:      c.Check.Seed,
		Workers:   c.Check.Workers,
		Logger:    logger,
	}
}
