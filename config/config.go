// Package config provides the run configuration and a default platform for
// the oung interpreter.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/oung/core"
	"github.com/sarchlab/oung/program"
)

// EnvConfigPath names the environment variable that points to a config
// file when none is given on the command line.
const EnvConfigPath = "OUNG_CONFIG"

// Config controls a run of the interpreter.
type Config struct {
	StatementCapacity int    `yaml:"statement_capacity"`
	LogLevel          string `yaml:"log_level"`
	DumpState         bool   `yaml:"dump_state"`
	Report            bool   `yaml:"report"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		StatementCapacity: program.DefaultCapacity,
		LogLevel:          "warn",
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values. Unknown keys are an error.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Decode reads a YAML config from r on top of the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Resolve picks the config file to load. An explicit path wins over the
// environment. With neither, the defaults are returned.
func Resolve(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Validate checks the values of the config.
func (c Config) Validate() error {
	if c.StatementCapacity <= 0 {
		return fmt.Errorf("statement_capacity must be positive, got %d",
			c.StatementCapacity)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Level returns the slog level of the config.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}

	return level
}

// ParseLevel converts a level name into a slog level. "trace" is the
// per-statement level of the core.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return core.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", name)
	}
}
