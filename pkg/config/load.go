// Package config loads testrig configuration files and discovers the file
// that applies to a directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/specvital/testrig/pkg/compose"
)

var (
	// ErrNotFound is returned when an explicitly named config file does not exist.
	ErrNotFound = errors.New("config: file not found")
	// ErrInvalidValue is returned when a setting cannot be converted to its type.
	ErrInvalidValue = errors.New("config: invalid value")
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TESTRIG_"

// Environment variables and the settings they override.
var envKeys = map[string]string{
	EnvPrefix + "CODE_COVERAGE": "features.codeCoverage",
	EnvPrefix + "TESTS":         "karma.tests",
	EnvPrefix + "LOG_LEVEL":     "log.level",
	EnvPrefix + "LOG_FORMAT":    "log.format",
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // json, text
}

// Config is a loaded testrig configuration.
type Config struct {
	// Path is the file the configuration was read from, empty for defaults only.
	Path     string           `json:"path,omitempty" yaml:"-"`
	Features compose.Features `json:"features" yaml:"features"`
	Log      LogConfig        `json:"log" yaml:"log"`
	Karma    compose.Karma    `json:"karma" yaml:"karma"`
}

type karmaSection struct {
	Karma compose.Karma `yaml:"karma"`
}

// Load reads the config file at path, then applies environment overrides.
// An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	k.Set("features.codeCoverage", false)
	k.Set("log.level", "info")
	k.Set("log.format", "text")

	cfg := &Config{Path: path}

	if path != "" {
		data, err := file.Provider(path).ReadBytes()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}

		if err := k.Load(document(data), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}

		var section karmaSection
		if err := yaml.Unmarshal(data, &section); err != nil {
			return nil, fmt.Errorf("config: karma section in %s: %w", path, err)
		}
		cfg.Karma = section.Karma
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	coverage, err := boolValue(k, "features.codeCoverage")
	if err != nil {
		return nil, err
	}
	cfg.Features.CodeCoverage = coverage
	cfg.Log.Level = k.String("log.level")
	cfg.Log.Format = k.String("log.format")
	cfg.Karma.Tests = k.String("karma.tests")

	return cfg, nil
}

// Discover loads the nearest config file at or above dir, or defaults and
// environment when none exists.
func Discover(r *Resolver, dir string) (*Config, error) {
	path, _ := r.Resolve(dir)
	return Load(path)
}

// document serves bytes already read from disk to a koanf parser.
type document []byte

func (d document) ReadBytes() ([]byte, error) {
	return d, nil
}

func (d document) Read() (map[string]any, error) {
	return nil, errors.New("config: document provider does not support Read")
}

// boolValue reads key as a bool. Strings from the environment must parse
// with strconv.ParseBool.
func boolValue(k *koanf.Koanf, key string) (bool, error) {
	switch v := k.Get(key).(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%w: %s: %q is not a boolean", ErrInvalidValue, key, v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %s: %v is not a boolean", ErrInvalidValue, key, v)
	}
}
