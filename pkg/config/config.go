// Package config loads host application settings from a TOML or YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/capiscio/taskrunner/pkg/logger"
)

// Environment variables read by Resolve and ApplyEnv.
const (
	EnvConfig       = "TASKRUNNER_CONFIG"
	EnvLogDebug     = "TASKRUNNER_LOG_DEBUG"
	EnvLogNoColor   = "TASKRUNNER_LOG_NOCOLOR"
	EnvLogTimestamp = "TASKRUNNER_LOG_TIMESTAMP"
)

// DefaultFile is looked up in the working directory when EnvConfig is unset.
const DefaultFile = ".taskrunner.toml"

// ErrUnsupportedFormat is returned for config files that are neither TOML
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Log holds console logger settings.
type Log struct {
	Debug     bool `toml:"debug" yaml:"debug"`
	NoColor   bool `toml:"no_color" yaml:"no_color"`
	Timestamp bool `toml:"timestamp" yaml:"timestamp"`
}

// Config is the host application configuration.
type Config struct {
	Log Log `toml:"log" yaml:"log"`

	// Defaults supplies grammar option defaults keyed by option name
	// (without the leading dashes).
	Defaults map[string]string `toml:"defaults" yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Defaults: map[string]string{}}
}

// LoggerOptions converts the log section into console logger options.
func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Debug:     c.Log.Debug,
		NoColor:   c.Log.NoColor,
		Timestamp: c.Log.Timestamp,
	}
}

// Default returns the configured default for a grammar option, or def.
func (c Config) Default(name, def string) string {
	if v, ok := c.Defaults[name]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// Load reads path, choosing the decoder by extension, and applies the values
// it defines on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if cfg.Defaults == nil {
		cfg.Defaults = map[string]string{}
	}
	return cfg, nil
}

// Resolve loads the file named by EnvConfig, or DefaultFile when it exists,
// then applies environment overrides. Without a file the defaults are used.
func Resolve() (Config, error) {
	path := strings.TrimSpace(os.Getenv(EnvConfig))
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	ApplyEnv(&cfg)
	return cfg, nil
}

// ApplyEnv overrides log settings from the environment. Unparseable values
// are ignored.
func ApplyEnv(cfg *Config) {
	if v, ok := parseBool(os.Getenv(EnvLogDebug)); ok {
		cfg.Log.Debug = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.Log.NoColor = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Log.Timestamp = v
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
