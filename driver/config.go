package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gahag/hush/runtime"
)

// ConfigEnv names the environment variable consulted when no explicit config path is given.
const ConfigEnv = "HUSH_CONFIG"

// MaxDiagnostics is the default number of errors printed per analysis stage.
const MaxDiagnostics = 20

// Config is the contents of a hush.toml file.
type Config struct {
	Runtime     RuntimeConfig     `toml:"runtime"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Log         LogConfig         `toml:"log"`
}

type RuntimeConfig struct {
	RecursionLimit int `toml:"recursion_limit"`
}

type DiagnosticsConfig struct {
	MaxErrors int       `toml:"max_errors"`
	Color     ColorMode `toml:"color"`
}

type LogConfig struct {
	Verbosity int `toml:"verbosity"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Runtime:     RuntimeConfig{RecursionLimit: runtime.DefaultRecursionLimit},
		Diagnostics: DiagnosticsConfig{MaxErrors: MaxDiagnostics, Color: ColorAuto},
	}
}

// LoadConfig reads and validates the config file at path. Fields the file leaves out
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveConfig loads the explicit path when one is given. Otherwise it falls back to
// $HUSH_CONFIG, where a missing file is not an error, and finally to the defaults.
func ResolveConfig(explicit string) (Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}

	path := os.Getenv(ConfigEnv)
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func (c *Config) validate() error {
	if c.Runtime.RecursionLimit <= 0 {
		return fmt.Errorf("runtime.recursion_limit must be positive, got %d", c.Runtime.RecursionLimit)
	}
	if c.Diagnostics.MaxErrors <= 0 {
		return fmt.Errorf("diagnostics.max_errors must be positive, got %d", c.Diagnostics.MaxErrors)
	}
	if _, err := ParseColorMode(string(c.Diagnostics.Color)); err != nil {
		return fmt.Errorf("diagnostics.color: %w", err)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	return nil
}
