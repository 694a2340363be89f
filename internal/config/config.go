// Package config loads trip_parser settings from a TOML file.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"trip_parser/internal/logger"
)

// Output formats for extracted trips.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Config is the whole configuration file.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Extract ExtractConfig `toml:"extract"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// ExtractConfig controls batch extraction.
type ExtractConfig struct {
	Workers      int    `toml:"workers"`
	OutputFormat string `toml:"output_format"`
	Pretty       bool   `toml:"pretty"`

	// Strict treats any diagnostic as a failed document.
	Strict bool `toml:"strict"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  32,
			MaxBackups: 3,
		},
		Extract: ExtractConfig{
			Workers:      runtime.NumCPU(),
			OutputFormat: FormatJSON,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are an error so that typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_size_mb and log.max_backups must not be negative")
	}
	if c.Extract.Workers < 1 {
		return fmt.Errorf("extract.workers must be at least 1, got %d", c.Extract.Workers)
	}
	switch c.Extract.OutputFormat {
	case FormatJSON, FormatMsgpack:
	default:
		return fmt.Errorf("extract.output_format must be %s or %s, got %q", FormatJSON, FormatMsgpack, c.Extract.OutputFormat)
	}
	return nil
}

// Logger returns the logger settings in the form logger.New takes.
func (c LogConfig) Logger() logger.Config {
	return logger.Config{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}
