// Package config loads the distance estimation settings.
//
// Settings come from built-in defaults, then an optional TOML file, then
// environment variables:
//
//	avg_height_ft = 5.4        # assumed height of a person
//	threshold_ft  = 6.0        # minimum safe separation
//	strategy      = "simple-average"   # or "depth-ratio"
//	log_level     = "info"
//	cache_frames  = 16         # decoded frames the server keeps
//
// DISTANCE_MCP_CONFIG names the file when no path is given explicitly, and
// DISTANCE_MCP_LOG_LEVEL overrides log_level.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ironsheep/distance-tools-mcp/internal/distancing"
	"github.com/ironsheep/distance-tools-mcp/internal/imaging"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath = "DISTANCE_MCP_CONFIG"
	EnvLogLevel   = "DISTANCE_MCP_LOG_LEVEL"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every tunable the server and CLI read.
type Config struct {
	AvgHeightFt float64 `toml:"avg_height_ft"`
	ThresholdFt float64 `toml:"threshold_ft"`
	Strategy    string  `toml:"strategy"`
	LogLevel    string  `toml:"log_level"`
	CacheFrames int     `toml:"cache_frames"`
}

// Default returns the 5.4 ft / 6 ft simple-average configuration.
func Default() Config {
	opts := distancing.DefaultOptions()
	return Config{
		AvgHeightFt: opts.AvgHeightFt,
		ThresholdFt: opts.ThresholdFt,
		Strategy:    string(distancing.SimpleAverage),
		LogLevel:    "info",
		CacheFrames: imaging.DefaultCacheFrames,
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. An empty path falls back to $DISTANCE_MCP_CONFIG; if that is
// unset too, no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the physical assumptions, the strategy name and the frame
// cache size.
func (c Config) Validate() error {
	if c.CacheFrames < 1 {
		return fmt.Errorf("%w: cache_frames must be at least 1, got %d", ErrInvalidConfig, c.CacheFrames)
	}
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := distancing.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Options returns the estimator options described by c.
func (c Config) Options() distancing.Options {
	return distancing.Options{
		AvgHeightFt: c.AvgHeightFt,
		ThresholdFt: c.ThresholdFt,
	}
}

// DefaultStrategy resolves the configured strategy name.
func (c Config) DefaultStrategy() distancing.Strategy {
	s, err := distancing.ParseStrategy(c.Strategy)
	if err != nil {
		return distancing.SimpleAverage
	}
	return s
}
