// Package cli implements the distance-mcp command line.
//
// With no subcommand the binary serves MCP over stdio. The analyze
// subcommand runs the same pipeline once over a JSON box list.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/distance-tools-mcp/internal/config"
	"github.com/ironsheep/distance-tools-mcp/internal/logging"
)

// version is set by Execute from the build's ldflags.
var version = "dev"

var (
	configPath   string
	logLevel     string
	strategyName string
)

var rootCmd = &cobra.Command{
	Use:   "distance-mcp",
	Short: "Social-distancing estimates from person bounding boxes",
	Long: `distance-mcp estimates the distance between people in a frame from
their detection bounding boxes and reports the pairs standing closer than a
safety threshold.

Run without a subcommand to start the MCP server on stdio.

Environment variables:
  DISTANCE_MCP_CONFIG=path     TOML config file (same as --config)
  DISTANCE_MCP_LOG_LEVEL=debug Log level override`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML config file")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&strategyName, "strategy", "s", "", "estimator: simple-average or depth-ratio")
}

// Execute runs the root command with the given build version.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}

// setup loads the configuration, applies flag overrides and builds the
// logger every subcommand shares.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if strategyName != "" {
		cfg.Strategy = strategyName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	return cfg, logger, nil
}
