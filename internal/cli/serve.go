package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/distance-tools-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server over stdio.

MCP client configuration (e.g. claude_desktop_config.json):
  {
    "mcpServers": {
      "distance": {
        "command": "/path/to/distance-mcp",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting", zap.String("build", version))
	return server.New(cfg, logger).Run(cmd.Context())
}
