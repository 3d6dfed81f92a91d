package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/distance-tools-mcp/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("distance-mcp version %s (protocol server %s)\n", version, server.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
