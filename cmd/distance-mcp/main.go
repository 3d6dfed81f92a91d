package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/distance-tools-mcp/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := Version
	if BuildTime != "unknown" || GitCommit != "unknown" {
		v += " (built " + BuildTime + ", commit " + GitCommit + ")"
	}

	if err := cli.Execute(ctx, v); err != nil {
		stop()
		os.Exit(1)
	}
}
