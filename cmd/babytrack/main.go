package main

import (
	"context"
	"os"

	"babytrack/internal/cli"
)

func main() {
	// Load .env before reading any configuration
	cli.LoadEnvFile()

	// Bootstrap logger until the configured one is available
	logger := cli.SetupLogger(nil)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg)

	ctx, stop := cli.SignalContext()

	open := func(ctx context.Context) (*cli.App, error) {
		return cli.Bootstrap(ctx, cfg, logger)
	}

	// cobra has already printed the error
	err := cli.Execute(ctx, open, nil)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
