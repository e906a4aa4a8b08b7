package main

import (
	"context"
	"fmt"
	"os"

	"base-wallet-tracker/pkg/config"
	"base-wallet-tracker/pkg/logging"
	"base-wallet-tracker/pkg/observer"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	obs := observer.InitObserver(cfg, logger)
	obs.ListTXs(context.Background())
}
