package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/randwall/internal/app"
	"github.com/samvad-hq/randwall/internal/config"
	"github.com/samvad-hq/randwall/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "randwall start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sugar, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("randwall starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rotator, err := app.NewRotator(ctx, cfg, logger.Wrap(sugar))
	if err != nil {
		logger.ErrorObj("failed to initialize rotator", "error", err.Error())
		return err
	}

	if err := rotator.Run(ctx); err != nil {
		return fmt.Errorf("rotator run: %w", err)
	}

	return nil
}
