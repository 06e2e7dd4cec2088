// Command randwall-once requests a single random image and prints it as JSON.
//
// Usage:
//
//	randwall-once [source [publisher-id]]
//
// The source defaults to the configured one (SOURCE, default unsplash). When a
// publisher id from the publishers file is given, the image is also sent there.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/randwall/internal/app"
	"github.com/samvad-hq/randwall/internal/config"
	"github.com/samvad-hq/randwall/internal/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "randwall-once failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries the result, so logs go to stderr
	sugar := logger.New(os.Stderr, cfg.LogLevel)
	defer sugar.Sync()

	var sourceID, sinkID string
	if len(args) > 0 {
		sourceID = args[0]
	}
	if len(args) > 1 {
		sinkID = args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Wrap(sugar)
	res, err := app.FetchOnce(ctx, cfg, sourceID, log)
	if err != nil {
		return err
	}
	if sinkID != "" {
		if err := app.PublishOnce(ctx, cfg, sinkID, res, log); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
