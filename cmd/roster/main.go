package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nba-roster-service/internal/cli"
	"github.com/preston-bernstein/nba-roster-service/internal/config"
	"github.com/preston-bernstein/nba-roster-service/internal/kv"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/roster"
)

const appVersion = "dev"

func main() {
	os.Exit(run(context.Background()))
}

func run(parent context.Context) int {
	cfg := config.Load()
	// Logs go to stderr so they do not interleave with the table on stdout.
	logger := logging.NewLoggerTo(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		File:    cfg.Log.File,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	}, os.Stderr)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, closeSlot, err := kv.Open(ctx, cfg.Storage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "roster: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeSlot(); err != nil {
			logging.Warn(logger, "storage close failed", "error", err)
		}
	}()

	store := roster.New(slot, roster.Options{
		Key:     cfg.Storage.Key,
		Backend: cfg.Storage.Backend,
		Logger:  logger,
	})
	store.Load()

	if err := cli.New(store, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		logging.Error(logger, "roster session ended with error", err)
		return 1
	}
	return 0
}
