// Command bujonowd runs the background journal daemon: it serves the HTTP
// JSON API over the shared entry store and holds the single-instance lock.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"bujonow/internal/api"
	"bujonow/internal/config"
	"bujonow/internal/daemon"
	"bujonow/internal/logging"
	"bujonow/internal/preflight"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	failed := false
	for _, result := range preflight.RunAll(ctx, cfg) {
		if result.Passed {
			logger.Info("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
			continue
		}
		failed = true
		logger.Error("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail))
	}
	if failed {
		log.Fatal("preflight checks failed; fix the configuration and restart")
	}

	service, err := api.NewFromConfig(cfg, logger)
	if err != nil {
		log.Fatalf("build journal service: %v", err)
	}

	d, err := daemon.New(cfg, service, logger)
	if err != nil {
		log.Fatalf("create daemon: %v", err)
	}
	if err := d.Start(ctx); err != nil {
		log.Fatalf("start daemon: %v", err)
	}

	<-ctx.Done()
	d.Stop()
	logger.Info("bujonowd shut down")
}
