// Package main is the entry point for the Hookshot client.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/Faultbox/hookshot/internal/config"
	"github.com/Faultbox/hookshot/internal/game"
	"github.com/Faultbox/hookshot/internal/logger"
)

var version = "dev"

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, cfgPath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, cfgPath); err != nil {
		logger.Error("game error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("game closed normally")
	logger.Sync()
}

func run(cfg *config.Config, cfgPath string) error {
	if dsn := cfg.Logging.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:     dsn,
			Release: "hookshot@" + version,
		}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		} else {
			logger.EnableSentry()
			defer sentry.Flush(2 * time.Second)
		}
	}

	logger.Info("=== Hookshot ===", zap.String("version", version))
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg, cfgPath, logger.Named("game"))
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	defer g.Close()

	return g.Run()
}
