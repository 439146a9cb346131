// Package main replays a click scenario against the movement controller.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/config"
	"github.com/Faultbox/midgard-nav/internal/game"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/internal/logger"
)

//go:embed scenario.yaml
var defaultScenario []byte

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Nav ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sc, err := loadScenario(cfg.Simulation.Scenario)
	if err != nil {
		return err
	}

	scene, err := world.NewScene(sc, cfg, logger.Named("scene"))
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	g, err := game.New(cfg, scene, logger.Named("game"))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := g.Run(ctx)
	if err != nil {
		return fmt.Errorf("running: %w", err)
	}

	for name, n := range summary.Interactions {
		logger.Info("interactions", zap.String("interactable", name), zap.Int("count", n))
	}
	if !summary.Idle {
		logger.Warn("script did not settle within the simulated duration",
			zap.Duration("simulated", summary.Simulated))
	}
	return nil
}

func loadScenario(path string) (*world.Scenario, error) {
	if path == "" {
		logger.Info("using built-in scenario")
		return world.ParseScenario(defaultScenario)
	}
	logger.Info("loading scenario", zap.String("path", path))
	return world.LoadScenario(path)
}
