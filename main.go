package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/skyswarm/config"
	"github.com/pthm-cable/skyswarm/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Autopilot RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", -1, "Stop after N ticks (0 = unlimited, -1 = use config)")
	withScene := flag.Bool("scene", false, "Mirror transforms into the host scene store")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ticks := *maxTicks
	if ticks < 0 {
		ticks = cfg.Simulation.MaxTicks
	}

	sim, err := game.New(cfg, game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       !*withScene,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer sim.Close()

	sim.SpawnCraft()

	slog.Info("starting headless simulation",
		"seed", rngSeed,
		"agents", cfg.Flock.EnemyCount,
		"dt", cfg.Simulation.DT,
		"max_ticks", ticks,
		"autopilot", cfg.Autopilot.Enabled,
		"output_dir", *outputDir,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := sim.Run(ctx, ticks); err != nil && ctx.Err() == nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}
