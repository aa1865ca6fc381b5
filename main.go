package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/thiagohenrique0810/bacteria-simulator-sub002/config"
	"github.com/thiagohenrique0810/bacteria-simulator-sub002/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 100000, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s, err := sim.New(sim.Options{
		Seed:        *seed,
		Config:      cfg,
		OutputDir:   *outputDir,
		LogStats:    *logStats,
		StatsWindow: int32(*statsWindow),
	})
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	slog.Info("starting simulation",
		"seed", s.Seed(),
		"max_ticks", *maxTicks,
		"population", s.Alive(),
		"food", s.FoodCount(),
	)

	for *maxTicks == 0 || int(s.Tick()) < *maxTicks {
		s.Step()

		if s.Alive() == 0 {
			slog.Info("population extinct", "tick", s.Tick())
			break
		}
	}

	slog.Info("simulation finished",
		"tick", s.Tick(),
		"alive", s.Alive(),
		"food", s.FoodCount(),
	)
}
