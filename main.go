package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gianluca-venturini/vita/archive"
	"github.com/gianluca-venturini/vita/config"
	"github.com/gianluca-venturini/vita/sim"
	"github.com/gianluca-venturini/vita/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	archivePath := flag.String("archive", "", "SQLite file for survivor genomes (empty = no archive)")
	generations := flag.Int("generations", 0, "Generations to run (0 = use config)")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	numGenerations := cfg.Run.Generations
	if *generations > 0 {
		numGenerations = *generations
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output directory", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var store *archive.Store
	runID := archive.NewRunID()
	if *archivePath != "" {
		store = archive.NewStore(*archivePath)
		if err := store.Init(ctx); err != nil {
			slog.Error("failed to open archive", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.SaveRun(ctx, runID, rngSeed); err != nil {
			slog.Error("failed to register run", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("starting simulation",
		"run_id", runID,
		"seed", rngSeed,
		"generations", numGenerations,
		"population", cfg.Population.Size,
		"world_width", cfg.World.Width,
		"world_height", cfg.World.Height,
	)

	s := sim.New(cfg, sim.Options{Seed: rngSeed})
	defer s.Close()

	s.SpawnPopulation()
	for gen := 0; gen < numGenerations; gen++ {
		stats, survivors := s.RunGeneration()

		if err := output.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation stats", "error", err)
			os.Exit(1)
		}
		if store != nil {
			if err := store.SaveSurvivors(ctx, runID, gen, survivors); err != nil {
				slog.Error("failed to archive survivors", "error", err)
				os.Exit(1)
			}
		}

		if gen < numGenerations-1 {
			s.NextGeneration(survivors)
		}
	}

	if err := output.Close(); err != nil {
		slog.Error("failed to flush output", "error", err)
		os.Exit(1)
	}

	slog.Info("simulation complete", "run_id", runID, "generations", numGenerations)
}
