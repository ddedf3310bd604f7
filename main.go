package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/primordia/config"
	"github.com/pthm-cable/primordia/sim"
	"github.com/pthm-cable/primordia/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	turns := flag.Int("turns", 500, "Stop after N turns (0 = run until extinction)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV stats, turn reports, and config snapshot")
	reportEvery := flag.Int("report-every", 0, "Write a narrator turn report every N turns (0 = off)")
	logStats := flag.Bool("log-stats", false, "Log per-turn stats via slog")

	flag.Parse()

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

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	engine, err := sim.NewEngine(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir, rngSeed)
	if err != nil {
		slog.Error("failed to set up output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"run_id", output.RunID(),
		"turns", *turns,
		"world", cfg.World.Width*cfg.World.Height,
		"population", cfg.Population.Initial,
	)

	for *turns == 0 || int(engine.Turn()) < *turns {
		snap, err := engine.Step()
		if err != nil {
			if errors.Is(err, sim.ErrExtinct) {
				break
			}
			slog.Error("turn failed", "turn", engine.Turn(), "error", err)
			os.Exit(1)
		}

		stats := engine.LastStats()
		if *logStats {
			stats.LogStats()
		}
		if err := output.WriteTurnStats(stats); err != nil {
			slog.Error("failed to write turn stats", "turn", snap.Turn, "error", err)
			os.Exit(1)
		}
		if *reportEvery > 0 && int(snap.Turn)%*reportEvery == 0 {
			report := telemetry.NewTurnReport(snap, engine.ChoiceOptions())
			if err := output.WriteReport(report); err != nil {
				slog.Error("failed to write turn report", "turn", snap.Turn, "error", err)
				os.Exit(1)
			}
		}

		if snap.Extinct {
			slog.Info("lineage extinct", "turn", snap.Turn)
			break
		}
	}

	slog.Info("simulation finished",
		"turn", engine.Turn(),
		"population", engine.Population(),
		"ep", engine.EP(),
		"extinct", engine.Extinct(),
	)
}
