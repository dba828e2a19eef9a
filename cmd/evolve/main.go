// Package main evolves steering genomes with a genetic algorithm and saves
// the best one for the game's autopilot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/evolve"
	"github.com/pthm-cable/dodge/game"
	"github.com/pthm-cable/dodge/store"
	"github.com/pthm-cable/dodge/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags (0 / negative = use config)
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	generations := flag.Int("generations", 0, "Number of generations (0 = use config)")
	population := flag.Int("pop", 0, "Population size (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config)")
	elitism := flag.Float64("elitism", -1, "Elite fraction of the population (negative = use config)")
	outputDir := flag.String("output", ".", "Output directory for results")
	storeKind := flag.String("store", "json", "Genome store backend: json, sqlite or memory")
	smooth := flag.Int("smooth", 0, "Moving-average window for the fitness summary (0 = off)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyOverrides(cfg, *generations, *population, *seed, *elitism)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := cfg.WriteYAML(filepath.Join(*outputDir, cfg.Output.ConfigFile)); err != nil {
		logger.Warn("failed to write config snapshot", "error", err)
	}

	ctx := context.Background()
	genomeStore, err := openStore(ctx, *storeKind, *outputDir, cfg)
	if err != nil {
		log.Fatalf("failed to open genome store: %v", err)
	}
	defer store.CloseIfSupported(genomeStore)

	logPath := filepath.Join(*outputDir, cfg.Output.LogFile)
	evoLog, err := telemetry.NewEvolutionLog(logPath)
	if err != nil {
		log.Fatalf("failed to create evolution log: %v", err)
	}
	defer evoLog.Close()

	hof := telemetry.NewHallOfFame(cfg.Evolution.HallOfFameSize)
	evaluator := game.NewEvaluator(cfg)
	opts := evolve.OptionsFromConfig(cfg.Evolution)

	startTime := time.Now()
	progress := func(s telemetry.GenerationStats) {
		done := s.Generation + 1
		elapsed := time.Since(startTime)
		remaining := time.Duration(opts.Generations-done) * (elapsed / time.Duration(done))
		fmt.Printf("Gen %d/%d: best=%.0f mean=%.2f (best ever=%.0f) | elapsed: %s, ETA: %s\n",
			done, opts.Generations, s.BestFitness, s.MeanFitness, s.BestEver,
			formatDuration(elapsed), formatDuration(remaining))
	}

	fmt.Printf("Starting evolution: population=%d, generations=%d, seed=%d, elitism=%.2f\n",
		opts.Population, opts.Generations, opts.Seed, opts.Elitism)
	fmt.Printf("Evaluation: %d ticks (%s simulated) per genome\n",
		cfg.Evaluation.Ticks, cfg.Derived.EvaluationTime)

	opt := evolve.NewOptimizer(opts, cfg.Genes, evaluator.Evaluate, evolve.Deps{
		Recorder:     evoLog,
		Store:        genomeStore,
		HallOfFame:   hof,
		Logger:       logger,
		OnGeneration: progress,
	})
	res := opt.Run(ctx)

	totalTime := time.Since(startTime)
	fmt.Printf("\nEvolution complete after %d generations in %s\n", res.Generations, formatDuration(totalTime))
	if res.Generations == 0 {
		return
	}
	fmt.Printf("Best fitness: %.0f\n", res.Best.Fitness)
	fmt.Println("\nBest genome:")
	fmt.Printf("  repulsion_radius: %.6f\n", res.Best.Genome.RepulsionRadius)
	fmt.Printf("  repulsion_weight: %.6f\n", res.Best.Genome.RepulsionWeight)
	fmt.Printf("  player_speed: %.6f\n", res.Best.Genome.PlayerSpeed)

	if res.SaveErr != nil {
		fmt.Printf("\nWARNING: best genome not saved: %v\n", res.SaveErr)
	} else if res.Saved {
		fmt.Printf("\nBest genome saved to %s store\n", *storeKind)
	}

	hofPath := filepath.Join(*outputDir, cfg.Output.HallOfFameFile)
	if err := hof.WriteJSON(hofPath); err != nil {
		logger.Warn("failed to write hall of fame", "error", err)
	} else {
		fmt.Printf("Hall of fame saved to: %s\n", hofPath)
	}

	if *smooth > 0 {
		// Close the log before reading it back
		if err := evoLog.Close(); err != nil {
			logger.Warn("failed to close evolution log", "error", err)
		}
		summarize(logger, logPath, *smooth)
	}
}

// applyOverrides copies explicitly set flags into the evolution config.
func applyOverrides(cfg *config.Config, generations, population int, seed int64, elitism float64) {
	if generations > 0 {
		cfg.Evolution.Generations = generations
	}
	if population > 0 {
		cfg.Evolution.Population = population
	}
	if seed != 0 {
		cfg.Evolution.Seed = seed
	}
	if elitism >= 0 {
		cfg.Evolution.Elitism = elitism
	}
}

func openStore(ctx context.Context, kind, dir string, cfg *config.Config) (store.Store, error) {
	path := filepath.Join(dir, cfg.Output.GenomeFile)
	if kind == "sqlite" {
		path = filepath.Join(dir, cfg.Output.SQLiteFile)
	}
	s, err := store.NewStore(kind, path, components.DefaultGenome(cfg.Genes))
	if err != nil {
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		return nil, fmt.Errorf("initializing %s store: %w", kind, err)
	}
	return s, nil
}

// summarize reads the evolution log back and reports the smoothed series.
func summarize(logger *slog.Logger, logPath string, window int) {
	rows, err := telemetry.ReadEvolutionLog(logPath)
	if err != nil {
		logger.Warn("failed to read evolution log", "error", err)
		return
	}
	if len(rows) == 0 {
		return
	}

	best, mean := telemetry.Series(rows)
	smoothBest := telemetry.MovingAverage(best, window)
	smoothMean := telemetry.MovingAverage(mean, window)

	fmt.Printf("\nSmoothed fitness (window %d):\n", window)
	for i, r := range rows {
		fmt.Printf("  gen %3d: best=%8.2f mean=%8.2f\n", r.Generation, smoothBest[i], smoothMean[i])
	}
	logger.Info("smoothed summary",
		"window", window,
		"best_min", floats.Min(smoothBest),
		"best_max", floats.Max(smoothBest),
		"mean_min", floats.Min(smoothMean),
		"mean_max", floats.Max(smoothMean),
	)
}
