package evolve

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/game"
	"github.com/pthm-cable/dodge/store"
	"github.com/pthm-cable/dodge/telemetry"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// peakFitness rewards genomes close to a fixed point; seed adds a
// per-generation offset so seeds matter.
func peakFitness(g components.Genome, seed int64) float64 {
	return -(g.RepulsionRadius-150)*(g.RepulsionRadius-150)/100 -
		(g.RepulsionWeight-2)*(g.RepulsionWeight-2) -
		(g.PlayerSpeed-7)*(g.PlayerSpeed-7) + float64(seed%3)
}

type failingStore struct{}

func (failingStore) Init(context.Context) error { return nil }
func (failingStore) Save(context.Context, store.Record) error {
	return errors.New("disk full")
}
func (failingStore) Load(context.Context) (store.Record, bool, error) {
	return store.Record{}, false, nil
}

func testOptions(pop, gens int) Options {
	opts := OptionsFromConfig(config.MustDefaults().Evolution)
	opts.Population = pop
	opts.Generations = gens
	return opts
}

func TestRunBestEverMonotonic(t *testing.T) {
	genes := config.MustDefaults().Genes
	opt := NewOptimizer(testOptions(12, 20), genes, peakFitness, Deps{Logger: quietLogger()})
	res := opt.Run(context.Background())

	if res.Generations != 20 || len(res.History) != 20 {
		t.Fatalf("generations = %d, history = %d", res.Generations, len(res.History))
	}
	prev := res.History[0].BestEver
	for _, s := range res.History[1:] {
		if s.BestEver < prev {
			t.Fatalf("best ever dropped from %v to %v at generation %d", prev, s.BestEver, s.Generation)
		}
		prev = s.BestEver
	}
	if res.Best.Fitness != prev {
		t.Errorf("result best %v != last best ever %v", res.Best.Fitness, prev)
	}
	for i, s := range res.History {
		if s.EvalSeed != 1000+int64(i) {
			t.Errorf("generation %d eval seed = %d", i, s.EvalSeed)
		}
		if s.EliteCount != 3 {
			t.Errorf("generation %d elite = %d, want 3", i, s.EliteCount)
		}
	}
}

func TestRunSameSeedSameResult(t *testing.T) {
	genes := config.MustDefaults().Genes
	a := NewOptimizer(testOptions(8, 5), genes, peakFitness, Deps{Logger: quietLogger()}).Run(context.Background())
	b := NewOptimizer(testOptions(8, 5), genes, peakFitness, Deps{Logger: quietLogger()}).Run(context.Background())

	if a.Best != b.Best {
		t.Errorf("best differs: %+v vs %+v", a.Best, b.Best)
	}
	for i := range a.History {
		if a.History[i] != b.History[i] {
			t.Errorf("generation %d differs", i)
		}
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := config.MustDefaults()
	dir := t.TempDir()
	ctx := context.Background()

	logPath := filepath.Join(dir, "evolution.csv")
	evoLog, err := telemetry.NewEvolutionLog(logPath)
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewJSONFileStore(filepath.Join(dir, "best_agent.json"), components.DefaultGenome(cfg.Genes))
	if err := st.Init(ctx); err != nil {
		t.Fatal(err)
	}
	hof := telemetry.NewHallOfFame(3)

	opts := testOptions(10, 3)
	opts.Seed = 42
	evaluator := game.NewEvaluator(cfg)
	res := NewOptimizer(opts, cfg.Genes, evaluator.Evaluate, Deps{
		Recorder:   evoLog,
		Store:      st,
		HallOfFame: hof,
		Logger:     quietLogger(),
	}).Run(ctx)
	if err := evoLog.Close(); err != nil {
		t.Fatal(err)
	}

	if !res.Saved || res.SaveErr != nil {
		t.Fatalf("saved = %v, err = %v", res.Saved, res.SaveErr)
	}

	rows, err := telemetry.ReadEvolutionLog(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("log rows = %d, want 3", len(rows))
	}
	maxBest := rows[0].BestFitness
	for i, r := range rows {
		if r.Generation != i {
			t.Errorf("row %d generation = %d", i, r.Generation)
		}
		if r.MeanFitness > r.BestFitness {
			t.Errorf("row %d mean %v above best %v", i, r.MeanFitness, r.BestFitness)
		}
		maxBest = max(maxBest, r.BestFitness)
	}

	saved, ok, err := st.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok %v err %v", ok, err)
	}
	if saved.Fitness != maxBest {
		t.Errorf("persisted fitness %v, want max best %v", saved.Fitness, maxBest)
	}
	if !saved.Genome.InBounds(cfg.Genes) {
		t.Errorf("persisted genome %+v out of bounds", saved.Genome)
	}
	if saved.Genome != res.Best.Genome {
		t.Errorf("persisted genome %+v, want %+v", saved.Genome, res.Best.Genome)
	}

	if best, ok := hof.Best(); !ok || best.Fitness != maxBest {
		t.Errorf("hall of fame best = %+v, want fitness %v", best, maxBest)
	}
}

func TestRunSaveFailureIsNotFatal(t *testing.T) {
	genes := config.MustDefaults().Genes
	res := NewOptimizer(testOptions(6, 2), genes, peakFitness, Deps{
		Store:  failingStore{},
		Logger: quietLogger(),
	}).Run(context.Background())

	if res.Generations != 2 {
		t.Errorf("generations = %d, want 2", res.Generations)
	}
	if res.Saved || res.SaveErr == nil {
		t.Errorf("saved = %v, err = %v; want unsaved with error", res.Saved, res.SaveErr)
	}
}

func TestRunZeroGenerationsSkipsSave(t *testing.T) {
	genes := config.MustDefaults().Genes
	st := store.NewMemoryStore()
	_ = st.Init(context.Background())

	res := NewOptimizer(testOptions(6, 0), genes, peakFitness, Deps{Store: st, Logger: quietLogger()}).Run(context.Background())
	if res.Saved || res.Generations != 0 {
		t.Errorf("result = %+v", res)
	}
	if _, ok, _ := st.Load(context.Background()); ok {
		t.Error("store written without any generation")
	}
}

func TestRunOnGeneration(t *testing.T) {
	genes := config.MustDefaults().Genes
	var seen []int
	NewOptimizer(testOptions(4, 3), genes, peakFitness, Deps{
		Logger:       quietLogger(),
		OnGeneration: func(s telemetry.GenerationStats) { seen = append(seen, s.Generation) },
	}).Run(context.Background())

	if len(seen) != 3 || seen[0] != 0 || seen[2] != 2 {
		t.Errorf("callbacks = %v", seen)
	}
}
