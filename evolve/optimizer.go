package evolve

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/store"
	"github.com/pthm-cable/dodge/telemetry"
)

// FitnessFunc scores a genome on the arena generated from seed.
type FitnessFunc func(g components.Genome, seed int64) float64

// Recorder receives one row per evaluated generation.
type Recorder interface {
	Record(stats telemetry.GenerationStats) error
}

// Options holds the run parameters.
type Options struct {
	Generations int
	Population  int
	Seed        int64   // drives initialization and reproduction
	Elitism     float64 // fraction of the population kept verbatim
	SeedBase    int64   // evaluation seed = SeedBase + generation
	Mutation    Mutation
}

// OptionsFromConfig maps the evolution config section to Options.
func OptionsFromConfig(ec config.EvolutionConfig) Options {
	return Options{
		Generations: ec.Generations,
		Population:  ec.Population,
		Seed:        ec.Seed,
		Elitism:     ec.Elitism,
		SeedBase:    ec.SeedBase,
		Mutation: Mutation{
			Rate:             ec.MutationRate,
			SigmaRel:         ec.SigmaRel,
			WeightSigmaScale: ec.WeightSigmaScale,
		},
	}
}

// Deps holds the optional collaborators of a run. Nil fields are skipped.
type Deps struct {
	Recorder   Recorder
	Store      store.Store
	HallOfFame *telemetry.HallOfFame
	Logger     *slog.Logger
	// OnGeneration is called after each generation is recorded.
	OnGeneration func(stats telemetry.GenerationStats)
}

// Result is the outcome of a run.
type Result struct {
	Best        Scored // best genome ever seen
	History     []telemetry.GenerationStats
	Generations int
	Saved       bool
	SaveErr     error // persistence failure; the run itself still completed
}

// Optimizer runs a fixed number of generations.
type Optimizer struct {
	opts    Options
	genes   config.GenesConfig
	fitness FitnessFunc
	deps    Deps
	logger  *slog.Logger
}

// NewOptimizer creates an optimizer. fitness must be deterministic in its
// arguments for runs to be reproducible.
func NewOptimizer(opts Options, genes config.GenesConfig, fitness FitnessFunc, deps Deps) *Optimizer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Optimizer{opts: opts, genes: genes, fitness: fitness, deps: deps, logger: logger}
}

// Run evolves the population and persists the best genome ever seen, provided
// at least one generation was evaluated. ctx is only used for persistence.
func (o *Optimizer) Run(ctx context.Context) Result {
	rng := rand.New(rand.NewPCG(uint64(o.opts.Seed), uint64(o.opts.Seed)))

	var res Result
	if o.opts.Population <= 0 {
		return res
	}

	genomes := make([]components.Genome, o.opts.Population)
	for i := range genomes {
		genomes[i] = RandomGenome(rng, o.genes)
	}

	haveBest := false
	for gen := 0; gen < o.opts.Generations; gen++ {
		seed := o.opts.SeedBase + int64(gen)

		pop := make([]Scored, len(genomes))
		fits := make([]float64, len(genomes))
		for i, g := range genomes {
			f := o.fitness(g, seed)
			pop[i] = Scored{Genome: g, Fitness: f}
			fits[i] = f
			if o.deps.HallOfFame != nil {
				o.deps.HallOfFame.Consider(g, f, gen)
			}
		}

		ranked, elite := Select(pop, o.opts.Elitism)
		champion := ranked[0]
		if !haveBest || champion.Fitness > res.Best.Fitness {
			res.Best = champion
			haveBest = true
		}

		stats := telemetry.GenerationStats{
			Generation:  gen,
			BestFitness: champion.Fitness,
			MeanFitness: stat.Mean(fits, nil),
			BestEver:    res.Best.Fitness,
			Champion:    champion.Genome,
			EvalSeed:    seed,
			EliteCount:  len(elite),
			Population:  len(pop),
		}
		if len(fits) > 1 {
			stats.StdFitness = stat.StdDev(fits, nil)
		}
		o.record(stats)
		res.History = append(res.History, stats)
		res.Generations++

		genomes = Reproduce(rng, elite, pop, o.opts.Population, o.genes, o.opts.Mutation)
	}

	if res.Generations > 0 {
		o.finalize(ctx, &res)
	}
	return res
}

func (o *Optimizer) record(stats telemetry.GenerationStats) {
	o.logger.Info("generation", "stats", stats)
	if o.deps.Recorder != nil {
		if err := o.deps.Recorder.Record(stats); err != nil {
			o.logger.Warn("evolution log write failed", "generation", stats.Generation, "error", err)
		}
	}
	if o.deps.OnGeneration != nil {
		o.deps.OnGeneration(stats)
	}
}

// finalize saves the best genome. A failure is reported on res, not fatal.
func (o *Optimizer) finalize(ctx context.Context, res *Result) {
	if o.deps.Store == nil {
		return
	}
	rec := store.Record{Genome: res.Best.Genome, Fitness: res.Best.Fitness}
	if err := o.deps.Store.Save(ctx, rec); err != nil {
		res.SaveErr = err
		o.logger.Warn("save failed", "error", err)
		return
	}
	res.Saved = true
	o.logger.Info("best genome saved",
		"fitness", rec.Fitness,
		"repulsion_radius", rec.RepulsionRadius,
		"repulsion_weight", rec.RepulsionWeight,
		"player_speed", rec.PlayerSpeed,
	)
}
