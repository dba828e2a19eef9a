package game

import (
	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/systems"
)

// Outcome summarizes one headless evaluation.
type Outcome struct {
	Fitness int // cumulative reward
	Coins   int
	Hits    int
	Final   World
}

// Evaluator scores genomes by running the arena headless for a fixed number
// of ticks from a seeded starting state.
type Evaluator struct {
	cfg     *config.Config
	stepper *Stepper
}

// NewEvaluator creates an evaluator for the given configuration.
func NewEvaluator(cfg *config.Config) *Evaluator {
	return &Evaluator{cfg: cfg, stepper: NewStepper(cfg)}
}

// Evaluate returns the fitness of g on the arena generated from seed.
// The same genome and seed always produce the same fitness.
func (e *Evaluator) Evaluate(g components.Genome, seed int64) float64 {
	return float64(e.Simulate(g, seed, nil).Fitness)
}

// Simulate runs one full evaluation. If observe is non-nil it is called after
// every tick with the new world and that tick's result.
func (e *Evaluator) Simulate(g components.Genome, seed int64, observe func(World, TickResult)) Outcome {
	rng := NewRand(seed)
	w := NewWorld(e.cfg, rng)
	agent := systems.NewAgent(g)
	dt := e.cfg.Derived.TickDuration

	var out Outcome
	for i := 0; i < e.cfg.Evaluation.Ticks; i++ {
		var res TickResult
		w, res = e.stepper.Step(w, agent, g.PlayerSpeed, dt, rng)
		out.Fitness += res.Reward
		out.Coins += res.Coins
		out.Hits += res.Hits
		if observe != nil {
			observe(w, res)
		}
	}
	out.Final = w
	return out
}
