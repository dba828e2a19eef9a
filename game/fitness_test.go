package game

import (
	"testing"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
)

func TestEvaluateDeterministic(t *testing.T) {
	cfg := config.MustDefaults()
	e := NewEvaluator(cfg)
	g := components.Genome{RepulsionRadius: 120, RepulsionWeight: 1.2, PlayerSpeed: 6}

	first := e.Evaluate(g, 7)
	second := e.Evaluate(g, 7)
	if first != second {
		t.Errorf("Evaluate(seed=7) = %v then %v, want identical", first, second)
	}

	// An evaluation in between with another seed must not leak state
	_ = e.Evaluate(g, 8)
	if third := e.Evaluate(g, 7); third != first {
		t.Errorf("Evaluate(seed=7) after seed 8 = %v, want %v", third, first)
	}
}

func TestSimulateTraceIdentical(t *testing.T) {
	cfg := config.MustDefaults()
	e := NewEvaluator(cfg)
	g := components.Genome{RepulsionRadius: 90, RepulsionWeight: 2.1, PlayerSpeed: 7.5}

	var a, b []World
	e.Simulate(g, 42, func(w World, _ TickResult) { a = append(a, w) })
	e.Simulate(g, 42, func(w World, _ TickResult) { b = append(b, w) })

	if len(a) != cfg.Evaluation.Ticks || len(b) != cfg.Evaluation.Ticks {
		t.Fatalf("observed %d and %d ticks, want %d", len(a), len(b), cfg.Evaluation.Ticks)
	}
	for i := range a {
		if a[i].Player != b[i].Player || a[i].Tick != b[i].Tick || len(a[i].Obstacles) != len(b[i].Obstacles) {
			t.Fatalf("tick %d diverged", i)
		}
		for j := range a[i].Coins {
			if a[i].Coins[j] != b[i].Coins[j] {
				t.Fatalf("tick %d coin %d diverged", i, j)
			}
		}
		for j := range a[i].Obstacles {
			if a[i].Obstacles[j] != b[i].Obstacles[j] {
				t.Fatalf("tick %d obstacle %d diverged", i, j)
			}
		}
	}
}

func TestSimulateOutcome(t *testing.T) {
	cfg := config.MustDefaults()
	e := NewEvaluator(cfg)
	g := components.Genome{RepulsionRadius: 150, RepulsionWeight: 0.8, PlayerSpeed: 8}

	sum := 0
	out := e.Simulate(g, 3, func(_ World, res TickResult) { sum += res.Reward })

	if out.Fitness != sum {
		t.Errorf("fitness %d != summed rewards %d", out.Fitness, sum)
	}
	if out.Fitness != out.Coins*cfg.Rewards.Coin+out.Hits*cfg.Rewards.Collision {
		t.Errorf("fitness %d does not match coins=%d hits=%d", out.Fitness, out.Coins, out.Hits)
	}
	if out.Final.Tick != cfg.Evaluation.Ticks {
		t.Errorf("final tick = %d, want %d", out.Final.Tick, cfg.Evaluation.Ticks)
	}
	if out.Final.Ramps != 5 || len(out.Final.Obstacles) != 9 {
		t.Errorf("final ramps=%d obstacles=%d, want 5 and 9", out.Final.Ramps, len(out.Final.Obstacles))
	}
	if e.Evaluate(g, 3) != float64(out.Fitness) {
		t.Error("Evaluate disagrees with Simulate")
	}
}
