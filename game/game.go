// Package game holds the arena state and advances it one tick at a time.
// It carries no rendering: the headless evaluator and the interactive
// window both drive the same Stepper.
package game

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/pthm-cable/dodge/components"
)

// World is a snapshot of the arena. Step never mutates the World it is given;
// it returns a fresh one.
type World struct {
	Player        components.Player
	Coins         []components.Coin
	Obstacles     []components.Obstacle
	ObstacleSpeed float64       // shared speed magnitude of all obstacles
	Ramps         int           // difficulty steps applied so far
	Elapsed       time.Duration // simulated time since the start
	Tick          int
}

// Clone returns a deep copy of w.
func (w World) Clone() World {
	w.Coins = slices.Clone(w.Coins)
	w.Obstacles = slices.Clone(w.Obstacles)
	return w
}

// CoinRects returns the coin regions in slice order.
func (w World) CoinRects() []components.Rect {
	rects := make([]components.Rect, len(w.Coins))
	for i, c := range w.Coins {
		rects[i] = c.Rect
	}
	return rects
}

// ObstacleRects returns the obstacle rectangles in slice order.
func (w World) ObstacleRects() []components.Rect {
	rects := make([]components.Rect, len(w.Obstacles))
	for i, o := range w.Obstacles {
		rects[i] = o.Rect
	}
	return rects
}

// Controller turns a view of the arena into a movement direction.
// The steering agent and the keyboard both implement it.
type Controller interface {
	Steer(center components.Vec2, coins, obstacles []components.Rect) components.Vec2
}

// NewRand returns the seeded source used for one evaluation or session.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
