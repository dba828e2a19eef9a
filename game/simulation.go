package game

import (
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/systems"
)

// TickResult reports what happened during one Step.
type TickResult struct {
	Reward int  // sum of coin rewards and collision penalties
	Coins  int  // coins collected
	Hits   int  // obstacles overlapping the player after the move
	Ramped bool // a difficulty step was applied
}

// Stepper advances a World by one tick.
type Stepper struct {
	cfg *config.Config
}

// NewStepper creates a stepper for the given arena configuration.
func NewStepper(cfg *config.Config) *Stepper {
	return &Stepper{cfg: cfg}
}

// Step moves the player along ctrl's direction scaled by speed, advances the
// obstacles, scores coin pickups and obstacle contacts, and applies the
// difficulty ramp once more than one interval has elapsed since the last one.
// Collected coins respawn from rng. Contacts are penalized on every tick
// they persist.
func (s *Stepper) Step(w World, ctrl Controller, speed float64, dt time.Duration, rng *rand.Rand) (World, TickResult) {
	next := w.Clone()
	var res TickResult

	s.movePlayer(&next, ctrl, speed)
	s.moveObstacles(&next)

	player := next.Player.Rect()
	for i := range next.Coins {
		if player.Overlaps(next.Coins[i].Rect) {
			res.Coins++
			res.Reward += s.cfg.Rewards.Coin
			next.Coins[i].Rect = randomCoinRect(s.cfg, rng)
		}
	}
	for _, o := range next.Obstacles {
		if player.Overlaps(o.Rect) {
			res.Hits++
			res.Reward += s.cfg.Rewards.Collision
		}
	}

	next.Elapsed += dt
	next.Tick++
	res.Ramped = s.ramp(&next, rng)

	return next, res
}

// movePlayer applies the controller's direction and keeps the bounding box
// inside the arena.
func (s *Stepper) movePlayer(w *World, ctrl Controller, speed float64) {
	dir := ctrl.Steer(w.Player.Center(), w.CoinRects(), w.ObstacleRects())
	pos := w.Player.Pos.Add(dir.Scale(speed))
	pos.X = systems.Clamp(pos.X, 0, s.cfg.Arena.Width-w.Player.W)
	pos.Y = systems.Clamp(pos.Y, 0, s.cfg.Arena.Height-w.Player.H)
	w.Player.Pos = pos
}

// moveObstacles slides every obstacle and reverses it on wall contact.
func (s *Stepper) moveObstacles(w *World) {
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		o.Rect.X += o.VelX
		if o.Rect.Left() <= 0 || o.Rect.Right() >= s.cfg.Arena.Width {
			o.VelX = -o.VelX
		}
	}
}

// ramp raises obstacle speed and appends one obstacle (below the cap) when
// the elapsed time has passed the next interval boundary.
func (s *Stepper) ramp(w *World, rng *rand.Rand) bool {
	interval := s.cfg.Derived.RampInterval
	if interval <= 0 || w.Elapsed <= time.Duration(w.Ramps+1)*interval {
		return false
	}

	w.Ramps++
	oc := s.cfg.Obstacles
	w.ObstacleSpeed = oc.BaseSpeed + float64(w.Ramps)*s.cfg.Difficulty.SpeedIncrement
	for i := range w.Obstacles {
		if w.Obstacles[i].VelX > 0 {
			w.Obstacles[i].VelX = w.ObstacleSpeed
		} else {
			w.Obstacles[i].VelX = -w.ObstacleSpeed
		}
	}
	if len(w.Obstacles) < oc.MaxCount {
		w.Obstacles = append(w.Obstacles, spawnObstacles(s.cfg, 1, w.ObstacleSpeed, rng)...)
	}
	return true
}
