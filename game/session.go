package game

import (
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/systems"
)

// State is the phase of an interactive match.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Session runs a timed interactive match on the same Stepper the evaluator
// uses. The player is moved either by a human controller or by the steering
// agent built from the loaded genome.
type Session struct {
	cfg     *config.Config
	stepper *Stepper
	rng     *rand.Rand
	agent   *systems.Agent
	genome  components.Genome

	World     World
	State     State
	Score     int
	HighScore int
	NewRecord bool // the finished match beat the previous high score
	Autopilot bool
}

// NewSession creates a session in the menu state. seed drives every match
// started from it.
func NewSession(cfg *config.Config, genome components.Genome, seed int64, autopilot bool) *Session {
	s := &Session{
		cfg:       cfg,
		stepper:   NewStepper(cfg),
		rng:       NewRand(seed),
		agent:     systems.NewAgent(genome),
		genome:    genome,
		Autopilot: autopilot,
	}
	s.World = NewWorld(cfg, s.rng)
	return s
}

// Genome returns the genome driving the autopilot.
func (s *Session) Genome() components.Genome {
	return s.genome
}

// Start begins a new match from a fresh arena.
func (s *Session) Start() {
	s.World = NewWorld(s.cfg, s.rng)
	s.Score = 0
	s.NewRecord = false
	s.State = StatePlaying
}

// TogglePause switches between playing and paused. Other states are left
// unchanged.
func (s *Session) TogglePause() {
	switch s.State {
	case StatePlaying:
		s.State = StatePaused
	case StatePaused:
		s.State = StatePlaying
	}
}

// ToggleAutopilot hands control to or from the steering agent.
func (s *Session) ToggleAutopilot() bool {
	s.Autopilot = !s.Autopilot
	return s.Autopilot
}

// ToMenu returns to the menu after a match.
func (s *Session) ToMenu() {
	s.State = StateMenu
}

// Remaining returns the match time left.
func (s *Session) Remaining() time.Duration {
	if s.State == StateGameOver {
		return 0
	}
	return max(0, s.cfg.Derived.MatchDuration-s.World.Elapsed)
}

// Speed returns the player speed of the active controller.
func (s *Session) Speed() float64 {
	if s.Autopilot {
		return s.genome.PlayerSpeed
	}
	return s.cfg.Player.DefaultSpeed
}

// Update advances the match by dt when playing. human is used unless the
// autopilot is on. The match ends once its duration has elapsed.
func (s *Session) Update(dt time.Duration, human Controller) TickResult {
	if s.State != StatePlaying {
		return TickResult{}
	}

	var ctrl Controller = s.agent
	if !s.Autopilot {
		ctrl = human
	}

	var res TickResult
	s.World, res = s.stepper.Step(s.World, ctrl, s.Speed(), dt, s.rng)
	s.Score = s.applyScore(s.Score, res)

	if s.World.Elapsed >= s.cfg.Derived.MatchDuration {
		s.State = StateGameOver
		if s.Score > s.HighScore {
			s.HighScore = s.Score
			s.NewRecord = true
		}
	}
	return res
}

// applyScore adds a tick's events to score. With floor_score the match score
// never goes below zero: each contact penalty is floored on its own, then
// coins are added.
func (s *Session) applyScore(score int, res TickResult) int {
	if !s.cfg.Match.FloorScore {
		return score + res.Reward
	}
	for i := 0; i < res.Hits; i++ {
		score = max(0, score+s.cfg.Rewards.Collision)
	}
	return score + res.Coins*s.cfg.Rewards.Coin
}
