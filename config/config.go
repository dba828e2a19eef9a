// Package config provides configuration loading for the arena, the headless
// evaluation and the genetic search.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation and evolution parameters.
type Config struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Coins      CoinsConfig      `yaml:"coins"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Rewards    RewardsConfig    `yaml:"rewards"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Genes      GenesConfig      `yaml:"genes"`
	Match      MatchConfig      `yaml:"match"`
	Output     OutputConfig     `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ArenaConfig holds the arena dimensions.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig holds the player's bounding box and the speed used when no
// genome supplies one.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	DefaultSpeed float64 `yaml:"default_speed"`
}

// CoinsConfig holds coin placement parameters.
type CoinsConfig struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"` // collision half-size
	Margin int     `yaml:"margin"` // extra distance kept from the arena edge
}

// ObstaclesConfig holds obstacle geometry and population parameters.
type ObstaclesConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	InitialCount int     `yaml:"initial_count"`
	MaxCount     int     `yaml:"max_count"`
	BaseSpeed    float64 `yaml:"base_speed"`
	SpawnMarginY int     `yaml:"spawn_margin_y"`
}

// DifficultyConfig holds the time-based difficulty ramp.
type DifficultyConfig struct {
	Interval       float64 `yaml:"interval"` // seconds between ramps
	SpeedIncrement float64 `yaml:"speed_increment"`
}

// RewardsConfig holds per-event rewards.
type RewardsConfig struct {
	Coin      int `yaml:"coin"`
	Collision int `yaml:"collision"`
}

// EvaluationConfig holds the headless fitness run length.
type EvaluationConfig struct {
	Ticks int     `yaml:"ticks"`
	DT    float64 `yaml:"dt"` // seconds per tick
}

// EvolutionConfig holds genetic algorithm parameters.
type EvolutionConfig struct {
	Generations      int     `yaml:"generations"`
	Population       int     `yaml:"population"`
	Seed             int64   `yaml:"seed"`
	Elitism          float64 `yaml:"elitism"`   // fraction of the population kept verbatim
	SeedBase         int64   `yaml:"seed_base"` // evaluation seed = seed_base + generation
	MutationRate     float64 `yaml:"mutation_rate"`
	SigmaRel         float64 `yaml:"sigma_rel"`          // mutation σ as a fraction of the gene range
	WeightSigmaScale float64 `yaml:"weight_sigma_scale"` // extra σ factor for the repulsion weight
	HallOfFameSize   int     `yaml:"hall_of_fame_size"`
}

// GeneRange bounds one gene and gives its fallback value.
type GeneRange struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Default float64 `yaml:"default"`
}

// Span returns the width of the range.
func (r GeneRange) Span() float64 {
	return r.Max - r.Min
}

// Clamp limits v to the closed range.
func (r GeneRange) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// GenesConfig holds the bounds of every gene.
type GenesConfig struct {
	RepulsionRadius GeneRange `yaml:"repulsion_radius"`
	RepulsionWeight GeneRange `yaml:"repulsion_weight"`
	PlayerSpeed     GeneRange `yaml:"player_speed"`
}

// MatchConfig holds interactive match parameters.
type MatchConfig struct {
	Duration   float64 `yaml:"duration"` // seconds
	TargetFPS  int     `yaml:"target_fps"`
	FloorScore bool    `yaml:"floor_score"` // interactive score never drops below zero
}

// OutputConfig holds output file names, relative to the output directory.
type OutputConfig struct {
	GenomeFile     string `yaml:"genome_file"`
	SQLiteFile     string `yaml:"sqlite_file"`
	LogFile        string `yaml:"log_file"`
	HallOfFameFile string `yaml:"hall_of_fame_file"`
	ConfigFile     string `yaml:"config_file"`
	HighScoreFile  string `yaml:"high_score_file"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickDuration   time.Duration // Evaluation.DT
	RampInterval   time.Duration // Difficulty.Interval
	MatchDuration  time.Duration // Match.Duration
	EvaluationTime time.Duration // Ticks * TickDuration
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// MustDefaults returns the embedded defaults and panics if they do not parse.
func MustDefaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// seconds converts float seconds to a Duration, rounding to the nearest
// nanosecond so that 0.1 becomes exactly 100ms.
func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickDuration = seconds(c.Evaluation.DT)
	c.Derived.RampInterval = seconds(c.Difficulty.Interval)
	c.Derived.MatchDuration = seconds(c.Match.Duration)
	c.Derived.EvaluationTime = time.Duration(c.Evaluation.Ticks) * c.Derived.TickDuration
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
