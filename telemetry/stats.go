// Package telemetry records the progress of an evolution run: one row per
// generation in a CSV log and a hall of fame of the best genomes seen.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/dodge/components"
)

// GenerationStats holds the summary of one evaluated generation.
// Only the tagged columns are written to the evolution log.
type GenerationStats struct {
	Generation  int     `csv:"generation"`
	BestFitness float64 `csv:"best_fitness"`
	MeanFitness float64 `csv:"mean_fitness"`

	StdFitness   float64           `csv:"-"`
	BestEver     float64           `csv:"-"` // best fitness seen up to and including this generation
	Champion     components.Genome `csv:"-"` // genome that scored BestFitness
	EvalSeed     int64             `csv:"-"`
	EliteCount   int               `csv:"-"`
	Population   int               `csv:"-"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Float64("best", s.BestFitness),
		slog.Float64("mean", s.MeanFitness),
		slog.Float64("std", s.StdFitness),
		slog.Float64("best_ever", s.BestEver),
		slog.Int64("eval_seed", s.EvalSeed),
		slog.Int("elite", s.EliteCount),
		slog.Int("population", s.Population),
		slog.Float64("repulsion_radius", s.Champion.RepulsionRadius),
		slog.Float64("repulsion_weight", s.Champion.RepulsionWeight),
		slog.Float64("player_speed", s.Champion.PlayerSpeed),
	)
}

// MovingAverage returns the trailing mean of vals over a window of k values.
// The first k-1 outputs average the values available so far. For k <= 1 a
// copy of vals is returned.
func MovingAverage(vals []float64, k int) []float64 {
	out := make([]float64, len(vals))
	if k <= 1 {
		copy(out, vals)
		return out
	}
	for i := range vals {
		lo := max(0, i-k+1)
		window := vals[lo : i+1]
		out[i] = floats.Sum(window) / float64(len(window))
	}
	return out
}

// Series extracts the best and mean fitness columns from logged rows.
func Series(rows []GenerationStats) (best, mean []float64) {
	best = make([]float64, len(rows))
	mean = make([]float64, len(rows))
	for i, r := range rows {
		best[i] = r.BestFitness
		mean[i] = r.MeanFitness
	}
	return best, mean
}
