// Package store persists the best genome of an evolution run so the game can
// configure its autonomous agent from it.
package store

import (
	"context"

	"github.com/pthm-cable/dodge/components"
)

// Record is one persisted genome with the fitness it reached.
// Genome fields are flattened into the JSON object.
type Record struct {
	components.Genome
	Fitness float64 `json:"fitness"`
}

// Store defines persistence for the best genome.
type Store interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, rec Record) error
	// Load returns the most recently saved record. ok is false when nothing
	// has been saved yet.
	Load(ctx context.Context) (rec Record, ok bool, err error)
}

// LoadOrDefault loads the stored genome and substitutes defaults when the
// store is empty or unreadable. The returned error is informational only;
// rec is always usable.
func LoadOrDefault(ctx context.Context, s Store, defaults components.Genome) (Record, error) {
	rec, ok, err := s.Load(ctx)
	if err != nil {
		return Record{Genome: defaults}, err
	}
	if !ok {
		return Record{Genome: defaults}, nil
	}
	return rec, nil
}
