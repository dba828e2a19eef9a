package components

import "github.com/pthm-cable/dodge/config"

// Genome holds the tunable parameters of one steering agent.
type Genome struct {
	RepulsionRadius float64 `json:"repulsion_radius" yaml:"repulsion_radius"` // obstacle influence radius
	RepulsionWeight float64 `json:"repulsion_weight" yaml:"repulsion_weight"` // repulsion vs attraction
	PlayerSpeed     float64 `json:"player_speed" yaml:"player_speed"`         // units moved per tick
}

// DefaultGenome returns the fallback parameters from the gene config.
func DefaultGenome(genes config.GenesConfig) Genome {
	return Genome{
		RepulsionRadius: genes.RepulsionRadius.Default,
		RepulsionWeight: genes.RepulsionWeight.Default,
		PlayerSpeed:     genes.PlayerSpeed.Default,
	}
}

// Clamp returns g with every gene limited to its bounds.
func (g Genome) Clamp(genes config.GenesConfig) Genome {
	return Genome{
		RepulsionRadius: genes.RepulsionRadius.Clamp(g.RepulsionRadius),
		RepulsionWeight: genes.RepulsionWeight.Clamp(g.RepulsionWeight),
		PlayerSpeed:     genes.PlayerSpeed.Clamp(g.PlayerSpeed),
	}
}

// InBounds reports whether every gene lies within its bounds.
func (g Genome) InBounds(genes config.GenesConfig) bool {
	return g == g.Clamp(genes)
}
