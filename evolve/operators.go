// Package evolve searches the genome space with an elitist genetic algorithm.
package evolve

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
)

// Scored pairs a genome with the fitness it reached in one generation.
type Scored struct {
	Genome  components.Genome
	Fitness float64
}

// Mutation controls Gaussian gene perturbation.
type Mutation struct {
	Rate             float64 // per-gene probability
	SigmaRel         float64 // σ as a fraction of the gene range
	WeightSigmaScale float64 // extra σ factor for the repulsion weight
}

// RandomGenome draws every gene uniformly within its bounds.
func RandomGenome(rng *rand.Rand, genes config.GenesConfig) components.Genome {
	draw := func(r config.GeneRange) float64 {
		return distuv.Uniform{Min: r.Min, Max: r.Max, Src: rng}.Rand()
	}
	return components.Genome{
		RepulsionRadius: draw(genes.RepulsionRadius),
		RepulsionWeight: draw(genes.RepulsionWeight),
		PlayerSpeed:     draw(genes.PlayerSpeed),
	}
}

// Crossover blends two parents with a single factor applied to every gene:
// child = alpha*a + (1-alpha)*b.
func Crossover(a, b components.Genome, alpha float64) components.Genome {
	mix := func(x, y float64) float64 { return alpha*x + (1-alpha)*y }
	return components.Genome{
		RepulsionRadius: mix(a.RepulsionRadius, b.RepulsionRadius),
		RepulsionWeight: mix(a.RepulsionWeight, b.RepulsionWeight),
		PlayerSpeed:     mix(a.PlayerSpeed, b.PlayerSpeed),
	}
}

// Mutate perturbs each gene independently with probability m.Rate and
// clamps the result back into bounds.
func Mutate(g components.Genome, rng *rand.Rand, genes config.GenesConfig, m Mutation) components.Genome {
	perturb := func(v float64, r config.GeneRange, scale float64) float64 {
		if rng.Float64() >= m.Rate {
			return v
		}
		n := distuv.Normal{Mu: 0, Sigma: r.Span() * m.SigmaRel * scale, Src: rng}
		return v + n.Rand()
	}
	g.RepulsionRadius = perturb(g.RepulsionRadius, genes.RepulsionRadius, 1)
	g.RepulsionWeight = perturb(g.RepulsionWeight, genes.RepulsionWeight, m.WeightSigmaScale)
	g.PlayerSpeed = perturb(g.PlayerSpeed, genes.PlayerSpeed, 1)
	return g.Clamp(genes)
}

// EliteCount returns ceil(n*fraction), at least 1 and at most n.
func EliteCount(n int, fraction float64) int {
	if n <= 0 {
		return 0
	}
	// 1e-9 absorbs products like 30*0.1 landing just above an integer
	k := int(math.Ceil(float64(n)*fraction - 1e-9))
	return min(max(k, 1), n)
}

// Select returns the population sorted by fitness (descending, stable for
// ties) and its elite prefix.
func Select(pop []Scored, fraction float64) (ranked, elite []Scored) {
	ranked = slices.Clone(pop)
	slices.SortStableFunc(ranked, func(a, b Scored) int {
		return cmp.Compare(b.Fitness, a.Fitness)
	})
	return ranked, ranked[:EliteCount(len(ranked), fraction)]
}

// Reproduce builds the next generation of size n: the elite verbatim, then
// children of one elite parent and one parent from the whole population.
func Reproduce(rng *rand.Rand, elite, pop []Scored, n int, genes config.GenesConfig, m Mutation) []components.Genome {
	next := make([]components.Genome, 0, n)
	for _, e := range elite {
		if len(next) == n {
			break
		}
		next = append(next, e.Genome)
	}
	for len(next) < n {
		a := elite[rng.IntN(len(elite))].Genome
		b := pop[rng.IntN(len(pop))].Genome
		child := Crossover(a, b, rng.Float64())
		next = append(next, Mutate(child, rng, genes, m))
	}
	return next
}
