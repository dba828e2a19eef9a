// Package systems contains the vector math and the steering behavior that
// drive the agent through the arena.
package systems

import (
	"math"

	"github.com/pthm-cable/dodge/components"
)

// Agent steers toward the nearest coin while being pushed away from
// obstacles inside its influence radius. It keeps no state between calls.
type Agent struct {
	InfluenceRadius float64
	RepulsionWeight float64
}

// NewAgent creates an agent configured from a genome.
func NewAgent(g components.Genome) *Agent {
	return &Agent{
		InfluenceRadius: g.RepulsionRadius,
		RepulsionWeight: g.RepulsionWeight,
	}
}

// Target returns the coin whose center is nearest to center.
// When several coins are equally near, which one is chosen is
// implementation-defined (currently the first in slice order).
func (a *Agent) Target(center components.Vec2, coins []components.Rect) (components.Rect, bool) {
	if len(coins) == 0 {
		return components.Rect{}, false
	}
	best := coins[0]
	bestDist := Distance(center, best.Center())
	for _, c := range coins[1:] {
		if d := Distance(center, c.Center()); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

// Attraction returns the unit vector from center toward the nearest coin,
// or zero when there are no coins or the coin sits exactly on center.
func (a *Agent) Attraction(center components.Vec2, coins []components.Rect) components.Vec2 {
	target, ok := a.Target(center, coins)
	if !ok {
		return components.Vec2{}
	}
	return Normalize(target.Center().Sub(center))
}

// Repulsion sums the push away from every obstacle closer than the influence
// radius. Each contribution falls off linearly from 1 at contact to 0 at the
// radius. The sum is capped at unit length but not normalized, so a weak
// aggregate threat stays weak.
func (a *Agent) Repulsion(center components.Vec2, obstacles []components.Rect) components.Vec2 {
	r := a.InfluenceRadius
	var sum components.Vec2
	for _, o := range obstacles {
		q := ClosestPoint(center, o)
		d := Distance(center, q)
		if d <= 0 || d >= r {
			continue
		}
		away := Normalize(center.Sub(q))
		sum = sum.Add(away.Scale((r - d) / r))
	}
	return CapLength(sum)
}

// Steer returns the movement direction for an agent centered at center.
// The result is either the zero vector or a unit vector; it is never zero
// while at least one coin exists.
func (a *Agent) Steer(center components.Vec2, coins, obstacles []components.Rect) components.Vec2 {
	attract := a.Attraction(center, coins)
	repel := a.Repulsion(center, obstacles)
	dir := Normalize(attract.Add(repel.Scale(a.RepulsionWeight)))
	if !dir.IsZero() {
		return dir
	}

	return a.fallback(center, coins)
}

// fallback steps along the dominant axis toward the target. It is used when
// attraction and repulsion cancel or both vanish.
func (a *Agent) fallback(center components.Vec2, coins []components.Rect) components.Vec2 {
	target, ok := a.Target(center, coins)
	if !ok {
		return components.Vec2{}
	}
	off := target.Center().Sub(center)
	if math.Abs(off.X) >= math.Abs(off.Y) {
		return components.Vec2{X: sign(off.X)}
	}
	return components.Vec2{Y: sign(off.Y)}
}

// sign returns 1 for positive v and -1 otherwise.
func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}
