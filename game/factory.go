package game

import (
	"math/rand/v2"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
)

// NewWorld builds the starting arena: the player centered, coins and the
// initial obstacles placed from rng.
func NewWorld(cfg *config.Config, rng *rand.Rand) World {
	w := World{
		Player: components.Player{
			Pos: components.Vec2{
				X: cfg.Arena.Width/2 - cfg.Player.Width/2,
				Y: cfg.Arena.Height/2 - cfg.Player.Height/2,
			},
			W: cfg.Player.Width,
			H: cfg.Player.Height,
		},
		ObstacleSpeed: cfg.Obstacles.BaseSpeed,
	}

	w.Coins = make([]components.Coin, cfg.Coins.Count)
	for i := range w.Coins {
		w.Coins[i] = components.Coin{Rect: randomCoinRect(cfg, rng)}
	}
	w.Obstacles = spawnObstacles(cfg, cfg.Obstacles.InitialCount, cfg.Obstacles.BaseSpeed, rng)

	return w
}

// randomCoinRect picks a coin region fully inside the arena, at least
// the configured margin away from every edge.
func randomCoinRect(cfg *config.Config, rng *rand.Rand) components.Rect {
	r := cfg.Coins.Radius
	ri := int(r)
	m := cfg.Coins.Margin
	cx := randInt(rng, ri+m, int(cfg.Arena.Width)-ri-m)
	cy := randInt(rng, ri+m, int(cfg.Arena.Height)-ri-m)
	return components.Rect{X: float64(cx) - r, Y: float64(cy) - r, W: 2 * r, H: 2 * r}
}

// spawnObstacles creates n obstacles with alternating direction, the first
// one moving right.
func spawnObstacles(cfg *config.Config, n int, speed float64, rng *rand.Rand) []components.Obstacle {
	oc := cfg.Obstacles
	obs := make([]components.Obstacle, n)
	for i := range obs {
		x := randInt(rng, 0, int(cfg.Arena.Width-oc.Width))
		y := randInt(rng, oc.SpawnMarginY, int(cfg.Arena.Height)-oc.SpawnMarginY)
		vel := speed
		if i%2 != 0 {
			vel = -speed
		}
		obs[i] = components.Obstacle{
			Rect: components.Rect{X: float64(x), Y: float64(y), W: oc.Width, H: oc.Height},
			VelX: vel,
		}
	}
	return obs
}
