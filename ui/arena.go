package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/game"
)

// DrawWorld renders coins, obstacles and the player.
func DrawWorld(r *Renderer, w game.World, autopilot bool) {
	for _, c := range w.Coins {
		center := c.Rect.Center()
		rl.DrawCircleV(rl.Vector2{X: float32(center.X), Y: float32(center.Y)}, float32(c.Rect.W/2), r.Theme.Coin)
	}

	for _, o := range w.Obstacles {
		rl.DrawRectangleRec(toRectangle(o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H), r.Theme.Obstacle)
	}

	color := r.Theme.Player
	if autopilot {
		color = r.Theme.PlayerAuto
	}
	p := w.Player.Rect()
	rl.DrawRectangleRec(toRectangle(p.X, p.Y, p.W, p.H), color)
}

func toRectangle(x, y, width, height float64) rl.Rectangle {
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(height)}
}
