package components

// Coin is a collectible square region. Coins are never removed: a collected
// coin is moved to a new position.
type Coin struct {
	Rect Rect
}

// Obstacle is a rectangular hazard sliding horizontally.
type Obstacle struct {
	Rect Rect
	VelX float64 // signed horizontal velocity in units per tick
}

// Player is the agent's bounding box; Pos is its top-left corner.
type Player struct {
	Pos  Vec2
	W, H float64
}

// Rect returns the player's bounding box.
func (p Player) Rect() Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// Center returns the center of the player's bounding box.
func (p Player) Center() Vec2 {
	return p.Rect().Center()
}
