package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/game"
)

// KeyboardController steers the player from the arrow keys or WASD.
type KeyboardController struct{}

// Steer implements game.Controller.
func (KeyboardController) Steer(_ components.Vec2, _, _ []components.Rect) components.Vec2 {
	return game.DirectionFromKeys(
		rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA),
		rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD),
		rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW),
		rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS),
	)
}

// PressedKeys returns the control keys pressed this frame.
func PressedKeys() []game.Key {
	var keys []game.Key
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		keys = append(keys, game.KeyStart)
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		keys = append(keys, game.KeyQuit)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		keys = append(keys, game.KeyPause)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		keys = append(keys, game.KeyRestart)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		keys = append(keys, game.KeyAutopilot)
	}
	return keys
}
