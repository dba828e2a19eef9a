package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/game"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	State         game.State
	Score         int
	HighScore     int
	NewRecord     bool
	Remaining     time.Duration
	Ramps         int
	ObstacleSpeed float64
	Autopilot     bool
	FPS           int32
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the score line and the full-screen state messages.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD(renderer *Renderer) *HUD {
	return &HUD{renderer: renderer}
}

// Draw renders the HUD for the current state.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	cx, cy := data.ScreenWidth/2, data.ScreenHeight/2

	if data.State != game.StateMenu {
		r.DrawShadowText(fmt.Sprintf("Score: %d", data.Score), 12, 10, 24, rl.RayWhite, false)
		r.DrawShadowText(fmt.Sprintf("Time: %ds", int(data.Remaining.Seconds())), 12, 40, 24, rl.RayWhite, false)

		best := fmt.Sprintf("Best: %d", data.HighScore)
		r.DrawShadowText(best, data.ScreenWidth-rl.MeasureText(best, 24)-12, 10, 24, rl.RayWhite, false)

		mode := "Manual"
		if data.Autopilot {
			mode = "Autopilot"
		}
		rl.DrawText(
			fmt.Sprintf("%s | Level: %d | Obstacle speed: %.1f | FPS: %d", mode, data.Ramps, data.ObstacleSpeed, data.FPS),
			12, data.ScreenHeight-22, 14, rl.LightGray,
		)
	}

	switch data.State {
	case game.StateMenu:
		r.DrawShadowText(data.Title, cx, cy-80, 56, rl.RayWhite, true)
		r.DrawCenteredText("Collect coins and dodge the obstacles for 60 seconds", cx, cy-10, 20, rl.RayWhite)
		r.DrawCenteredText("ENTER/SPACE to play | TAB toggles autopilot | ESC to quit", cx, cy+30, 18, rl.RayWhite)
		r.DrawCenteredText(fmt.Sprintf("High score: %d", data.HighScore), cx, cy+70, 20, rl.Color{R: 180, G: 220, B: 255, A: 255})

	case game.StatePlaying:
		rl.DrawText("P to pause", data.ScreenWidth-110, 42, 16, rl.Color{R: 200, G: 200, B: 200, A: 255})

	case game.StatePaused:
		r.DrawShadowText("PAUSED", cx, cy-20, 48, rl.RayWhite, true)
		r.DrawCenteredText("Press P to resume", cx, cy+30, 20, rl.RayWhite)

	case game.StateGameOver:
		r.DrawShadowText("GAME OVER", cx, cy-60, 52, rl.RayWhite, true)
		r.DrawCenteredText(fmt.Sprintf("Score: %d", data.Score), cx, cy-10, 24, rl.RayWhite)
		if data.NewRecord {
			r.DrawCenteredText("New high score!", cx, cy+24, 20, rl.Color{R: 255, G: 200, B: 60, A: 255})
		}
		r.DrawCenteredText("R to restart | ESC to quit", cx, cy+64, 18, rl.RayWhite)
	}
}
