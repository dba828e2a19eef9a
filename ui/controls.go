package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlActions reports what the user did in the control panel this frame.
type ControlActions struct {
	ToggleAutopilot bool
	Restart         bool
	ToggleGenome    bool
	StepsPerFrame   int
}

// ControlsPanel renders raygui buttons for the autopilot and match, and a
// slider for how many simulation steps run per frame.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	steps    float32
	maxSteps int
}

// NewControlsPanel creates a panel anchored at (x, y).
func NewControlsPanel(renderer *Renderer, x, y int32, maxSteps int) *ControlsPanel {
	return &ControlsPanel{
		renderer: renderer,
		x:        x,
		y:        y,
		steps:    1,
		maxSteps: max(1, maxSteps),
	}
}

// StepsPerFrame returns the current slider value.
func (c *ControlsPanel) StepsPerFrame() int {
	return max(1, int(c.steps+0.5))
}

// Draw renders the panel and returns the triggered actions.
func (c *ControlsPanel) Draw(autopilot bool) ControlActions {
	x, y := float32(c.x), float32(c.y)
	var actions ControlActions

	label := "Autopilot: OFF"
	if autopilot {
		label = "Autopilot: ON"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 24}, label) {
		actions.ToggleAutopilot = true
	}
	if gui.Button(rl.Rectangle{X: x + 128, Y: y, Width: 80, Height: 24}, "Restart") {
		actions.Restart = true
	}
	if gui.Button(rl.Rectangle{X: x + 216, Y: y, Width: 80, Height: 24}, "Genome") {
		actions.ToggleGenome = true
	}

	c.steps = gui.SliderBar(
		rl.Rectangle{X: x + 60, Y: y + 32, Width: 150, Height: 16},
		"Speed",
		fmt.Sprintf("%dx", c.StepsPerFrame()),
		c.steps, 1, float32(c.maxSteps),
	)
	actions.StepsPerFrame = c.StepsPerFrame()

	return actions
}
