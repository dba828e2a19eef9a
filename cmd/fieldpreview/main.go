// Steering field preview tool - interactive visualization of how a genome
// reacts to a seeded arena, with sliders for each gene.
//
// Usage: go run ./cmd/fieldpreview [-genome best_agent.json] [-seed 1000]
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/game"
	"github.com/pthm-cable/dodge/store"
	"github.com/pthm-cable/dodge/systems"
)

const (
	panelWidth = 300
	cellSize   = 10 // arena units per heatmap cell
	arrowEvery = 4  // draw a direction arrow every N cells
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	genomePath := flag.String("genome", "", "Genome JSON file to start from (empty = defaults)")
	seed := flag.Int64("seed", 1000, "Arena seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	defaults := components.DefaultGenome(cfg.Genes)
	genome := defaults
	if *genomePath != "" {
		genome = store.LoadGenome(*genomePath, defaults)
	}

	arenaW, arenaH := int32(cfg.Arena.Width), int32(cfg.Arena.Height)
	windowWidth := arenaW + panelWidth + 30
	windowHeight := arenaH + 20

	rl.InitWindow(windowWidth, windowHeight, "Steering Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cols, rows := int(arenaW)/cellSize, int(arenaH)/cellSize
	img := rl.GenImageColor(cols, rows, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	arenaSeed := *seed
	world := game.NewWorld(cfg, game.NewRand(arenaSeed))
	stepper := game.NewStepper(cfg)
	stepRng := game.NewRand(arenaSeed)

	var samples []systems.FieldSample
	needsRegen := true
	animating := false
	var lastFitness *int

	for !rl.WindowShouldClose() {
		agent := systems.NewAgent(genome)

		if animating {
			world, _ = stepper.Step(world, agent, genome.PlayerSpeed, cfg.Derived.TickDuration, stepRng)
			needsRegen = true
		}

		if needsRegen {
			samples = agent.SampleField(cfg.Arena.Width, cfg.Arena.Height, cols, rows, world.CoinRects(), world.ObstacleRects())
			updateTexture(texture, samples)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Heatmap of repulsion strength
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(cols), Height: float32(rows)},
			rl.Rectangle{X: 10, Y: 10, Width: float32(arenaW), Height: float32(arenaH)},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		drawArrows(samples, cols, rows)
		drawWorld(world)
		rl.DrawRectangleLines(10, 10, arenaW, arenaH, rl.DarkGray)

		// Control panel
		panelX := float32(arenaW + 20)
		panelY := float32(10)

		rl.DrawText("Genome", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		var changed bool
		genome.RepulsionRadius, changed = geneSlider(panelX, &panelY, "Radius", genome.RepulsionRadius, cfg.Genes.RepulsionRadius)
		needsRegen = needsRegen || changed
		genome.RepulsionWeight, changed = geneSlider(panelX, &panelY, "Weight", genome.RepulsionWeight, cfg.Genes.RepulsionWeight)
		needsRegen = needsRegen || changed
		genome.PlayerSpeed, _ = geneSlider(panelX, &panelY, "Speed", genome.PlayerSpeed, cfg.Genes.PlayerSpeed)
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Arena") {
			world = game.NewWorld(cfg, game.NewRand(arenaSeed))
			stepRng = game.NewRand(arenaSeed)
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Next Seed") {
			arenaSeed++
			world = game.NewWorld(cfg, game.NewRand(arenaSeed))
			stepRng = game.NewRand(arenaSeed)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Genome") {
			genome = defaults
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Evaluate") {
			out := game.NewEvaluator(cfg).Simulate(genome, arenaSeed, nil)
			lastFitness = &out.Fitness
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Seed: %d  Tick: %d", arenaSeed, world.Tick), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 20
		if lastFitness != nil {
			rl.DrawText(fmt.Sprintf("Fitness: %d", *lastFitness), int32(panelX), int32(panelY), 16, rl.DarkGray)
		}
		panelY += 35

		// Output JSON
		rl.DrawText("Genome record:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range genomeLines(genome) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("C copies the record, S saves it", int32(panelX), windowHeight-30, 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(genomeJSON(genome))
		}
		if rl.IsKeyPressed(rl.KeyS) {
			saveGenome(cfg, genome)
		}

		rl.EndDrawing()
	}
}

func geneSlider(x float32, y *float32, label string, value float64, r config.GeneRange) (float64, bool) {
	next := gui.SliderBar(
		rl.Rectangle{X: x + 60, Y: *y, Width: panelWidth - 140, Height: 20},
		label,
		fmt.Sprintf("%.2f", value),
		float32(value), float32(r.Min), float32(r.Max),
	)
	*y += 30
	v := r.Clamp(float64(next))
	if float32(v) == float32(value) {
		return value, false
	}
	return v, true
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func genomeLines(g components.Genome) []string {
	return []string{
		"{",
		fmt.Sprintf(`  "repulsion_radius": %.2f,`, g.RepulsionRadius),
		fmt.Sprintf(`  "repulsion_weight": %.3f,`, g.RepulsionWeight),
		fmt.Sprintf(`  "player_speed": %.2f`, g.PlayerSpeed),
		"}",
	}
}

func genomeJSON(g components.Genome) string {
	data, err := store.EncodeRecord(store.Record{Genome: g})
	if err != nil {
		return ""
	}
	return string(data)
}

func saveGenome(cfg *config.Config, g components.Genome) {
	s := store.NewJSONFileStore(cfg.Output.GenomeFile, components.DefaultGenome(cfg.Genes))
	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		log.Printf("failed to open genome file: %v", err)
		return
	}
	if err := s.Save(ctx, store.Record{Genome: g}); err != nil {
		log.Printf("failed to save genome: %v", err)
		return
	}
	log.Printf("genome saved to %s", s.Path())
}

func drawWorld(w game.World) {
	for _, c := range w.Coins {
		center := c.Rect.Center()
		rl.DrawCircleV(rl.Vector2{X: float32(center.X) + 10, Y: float32(center.Y) + 10}, float32(c.Rect.W/2), rl.Gold)
	}
	for _, o := range w.Obstacles {
		rl.DrawRectangleRec(rl.Rectangle{
			X: float32(o.Rect.X) + 10, Y: float32(o.Rect.Y) + 10,
			Width: float32(o.Rect.W), Height: float32(o.Rect.H),
		}, rl.Red)
	}
	p := w.Player.Rect()
	rl.DrawRectangleLines(int32(p.X)+10, int32(p.Y)+10, int32(p.W), int32(p.H), rl.Blue)
}

// drawArrows draws the steering direction on a sparse subset of cells.
func drawArrows(samples []systems.FieldSample, cols, rows int) {
	for y := arrowEvery / 2; y < rows; y += arrowEvery {
		for x := arrowEvery / 2; x < cols; x += arrowEvery {
			s := samples[y*cols+x]
			from := rl.Vector2{X: float32(s.At.X) + 10, Y: float32(s.At.Y) + 10}
			to := rl.Vector2{
				X: from.X + float32(s.Direction.X)*cellSize*1.5,
				Y: from.Y + float32(s.Direction.Y)*cellSize*1.5,
			}
			rl.DrawLineV(from, to, rl.White)
			rl.DrawCircleV(to, 1.5, rl.White)
		}
	}
}

// updateTexture colors each cell by its capped repulsion magnitude.
func updateTexture(texture rl.Texture2D, samples []systems.FieldSample) {
	pixels := make([]color.RGBA, len(samples))
	for i, s := range samples {
		v := float32(s.Repulsion)
		// Use a color gradient: dark blue -> cyan -> yellow -> white
		var r, g, b uint8
		if v < 0.25 {
			t := v / 0.25
			r = uint8(10 + t*30)
			g = uint8(20 + t*60)
			b = uint8(60 + t*100)
		} else if v < 0.5 {
			t := (v - 0.25) / 0.25
			r = uint8(40 + t*20)
			g = uint8(80 + t*120)
			b = uint8(160 + t*40)
		} else if v < 0.75 {
			t := (v - 0.5) / 0.25
			r = uint8(60 + t*140)
			g = uint8(200 - t*40)
			b = uint8(200 - t*150)
		} else {
			t := min((v-0.75)/0.25, 1)
			r = uint8(200 + t*55)
			g = uint8(160 + t*95)
			b = uint8(50 + t*205)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
