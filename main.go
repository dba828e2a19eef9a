package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/game"
	"github.com/pthm-cable/dodge/store"
	"github.com/pthm-cable/dodge/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	genomePath := flag.String("genome", "", "Genome file or database (empty = use config output name)")
	storeKind := flag.String("store", "json", "Genome store backend: json, sqlite or memory")
	headless := flag.Bool("headless", false, "Evaluate the stored genome once without graphics")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	human := flag.Bool("human", false, "Start with keyboard control instead of the autopilot")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	genome := loadGenome(context.Background(), cfg, *storeKind, *genomePath)

	if *headless {
		runHeadless(cfg, genome, rngSeed)
		return
	}
	runWindow(cfg, genome, rngSeed, !*human)
}

// loadGenome returns the stored genome, falling back to the configured
// defaults field by field for the json store and wholesale otherwise.
func loadGenome(ctx context.Context, cfg *config.Config, kind, path string) components.Genome {
	defaults := components.DefaultGenome(cfg.Genes)

	if path == "" {
		path = cfg.Output.GenomeFile
		if kind == "sqlite" {
			path = cfg.Output.SQLiteFile
		}
	}

	if kind == "" || kind == "json" {
		g := store.LoadGenome(path, defaults)
		slog.Info("genome loaded", "path", path, "genome", g)
		return g
	}

	s, err := store.NewStore(kind, path, defaults)
	if err != nil {
		slog.Warn("genome store unavailable, using defaults", "store", kind, "error", err)
		return defaults
	}
	defer store.CloseIfSupported(s)

	if err := s.Init(ctx); err != nil {
		slog.Warn("genome store unavailable, using defaults", "store", kind, "error", err)
		return defaults
	}
	rec, err := store.LoadOrDefault(ctx, s, defaults)
	if err != nil {
		slog.Warn("genome load failed, using defaults", "store", kind, "error", err)
	}
	slog.Info("genome loaded", "store", kind, "path", path, "genome", rec.Genome, "fitness", rec.Fitness)
	return rec.Genome
}

func runHeadless(cfg *config.Config, genome components.Genome, seed int64) {
	slog.Info("starting headless evaluation",
		"seed", seed,
		"ticks", cfg.Evaluation.Ticks,
		"simulated", cfg.Derived.EvaluationTime.String(),
	)

	start := time.Now()
	out := game.NewEvaluator(cfg).Simulate(genome, seed, nil)

	slog.Info("headless evaluation complete",
		"fitness", out.Fitness,
		"coins", out.Coins,
		"hits", out.Hits,
		"ramps", out.Final.Ramps,
		"obstacles", len(out.Final.Obstacles),
		"wall_time", time.Since(start).String(),
	)
}

func runWindow(cfg *config.Config, genome components.Genome, seed int64, autopilot bool) {
	width, height := int32(cfg.Arena.Width), int32(cfg.Arena.Height)

	rl.InitWindow(width, height, "Coin Dodge")
	defer rl.CloseWindow()

	rl.SetExitKey(0) // ESC is handled by the session
	rl.SetTargetFPS(int32(cfg.Match.TargetFPS))

	highScorePath := cfg.Output.HighScoreFile
	session := game.NewSession(cfg, genome, seed, autopilot)
	session.HighScore = store.LoadHighScore(highScorePath)

	renderer := ui.NewRenderer()
	hud := ui.NewHUD(renderer)
	controls := ui.NewControlsPanel(renderer, 12, height-80, 8)
	agentPanel := ui.NewAgentPanel(renderer, cfg.Genes, width-232, 70, 220)
	keyboard := ui.KeyboardController{}

	for !rl.WindowShouldClose() {
		quit := false
		for _, k := range ui.PressedKeys() {
			if session.HandleKey(k) {
				quit = true
			}
		}
		if quit {
			break
		}

		wasPlaying := session.State == game.StatePlaying
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		for i := 0; i < controls.StepsPerFrame() && session.State == game.StatePlaying; i++ {
			session.Update(dt, keyboard)
		}
		if wasPlaying && session.State == game.StateGameOver {
			slog.Info("match over", "score", session.Score, "high_score", session.HighScore, "autopilot", session.Autopilot)
			if session.NewRecord {
				if err := store.SaveHighScore(highScorePath, session.HighScore); err != nil {
					slog.Warn("failed to save high score", "error", err)
				}
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(renderer.Theme.Background)

		if session.State != game.StateMenu {
			ui.DrawWorld(renderer, session.World, session.Autopilot)
		}
		hud.Draw(ui.HUDData{
			Title:         "COIN DODGE",
			State:         session.State,
			Score:         session.Score,
			HighScore:     session.HighScore,
			NewRecord:     session.NewRecord,
			Remaining:     session.Remaining(),
			Ramps:         session.World.Ramps,
			ObstacleSpeed: session.World.ObstacleSpeed,
			Autopilot:     session.Autopilot,
			FPS:           rl.GetFPS(),
			ScreenWidth:   width,
			ScreenHeight:  height,
		})

		actions := controls.Draw(session.Autopilot)
		if actions.ToggleAutopilot {
			session.ToggleAutopilot()
		}
		if actions.Restart {
			session.Start()
		}
		if actions.ToggleGenome {
			agentPanel.Toggle()
		}
		agentPanel.Draw(session.Genome())

		rl.EndDrawing()
	}
}
