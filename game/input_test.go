package game

import (
	"testing"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
)

func TestDirectionFromKeys(t *testing.T) {
	tests := []struct {
		name                  string
		left, right, up, down bool
		want                  components.Vec2
	}{
		{"none", false, false, false, false, components.Vec2{}},
		{"left", true, false, false, false, components.Vec2{X: -1}},
		{"opposites cancel", true, true, false, false, components.Vec2{}},
		{"diagonal", false, true, false, true, components.Vec2{X: 1, Y: 1}},
		{"up", false, false, true, false, components.Vec2{Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectionFromKeys(tt.left, tt.right, tt.up, tt.down); got != tt.want {
				t.Errorf("DirectionFromKeys = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHandleKey(t *testing.T) {
	cfg := config.MustDefaults()
	s := NewSession(cfg, components.DefaultGenome(cfg.Genes), 1, false)

	if s.HandleKey(KeyPause) || s.State != StateMenu {
		t.Fatalf("pause in menu: state %v", s.State)
	}
	s.HandleKey(KeyStart)
	if s.State != StatePlaying {
		t.Fatalf("state = %v, want playing", s.State)
	}
	if s.HandleKey(KeyQuit) {
		t.Error("quit accepted mid-match")
	}
	s.HandleKey(KeyPause)
	if s.State != StatePaused {
		t.Errorf("state = %v, want paused", s.State)
	}
	s.HandleKey(KeyAutopilot)
	if !s.Autopilot {
		t.Error("autopilot not toggled")
	}

	s.State = StateGameOver
	s.HandleKey(KeyRestart)
	if s.State != StateMenu {
		t.Errorf("state = %v, want menu", s.State)
	}
	if !s.HandleKey(KeyQuit) {
		t.Error("quit from menu not reported")
	}
}
