package components

import (
	"testing"

	"github.com/pthm-cable/dodge/config"
)

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", Rect{X: 0, Y: 0, W: 10, H: 10}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"disjoint", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlayerCenter(t *testing.T) {
	p := Player{Pos: Vec2{X: 376, Y: 276}, W: 48, H: 48}
	if c := p.Center(); c != (Vec2{X: 400, Y: 300}) {
		t.Errorf("Center() = %+v, want {400 300}", c)
	}
}

func TestGenomeClamp(t *testing.T) {
	genes := config.MustDefaults().Genes

	g := Genome{RepulsionRadius: 500, RepulsionWeight: -1, PlayerSpeed: 5}
	if g.InBounds(genes) {
		t.Fatal("out-of-range genome reported in bounds")
	}

	c := g.Clamp(genes)
	want := Genome{RepulsionRadius: 200, RepulsionWeight: 0.3, PlayerSpeed: 5}
	if c != want {
		t.Errorf("Clamp = %+v, want %+v", c, want)
	}
	if !c.InBounds(genes) {
		t.Error("clamped genome reported out of bounds")
	}

	def := DefaultGenome(genes)
	if def != (Genome{RepulsionRadius: 120, RepulsionWeight: 1.2, PlayerSpeed: 6}) {
		t.Errorf("DefaultGenome = %+v", def)
	}
}
