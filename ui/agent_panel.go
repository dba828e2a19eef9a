package ui

import (
	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
)

// GenomeSections describes the autopilot genome, with bars spanning each
// gene's bounds.
func GenomeSections(genes config.GenesConfig) []SectionDescriptor {
	bar := func(id, label string, r config.GeneRange, get func(components.Genome) float64) FieldDescriptor {
		return FieldDescriptor{
			ID:     id,
			Label:  label,
			Widget: WidgetBar,
			Range:  FieldRange{Min: float32(r.Min), Max: float32(r.Max)},
			Getter: func(data any) float32 {
				g, ok := data.(components.Genome)
				if !ok {
					return 0
				}
				return float32(get(g))
			},
		}
	}

	return []SectionDescriptor{
		{
			ID:    "genome",
			Title: "Autopilot genome",
			Fields: []FieldDescriptor{
				bar("radius", "Radius", genes.RepulsionRadius, func(g components.Genome) float64 { return g.RepulsionRadius }),
				bar("weight", "Weight", genes.RepulsionWeight, func(g components.Genome) float64 { return g.RepulsionWeight }),
				bar("speed", "Speed", genes.PlayerSpeed, func(g components.Genome) float64 { return g.PlayerSpeed }),
			},
		},
	}
}

// AgentPanel shows the genome driving the autopilot.
type AgentPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
	visible  bool
}

// NewAgentPanel creates a hidden panel at (x, y).
func NewAgentPanel(renderer *Renderer, genes config.GenesConfig, x, y, width int32) *AgentPanel {
	return &AgentPanel{
		renderer: renderer,
		sections: GenomeSections(genes),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (p *AgentPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the panel for g.
func (p *AgentPanel) Draw(g components.Genome) {
	if !p.visible {
		return
	}
	r := p.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight*4 + 10
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + padding
	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, g, p.width-padding*2)
	}
}
