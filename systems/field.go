package systems

import "github.com/pthm-cable/dodge/components"

// FieldSample is the agent's response at one grid cell center.
type FieldSample struct {
	At        components.Vec2
	Repulsion float64         // capped repulsion magnitude in [0, 1]
	Direction components.Vec2 // Steer output at At
}

// SampleField evaluates the agent on a cols x rows grid covering a
// width x height arena, row by row.
func (a *Agent) SampleField(width, height float64, cols, rows int, coins, obstacles []components.Rect) []FieldSample {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cellW, cellH := width/float64(cols), height/float64(rows)
	out := make([]FieldSample, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := components.Vec2{X: (float64(x) + 0.5) * cellW, Y: (float64(y) + 0.5) * cellH}
			out = append(out, FieldSample{
				At:        p,
				Repulsion: Magnitude(a.Repulsion(p, obstacles)),
				Direction: a.Steer(p, coins, obstacles),
			})
		}
	}
	return out
}
