package systems

import (
	"math"

	"github.com/pthm-cable/dodge/components"
)

// Clamp limits v to [minVal, maxVal].
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Magnitude returns the length of v.
func Magnitude(v components.Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b components.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// zero length.
func Normalize(v components.Vec2) components.Vec2 {
	m := Magnitude(v)
	if m == 0 {
		return components.Vec2{}
	}
	return components.Vec2{X: v.X / m, Y: v.Y / m}
}

// CapLength rescales v to unit length only when it is longer than 1.
func CapLength(v components.Vec2) components.Vec2 {
	if Magnitude(v) > 1 {
		return Normalize(v)
	}
	return v
}

// ClosestPoint returns the point of r nearest to p.
func ClosestPoint(p components.Vec2, r components.Rect) components.Vec2 {
	return components.Vec2{
		X: Clamp(p.X, r.Left(), r.Right()),
		Y: Clamp(p.Y, r.Top(), r.Bottom()),
	}
}
