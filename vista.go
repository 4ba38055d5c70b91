package vista

import "math"

// Descriptor identifies a single panorama: a stable, unique ID and the URI of
// its equirectangular source image. Descriptors are supplied once at engine
// construction as an ordered list; the list order is the thumbnail order.
type Descriptor struct {
	ID     string `yaml:"id"`
	Source string `yaml:"source"`
}

// Rect is an axis-aligned rectangle in screen space. The coordinate system
// has its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(v, max))
}

// globalDebug enables stderr warnings for recoverable oddities (unknown ids,
// snapshot write failures). Only valid with a single Engine; multiple Engines
// with differing debug modes will reflect whichever called SetDebugMode last.
var globalDebug bool

// SetDebugMode enables or disables debug warnings on stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}
