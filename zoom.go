package vista

// scrollSensitivity converts a wheel delta (browser-style, positive =
// scroll down) into degrees of FOV change.
const scrollSensitivity = 0.05

// zoomEpsilon is the live/target FOV gap below which Update does nothing,
// so a settled zoom doesn't force projection recomputation every frame.
const zoomEpsilon = 0.01

// Zoom converts scroll input into a clamped target field of view and eases
// the live FOV toward it once per tick. The easing is exponential: each tick
// covers a fixed fraction of the remaining distance, so convergence is
// asymptotic and frame-rate-dependent. That is the accepted approximation —
// the window for visible drift is a handful of frames.
type Zoom struct {
	live   float64
	target float64
	min    float64
	max    float64
	ease   float64
}

// NewZoom creates a zoom controller. initial is clamped to [min, max].
func NewZoom(min, max, initial, ease float64) *Zoom {
	initial = clamp(initial, min, max)
	return &Zoom{
		live:   initial,
		target: initial,
		min:    min,
		max:    max,
		ease:   ease,
	}
}

// OnScroll retargets the FOV from a wheel delta. A positive delta narrows
// the FOV (zooms in). The target never leaves [min, max].
func (z *Zoom) OnScroll(deltaY float64) {
	z.target = clamp(z.target-deltaY*scrollSensitivity, z.min, z.max)
}

// Update advances the live FOV one tick toward the target and returns it.
// Below the epsilon gap the live value is left untouched.
func (z *Zoom) Update() float64 {
	diff := z.target - z.live
	if diff > zoomEpsilon || diff < -zoomEpsilon {
		z.live = clamp(z.live+diff*z.ease, z.min, z.max)
	}
	return z.live
}

// FOV returns the current live field of view in degrees.
func (z *Zoom) FOV() float64 {
	return z.live
}

// Target returns the FOV the controller is easing toward.
func (z *Zoom) Target() float64 {
	return z.target
}
