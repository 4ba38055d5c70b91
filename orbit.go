package vista

import "math"

// OrbitController produces the camera orientation the engine samples each
// tick. Update is called exactly once per tick, before zoom and transition
// advancement, so the draw sees all three as of the same instant.
type OrbitController interface {
	Update()
	// Orientation returns the view direction: yaw around the vertical axis
	// and pitch above the horizon, both in radians.
	Orientation() (yaw, pitch float64)
}

const (
	// dragRadiansPerPixel converts pointer movement to rotation.
	dragRadiansPerPixel = 0.0035
	// orbitDamping is the per-tick lerp fraction toward the drag target.
	orbitDamping = 0.12
	// pitchLimit keeps the view short of the poles, where the
	// equirectangular mapping degenerates.
	pitchLimit = math.Pi/2 - 0.035
)

// DragOrbit is the default OrbitController: drag to rotate, with damped
// follow so the view glides to rest after the pointer stops.
type DragOrbit struct {
	yaw   float64
	pitch float64

	targetYaw   float64
	targetPitch float64

	damping  bool
	dragging bool
	lastX    float64
	lastY    float64
}

// NewDragOrbit creates a drag controller looking at the given orientation.
func NewDragOrbit(yaw, pitch float64) *DragOrbit {
	pitch = clamp(pitch, -pitchLimit, pitchLimit)
	return &DragOrbit{
		yaw:         yaw,
		pitch:       pitch,
		targetYaw:   yaw,
		targetPitch: pitch,
		damping:     true,
	}
}

// SetDamping disables the glide when false; the orientation then snaps to
// the drag target immediately.
func (o *DragOrbit) SetDamping(enabled bool) {
	o.damping = enabled
}

// Begin starts a drag at the given screen position.
func (o *DragOrbit) Begin(x, y float64) {
	o.dragging = true
	o.lastX = x
	o.lastY = y
}

// Move advances the drag. Dragging right turns the view left, matching the
// grab-the-world convention of panorama viewers.
func (o *DragOrbit) Move(x, y float64) {
	if !o.dragging {
		return
	}
	o.targetYaw -= (x - o.lastX) * dragRadiansPerPixel
	o.targetPitch += (y - o.lastY) * dragRadiansPerPixel
	o.targetPitch = clamp(o.targetPitch, -pitchLimit, pitchLimit)
	o.lastX = x
	o.lastY = y
}

// End finishes the drag. The damped follow keeps gliding toward the last
// target.
func (o *DragOrbit) End() {
	o.dragging = false
}

// Update advances the damped orientation one tick.
func (o *DragOrbit) Update() {
	if !o.damping {
		o.yaw = o.targetYaw
		o.pitch = o.targetPitch
		return
	}
	o.yaw += (o.targetYaw - o.yaw) * orbitDamping
	o.pitch += (o.targetPitch - o.pitch) * orbitDamping
}

// Orientation returns the current damped view direction in radians.
func (o *DragOrbit) Orientation() (yaw, pitch float64) {
	return o.yaw, o.pitch
}
