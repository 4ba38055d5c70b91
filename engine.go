package vista

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Engine is the panorama viewer core. It owns the texture cache, zoom
// controller, transition engine, and sphere projection, and sequences them
// once per tick in a fixed order: orientation, zoom, transition, draw.
//
// All mutation happens either in an input entry point (OnScroll, ShowByID,
// Resize, the pointer routing in Run) or inside the tick — there is no
// parallel execution and no locking. Texture loads are the only asynchronous
// work and their results are applied by the tick's cache flush.
type Engine struct {
	opts  Options
	cache *Cache
	zoom  *Zoom
	orbit OrbitController
	trans *Transitions
	proj  *projector

	thumbs *ThumbStrip // nil when Options.Thumbnails is false
	load   overlay

	width  int
	height int

	// OnFailure observes load failures and unknown-id selections. The engine
	// has already recovered (previous panorama stays up) by the time this
	// fires. Optional.
	OnFailure func(error)

	disposed      bool
	teardown      []func()
	snapshotQueue []string
	injectQueue   []syntheticEvent
}

// New creates an engine from the given options. Resize must be called once
// with the viewport size before the first Draw; Run does both.
func New(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = "snapshots"
	}

	e := &Engine{
		opts:  opts,
		cache: NewCache(opts.Panoramas, opts.Loader),
		zoom:  NewZoom(opts.ZoomMin, opts.ZoomMax, opts.FOV, opts.ZoomEase),
		orbit: NewDragOrbit(0, 0),
		proj:  newProjector(),
	}
	e.trans = NewTransitions(e.cache, opts.TransitionDuration)
	e.trans.SetFailureHandler(func(err error) {
		if e.OnFailure != nil {
			e.OnFailure(err)
		}
	})
	if opts.Thumbnails {
		e.thumbs = NewThumbStrip(opts.Panoramas, e.cache, func(id string) {
			e.ShowByID(id, false)
		})
		e.teardown = append(e.teardown, e.thumbs.dispose)
	}
	e.teardown = append(e.teardown, e.cache.Dispose)
	return e, nil
}

// Panoramas returns the configured descriptor list in display order.
func (e *Engine) Panoramas() []Descriptor {
	return e.opts.Panoramas
}

// SetOrbit replaces the orbit controller. Pass a host implementation to take
// over camera orientation; the default is a DragOrbit.
func (e *Engine) SetOrbit(o OrbitController) {
	if o != nil {
		e.orbit = o
	}
}

// Orbit returns the current orbit controller.
func (e *Engine) Orbit() OrbitController {
	return e.orbit
}

// ShowByID selects a panorama by id. immediate=true skips the crossfade
// (used for the first-screen load; the first-ever display is immediate
// regardless). Unknown ids and reselecting the current id are no-ops.
func (e *Engine) ShowByID(id string, immediate bool) {
	if e.disposed {
		return
	}
	e.trans.ShowByID(id, immediate)
}

// OnScroll feeds a wheel delta (browser convention, positive = scroll down)
// into the zoom controller. The caller owns consuming the event so it does
// not also scroll the host surface.
func (e *Engine) OnScroll(deltaY float64) {
	if e.disposed {
		return
	}
	e.zoom.OnScroll(deltaY)
}

// Resize updates the viewport size and dependent layout. Must be called once
// at startup with the current size.
func (e *Engine) Resize(width, height int) {
	if e.disposed || width <= 0 || height <= 0 {
		return
	}
	e.width = width
	e.height = height
	if e.thumbs != nil {
		e.thumbs.Resize(width, height)
	}
}

// CurrentID returns the id of the dominant panorama, or "" before the first
// display completes.
func (e *Engine) CurrentID() string {
	return e.trans.CurrentID()
}

// Phase returns the transition engine's state.
func (e *Engine) Phase() Phase {
	return e.trans.Phase()
}

// FOV returns the live field of view in degrees.
func (e *Engine) FOV() float64 {
	return e.zoom.FOV()
}

// Update advances the engine one tick at the game's tick rate.
func (e *Engine) Update() {
	if e.disposed {
		return
	}
	e.step(1.0 / float64(ebiten.TPS()))
}

// step is the tick body: injected input, then orientation, zoom, and
// transition in fixed order, so the draw sees all three as of the same
// instant. dt is in seconds.
func (e *Engine) step(dt float64) {
	e.processInjected()
	e.orbit.Update()
	e.zoom.Update()
	e.cache.Flush()
	e.trans.Update(dt)
	e.load.update(dt)
}

// Draw renders the frame: dominant sphere layer, incoming layer while a
// crossfade runs, thumbnail strip, loading overlay, then queued snapshots.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.disposed {
		return
	}
	yaw, pitch := e.orbit.Orientation()
	fov := e.zoom.FOV()

	dominant, incoming, domAlpha, incAlpha := e.trans.Layers()
	e.proj.draw(screen, dominant, yaw, pitch, fov, domAlpha)
	e.proj.draw(screen, incoming, yaw, pitch, fov, incAlpha)

	if e.thumbs != nil {
		e.thumbs.draw(screen, e.trans.CurrentID())
	}
	if e.trans.OverlayVisible() {
		e.load.draw(screen)
	}
	e.flushSnapshots(screen)
}

// Click routes a tap/click at screen coordinates. Returns true if a
// thumbnail consumed it. Run calls this for short press/release pairs;
// custom hosts should do the same.
func (e *Engine) Click(x, y float64) bool {
	if e.disposed || e.thumbs == nil {
		return false
	}
	return e.thumbs.Click(x, y)
}

// Dispose tears the engine down: scheduling stops (Update and Draw become
// no-ops, Run exits), GPU resources are released, and any texture load that
// resolves later is ignored. Safe to call multiple times.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	for i := len(e.teardown) - 1; i >= 0; i-- {
		e.teardown[i]()
	}
	e.teardown = nil
}

// Disposed reports whether Dispose has run.
func (e *Engine) Disposed() bool {
	return e.disposed
}

// String describes the engine state for debugging.
func (e *Engine) String() string {
	return fmt.Sprintf("vista.Engine(current=%q phase=%d fov=%.1f)", e.CurrentID(), e.Phase(), e.FOV())
}
