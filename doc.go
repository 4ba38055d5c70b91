// Package vista is an immersive 360° panorama viewer engine for [Ebitengine].
//
// The viewer looks outward from the center of a textured sphere: drag to
// rotate, scroll to zoom, click a thumbnail to switch panoramas with a timed
// crossfade. Vista owns the texture cache, the crossfade state machine, the
// FOV zoom easing, and the per-frame orchestration that ties them together.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	opts := vista.DefaultOptions()
//	opts.Panoramas = []vista.Descriptor{
//		{ID: "plaza", Source: "assets/plaza.jpg"},
//		{ID: "rooftop", Source: "assets/rooftop.jpg"},
//	}
//	engine, err := vista.New(opts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	vista.Run(engine, vista.RunConfig{Title: "Tour", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call
// [Engine.Update], [Engine.Draw], and [Engine.Resize] directly:
//
//	type Game struct{ engine *vista.Engine }
//
//	func (g *Game) Update() error              { g.engine.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)       { g.engine.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { g.engine.Resize(w, h); return w, h }
//
// # Collaborators
//
// The orbit controller is replaceable through [Engine.SetOrbit]; the default
// [DragOrbit] provides damped drag rotation. The thumbnail strip can be
// disabled via [Options.Thumbnails] when the host renders its own selection
// UI and calls [Engine.ShowByID].
//
// Selections crossfade between two sphere layers (via [gween] tweens); the
// first display and immediate selections swap directly. Texture loads run
// once per id for the engine's lifetime, are joined by concurrent requests,
// and are applied on the tick — a load resolving after [Engine.Dispose] is
// ignored.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package vista
