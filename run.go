package vista

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// wheelNotchDelta converts one ebiten wheel notch into a browser-style
// deltaY magnitude, matching the sensitivity the zoom controller is tuned
// for.
const wheelNotchDelta = 40.0

// clickDeadZone is the pointer travel in pixels below which a press/release
// pair counts as a click instead of an orbit drag.
const clickDeadZone = 4.0

// RunConfig configures the window Run creates.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// InitialID selects the first panorama. Empty means the first entry of
	// the configured list.
	InitialID string
}

// Run opens a window and drives the engine until the window closes or the
// engine is disposed. It is the render loop authority: one continuously
// rescheduled tick that routes input and advances the engine, then one draw.
// Wheel input is consumed here so it never reaches the host surface.
//
// For full control, implement ebiten.Game yourself and call Engine.Update,
// Engine.Draw, and Engine.Resize directly.
func Run(engine *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "vista"
	}

	initial := cfg.InitialID
	if initial == "" && len(engine.opts.Panoramas) > 0 {
		initial = engine.opts.Panoramas[0].ID
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	engine.Resize(cfg.Width, cfg.Height)
	engine.ShowByID(initial, true)

	if err := ebiten.RunGame(&game{engine: engine}); err != nil {
		return fmt.Errorf("vista: run: %w", err)
	}
	return nil
}

// game adapts an Engine to ebiten.Game.
type game struct {
	engine *Engine

	pressed  bool
	dragging bool
	pressX   float64
	pressY   float64
}

func (g *game) Update() error {
	e := g.engine
	if e.disposed {
		return ebiten.Termination
	}

	// Wheel → zoom. ebiten reports notches with up as positive; browser
	// deltaY has down as positive.
	if _, wy := ebiten.Wheel(); wy != 0 {
		e.OnScroll(-wy * wheelNotchDelta)
	}

	g.routePointer()

	e.Update()
	return nil
}

// routePointer turns raw mouse state into orbit drags and thumbnail clicks,
// with a dead zone separating the two.
func (g *game) routePointer() {
	e := g.engine
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case down && !g.pressed:
		g.pressed = true
		g.dragging = false
		g.pressX, g.pressY = x, y
	case down && g.pressed:
		if !g.dragging {
			dx := x - g.pressX
			dy := y - g.pressY
			if dx*dx+dy*dy > clickDeadZone*clickDeadZone {
				g.dragging = true
				if d, ok := e.orbit.(dragReceiver); ok {
					d.Begin(g.pressX, g.pressY)
				}
			}
		}
		if g.dragging {
			if d, ok := e.orbit.(dragReceiver); ok {
				d.Move(x, y)
			}
		}
	case !down && g.pressed:
		g.pressed = false
		if g.dragging {
			g.dragging = false
			if d, ok := e.orbit.(dragReceiver); ok {
				d.End()
			}
		} else {
			e.Click(x, y)
		}
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	g.engine.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	e := g.engine
	if outsideWidth != e.width || outsideHeight != e.height {
		e.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
