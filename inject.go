package vista

// Synthetic input lets scripted tests drive the engine deterministically:
// events are queued and consumed one per tick by Engine.step, exactly where
// real input would land.

type syntheticKind uint8

const (
	synthScroll syntheticKind = iota
	synthPress
	synthMove
	synthRelease
	synthSelect
)

type syntheticEvent struct {
	kind      syntheticKind
	delta     float64 // synthScroll
	x, y      float64 // pointer kinds
	id        string  // synthSelect
	immediate bool    // synthSelect
}

// dragReceiver is the part of an orbit controller that accepts pointer
// input. DragOrbit implements it; host controllers may too.
type dragReceiver interface {
	Begin(x, y float64)
	Move(x, y float64)
	End()
}

// InjectScroll queues a wheel delta (browser convention). Consumed on the
// next tick.
func (e *Engine) InjectScroll(deltaY float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthScroll, delta: deltaY})
}

// InjectSelect queues a panorama selection, as if a thumbnail were clicked.
func (e *Engine) InjectSelect(id string, immediate bool) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthSelect, id: id, immediate: immediate})
}

// InjectDrag queues a full orbit drag: press at (fromX, fromY), linearly
// interpolated moves, release at (toX, toY). The sequence consumes `frames`
// ticks; minimum is 2 (press + release).
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthPress, x: fromX, y: fromY})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.injectQueue = append(e.injectQueue, syntheticEvent{
			kind: synthMove,
			x:    fromX + (toX-fromX)*t,
			y:    fromY + (toY-fromY)*t,
		})
	}
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthRelease, x: toX, y: toY})
}

// processInjected pops one queued event and routes it like real input.
func (e *Engine) processInjected() {
	if len(e.injectQueue) == 0 {
		return
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case synthScroll:
		e.zoom.OnScroll(evt.delta)
	case synthSelect:
		e.trans.ShowByID(evt.id, evt.immediate)
	case synthPress:
		if d, ok := e.orbit.(dragReceiver); ok {
			d.Begin(evt.x, evt.y)
		}
	case synthMove:
		if d, ok := e.orbit.(dragReceiver); ok {
			d.Move(evt.x, evt.y)
		}
	case synthRelease:
		if d, ok := e.orbit.(dragReceiver); ok {
			d.End()
		}
	}
}
