package vista

import (
	"log"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase is the transition engine's externally observable state.
type Phase uint8

const (
	PhaseIdle          Phase = iota // a panorama (or nothing yet) is displayed, nothing pending
	PhaseLoading                    // a selection's texture load is in flight
	PhaseTransitioning              // crossfading toward the selected panorama
)

// sphereLayer is one paint target on the sphere surface.
type sphereLayer struct {
	entry *TextureEntry
	alpha float64
}

// pendingLoad tracks the selection currently waiting on its texture.
type pendingLoad struct {
	id        string
	task      *LoadTask
	immediate bool
}

// crossfade is the consumable timer for one running transition. Created when
// the incoming texture resolves; consumed exactly once, at the tick where
// progress reaches 1.
type crossfade struct {
	tween    *gween.Tween
	targetID string
	entry    *TextureEntry
}

// Transitions owns the two sphere layers and drives panorama selection:
// load, then either a direct swap or a timed crossfade. At most one
// crossfade is ever active and at most one pending load is ever displayed.
//
// A ShowByID for a different id while a selection is in flight supersedes
// it (cancel-and-replace): a pending load is retargeted — the superseded
// load still completes into the cache but is never displayed — and a
// running crossfade is completed instantly before the new selection starts.
type Transitions struct {
	cache     *Cache
	dominant  sphereLayer
	incoming  sphereLayer
	currentID string

	pending *pendingLoad
	run     *crossfade

	duration float32 // crossfade length in seconds

	// onFailure, when set, observes load failures. The viewer itself stays
	// on the previous panorama with the overlay up; there is no implicit
	// retry.
	onFailure func(error)

	overlayVisible bool
}

// NewTransitions creates a transition engine over the given cache with the
// crossfade duration in seconds.
func NewTransitions(cache *Cache, duration float64) *Transitions {
	return &Transitions{
		cache:    cache,
		duration: float32(duration),
	}
}

// SetFailureHandler installs the host's load-failure observer.
func (t *Transitions) SetFailureHandler(fn func(error)) {
	t.onFailure = fn
}

// CurrentID returns the id of the dominant panorama, or "" before the first
// display completes.
func (t *Transitions) CurrentID() string {
	return t.currentID
}

// Phase returns the current machine state.
func (t *Transitions) Phase() Phase {
	switch {
	case t.run != nil:
		return PhaseTransitioning
	case t.pending != nil:
		return PhaseLoading
	default:
		return PhaseIdle
	}
}

// OverlayVisible reports whether the loading overlay should be shown. It
// goes up when a selection starts and comes down when a panorama is swapped
// in; after a load failure it stays up until a retry or another selection
// succeeds.
func (t *Transitions) OverlayVisible() bool {
	return t.overlayVisible
}

// Layers returns the dominant and incoming paint state for the draw pass.
func (t *Transitions) Layers() (dominant, incoming *TextureEntry, dominantAlpha, incomingAlpha float64) {
	return t.dominant.entry, t.incoming.entry, t.dominant.alpha, t.incoming.alpha
}

// ShowByID selects a panorama. The first-ever display, and any call with
// immediate=true, swaps directly once the texture resolves; otherwise a
// crossfade of the configured duration runs. Selecting the already-current
// id while idle is a no-op. Unknown ids are a warning, never fatal.
func (t *Transitions) ShowByID(id string, immediate bool) {
	if !t.cache.Knows(id) {
		if globalDebug {
			log.Printf("vista: ShowByID: unknown panorama id %q", id)
		}
		if t.onFailure != nil {
			t.onFailure(&UnknownIDError{ID: id})
		}
		return
	}
	if id == t.currentID && t.pending == nil && t.run == nil {
		// No-op selection. A failure overlay left up by an earlier selection
		// comes down: the current panorama is the successful one.
		t.overlayVisible = false
		return
	}
	if t.pending != nil && t.pending.id == id {
		return
	}
	if t.run != nil {
		if t.run.targetID == id {
			return
		}
		// Supersede: snap the active crossfade to its end state so the new
		// selection starts from a settled dominant layer.
		t.finish(t.run)
	}
	t.pending = &pendingLoad{
		id:        id,
		task:      t.cache.Request(id),
		immediate: immediate || t.currentID == "",
	}
	t.overlayVisible = true
}

// Update advances the machine one tick. dt is the tick duration in seconds;
// the crossfade samples its tween here, once per tick.
func (t *Transitions) Update(dt float64) {
	if t.pending != nil && t.pending.task.Done() {
		p := t.pending
		t.pending = nil
		entry, err := p.task.Result()
		if err != nil {
			// Stay on the previous panorama, keep the overlay up.
			if t.onFailure != nil {
				t.onFailure(err)
			}
		} else if p.immediate {
			t.dominant = sphereLayer{entry: entry, alpha: 1}
			t.incoming = sphereLayer{}
			t.currentID = p.id
			t.overlayVisible = false
		} else {
			t.incoming = sphereLayer{entry: entry, alpha: 0}
			t.run = &crossfade{
				tween:    gween.New(0, 1, t.duration, ease.Linear),
				targetID: p.id,
				entry:    entry,
			}
		}
	}

	if t.run != nil {
		p, done := t.run.tween.Update(float32(dt))
		t.incoming.alpha = float64(p)
		t.dominant.alpha = 1 - float64(p)
		if done {
			t.finish(t.run)
		}
	}
}

// finish consumes a crossfade: the dominant layer takes ownership of the
// incoming texture and the incoming reference is cleared. The cache still
// owns the entry; nothing is released here.
func (t *Transitions) finish(run *crossfade) {
	t.dominant = sphereLayer{entry: run.entry, alpha: 1}
	t.incoming = sphereLayer{}
	t.currentID = run.targetID
	t.overlayVisible = false
	t.run = nil
}
