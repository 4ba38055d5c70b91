package vista

import (
	"fmt"
	"image"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// countingLoader returns a Loader that counts invocations per source and
// serves a tiny solid image, failing for sources prefixed "bad:".
func countingLoader(calls *atomic.Int64) Loader {
	return func(source string) (image.Image, error) {
		calls.Add(1)
		if len(source) >= 4 && source[:4] == "bad:" {
			return nil, fmt.Errorf("synthetic failure for %s", source)
		}
		img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
		for i := range img.Pix {
			img.Pix[i] = 0xff
		}
		return img, nil
	}
}

// blockingLoader parks every load until release closes, counting starts.
func blockingLoader(started *atomic.Int64, release <-chan struct{}) Loader {
	return func(source string) (image.Image, error) {
		started.Add(1)
		<-release
		return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
	}
}

// waitTask flushes the cache until the task completes or the deadline hits.
func waitTask(t *testing.T, c *Cache, task *LoadTask) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !task.Done() {
		if time.Now().After(deadline) {
			t.Fatalf("load task %q did not complete", task.ID)
		}
		c.Flush()
		time.Sleep(time.Millisecond)
	}
}

// tickUntil steps the engine with a fixed dt until cond holds or maxTicks
// pass. Returns the number of ticks taken.
func tickUntil(t *testing.T, e *Engine, dt float64, maxTicks int, cond func() bool) int {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		if cond() {
			return i
		}
		e.step(dt)
		// Loads resolve on a goroutine; give them room between ticks.
		time.Sleep(time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition not reached after %d ticks", maxTicks)
	}
	return maxTicks
}

func testDescriptors() []Descriptor {
	return []Descriptor{
		{ID: "a", Source: "src-a"},
		{ID: "b", Source: "src-b"},
		{ID: "c", Source: "src-c"},
	}
}

func testOptions(loader Loader) Options {
	opts := DefaultOptions()
	opts.Panoramas = testDescriptors()
	opts.Loader = loader
	opts.Thumbnails = false
	return opts
}
