package vista

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"
)

func TestCacheRequestLoadsOnce(t *testing.T) {
	var calls atomic.Int64
	c := NewCache(testDescriptors(), countingLoader(&calls))

	task := c.Request("a")
	waitTask(t, c, task)

	if _, err := task.Result(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !c.Has("a") {
		t.Error("Has(a) = false after successful load")
	}

	// Resident: a later request completes immediately, no new load.
	again := c.Request("a")
	if !again.Done() {
		t.Error("request for resident id is not done")
	}
	if calls.Load() != 1 {
		t.Errorf("loader calls = %d, want 1", calls.Load())
	}
}

func TestCacheConcurrentRequestsJoin(t *testing.T) {
	var calls atomic.Int64
	c := NewCache(testDescriptors(), countingLoader(&calls))

	t1 := c.Request("a")
	t2 := c.Request("a")
	t3 := c.Request("a")
	if t1 != t2 || t2 != t3 {
		t.Error("concurrent requests did not join the same task")
	}
	waitTask(t, c, t1)
	if calls.Load() != 1 {
		t.Errorf("loader calls = %d, want 1 across concurrent callers", calls.Load())
	}
}

func TestCacheEntriesShared(t *testing.T) {
	var calls atomic.Int64
	c := NewCache(testDescriptors(), countingLoader(&calls))

	task := c.Request("b")
	waitTask(t, c, task)
	e1, _ := task.Result()
	if e1 != c.Entry("b") {
		t.Error("task entry and cache entry differ")
	}
	w, h := e1.Size()
	if w != 8 || h != 4 {
		t.Errorf("entry size = %dx%d, want 8x4", w, h)
	}
}

func TestCacheLoadFailure(t *testing.T) {
	var calls atomic.Int64
	list := []Descriptor{{ID: "x", Source: "bad:x"}}
	c := NewCache(list, countingLoader(&calls))

	task := c.Request("x")
	waitTask(t, c, task)

	entry, err := task.Result()
	if entry != nil {
		t.Error("failed load produced an entry")
	}
	var lf *LoadFailure
	if !errors.As(err, &lf) {
		t.Fatalf("error = %v, want *LoadFailure", err)
	}
	if lf.ID != "x" {
		t.Errorf("failure id = %q, want x", lf.ID)
	}
	if c.Has("x") {
		t.Error("failed load was cached")
	}

	// A failed id may be retried; the retry issues a fresh load.
	retry := c.Request("x")
	if retry == task {
		t.Error("retry joined the completed failed task")
	}
	waitTask(t, c, retry)
	if calls.Load() != 2 {
		t.Errorf("loader calls = %d, want 2 (original + retry)", calls.Load())
	}
}

func TestCacheUnknownID(t *testing.T) {
	c := NewCache(testDescriptors(), countingLoader(new(atomic.Int64)))
	task := c.Request("nope")
	if !task.Done() {
		t.Fatal("unknown id task not immediately done")
	}
	_, err := task.Result()
	var uid *UnknownIDError
	if !errors.As(err, &uid) {
		t.Errorf("error = %v, want *UnknownIDError", err)
	}
	if c.Knows("nope") {
		t.Error("Knows(nope) = true")
	}
	if !c.Knows("a") {
		t.Error("Knows(a) = false")
	}
}

func TestCacheDisposeIgnoresLateResults(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	slow := func(source string) (image.Image, error) {
		calls.Add(1)
		<-release
		return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
	}
	c := NewCache(testDescriptors(), slow)

	task := c.Request("a")
	c.Dispose()
	close(release)

	// Let the goroutine deliver, then flush: the result must be dropped.
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(5 * time.Millisecond)
	c.Flush()

	if task.Done() {
		t.Error("task completed after dispose")
	}
	if c.Has("a") {
		t.Error("entry cached after dispose")
	}
}

func TestCacheDisposeIdempotent(t *testing.T) {
	c := NewCache(testDescriptors(), countingLoader(new(atomic.Int64)))
	c.Dispose()
	c.Dispose() // must not panic
}

func TestMirrorHorizontal(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	for x := 0; x < 3; x++ {
		src.Pix[x*4] = uint8(x + 1) // R encodes the column
		src.Pix[x*4+3] = 255
	}
	dst := mirrorHorizontal(src)
	want := []uint8{3, 2, 1}
	for x := 0; x < 3; x++ {
		if dst.Pix[x*4] != want[x] {
			t.Errorf("mirrored column %d: R = %d, want %d", x, dst.Pix[x*4], want[x])
		}
	}
	// Source untouched.
	if src.Pix[0] != 1 {
		t.Error("mirrorHorizontal mutated its input")
	}
}

func TestToNRGBAPassthrough(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	if toNRGBA(src) != src {
		t.Error("NRGBA input was copied")
	}
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.Pix[0] = 128
	out := toNRGBA(gray)
	if out.Bounds().Dx() != 2 || out.Bounds().Dy() != 2 {
		t.Errorf("converted bounds = %v", out.Bounds())
	}
	if out.Pix[3] != 255 {
		t.Errorf("converted alpha = %d, want 255", out.Pix[3])
	}
}
