package vista

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"

	"github.com/hajimehoshi/ebiten/v2"
)

// Loader fetches and decodes a panorama source image. It runs on a background
// goroutine and must not touch engine state.
type Loader func(source string) (image.Image, error)

// TextureEntry is a decoded panorama ready for the sphere. The pixel data has
// the sampling configuration already applied: the horizontal axis is mirrored
// to correct the equirectangular winding for inside-the-sphere viewing. The
// vertical axis is edge-clamped and mip generation disabled at draw time (see
// projector.draw). Entries are created by the cache, never mutated afterward,
// and released only at engine teardown.
type TextureEntry struct {
	id  string
	pix *image.NRGBA
	gpu *ebiten.Image // lazily created on first draw
}

// Size returns the texture dimensions in pixels.
func (e *TextureEntry) Size() (w, h int) {
	b := e.pix.Bounds()
	return b.Dx(), b.Dy()
}

// GPU returns the texture's GPU image, creating it on first use.
// No sync.Once — entries are only touched from the engine tick.
func (e *TextureEntry) GPU() *ebiten.Image {
	if e.gpu == nil {
		e.gpu = ebiten.NewImageFromImage(e.pix)
	}
	return e.gpu
}

// release frees the GPU image. Called from Cache.Dispose only.
func (e *TextureEntry) release() {
	if e.gpu != nil {
		e.gpu.Deallocate()
		e.gpu = nil
	}
}

// LoadTask is the joinable handle for one asynchronous texture load. All
// concurrent Request calls for the same uncached id receive the same task;
// the underlying load runs exactly once. The task completes during a cache
// flush on the engine tick, never from the loader goroutine.
type LoadTask struct {
	ID string

	done  bool
	entry *TextureEntry
	err   error
}

// Done reports whether the load has completed (successfully or not).
func (t *LoadTask) Done() bool {
	return t.done
}

// Result returns the loaded entry, or the failure. Only meaningful once Done
// reports true; before that both return values are nil.
func (t *LoadTask) Result() (*TextureEntry, error) {
	return t.entry, t.err
}

// loadResult crosses from the loader goroutine back to the engine tick.
type loadResult struct {
	id  string
	pix *image.NRGBA
	err error
}

// Cache loads and memoizes panorama textures keyed by id. A texture is
// requested from its source at most once for the lifetime of the cache;
// failed loads are not cached and a later Request retries. All mutation
// happens in Request and Flush on the engine tick — the loader goroutines
// only decode pixels and send them over the results channel.
type Cache struct {
	loader   Loader
	sources  map[string]string
	entries  map[string]*TextureEntry
	inflight map[string]*LoadTask
	results  chan loadResult
	disposed bool
}

// NewCache creates a cache for the given panorama list. A nil loader means
// the default loader (local files and http/https URLs).
func NewCache(list []Descriptor, loader Loader) *Cache {
	if loader == nil {
		loader = LoadImage
	}
	sources := make(map[string]string, len(list))
	for _, d := range list {
		sources[d.ID] = d.Source
	}
	return &Cache{
		loader:   loader,
		sources:  sources,
		entries:  make(map[string]*TextureEntry, len(list)),
		inflight: make(map[string]*LoadTask),
		// One slot per id is enough: at most one load per id is ever in flight.
		results: make(chan loadResult, len(list)+1),
	}
}

// Knows reports whether id is in the configured panorama list.
func (c *Cache) Knows(id string) bool {
	_, ok := c.sources[id]
	return ok
}

// Has reports whether a finished texture for id is resident.
func (c *Cache) Has(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// Entry returns the resident texture for id, or nil.
func (c *Cache) Entry(id string) *TextureEntry {
	return c.entries[id]
}

// Request returns the load task for id, starting the underlying load on the
// first call. A second caller while the load is in flight joins the same
// task. For resident ids the returned task is already done. Unknown ids
// complete immediately with an UnknownIDError.
func (c *Cache) Request(id string) *LoadTask {
	if e, ok := c.entries[id]; ok {
		return &LoadTask{ID: id, done: true, entry: e}
	}
	if t, ok := c.inflight[id]; ok {
		return t
	}
	source, ok := c.sources[id]
	if !ok {
		return &LoadTask{ID: id, done: true, err: &UnknownIDError{ID: id}}
	}
	t := &LoadTask{ID: id}
	c.inflight[id] = t
	go c.load(id, source)
	return t
}

// load runs on its own goroutine: fetch, decode, apply the sampling config,
// hand the pixels back to the tick. The channel is buffered to one slot per
// id so this send never blocks.
func (c *Cache) load(id, source string) {
	img, err := c.loader(source)
	if err != nil {
		c.results <- loadResult{id: id, err: err}
		return
	}
	c.results <- loadResult{id: id, pix: mirrorHorizontal(toNRGBA(img))}
}

// Flush applies finished loads. Called once per engine tick. Results that
// arrive after Dispose are drained and dropped so late-resolving loads never
// write to disposed state.
func (c *Cache) Flush() {
	for {
		select {
		case res := <-c.results:
			c.apply(res)
		default:
			return
		}
	}
}

func (c *Cache) apply(res loadResult) {
	if c.disposed {
		return
	}
	t, ok := c.inflight[res.id]
	if !ok {
		return
	}
	delete(c.inflight, res.id)
	if res.err != nil {
		t.err = &LoadFailure{ID: res.id, Cause: res.err}
		t.done = true
		return
	}
	e := &TextureEntry{id: res.id, pix: res.pix}
	c.entries[res.id] = e
	t.entry = e
	t.done = true
}

// Dispose releases all GPU resources and marks the cache dead. In-flight
// loads keep running but their results are ignored.
func (c *Cache) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for _, e := range c.entries {
		e.release()
	}
	c.entries = make(map[string]*TextureEntry)
	c.inflight = make(map[string]*LoadTask)
}

// LoadImage is the default Loader: http/https URLs are fetched, anything
// else is treated as a local file path. JPEG, PNG, and TGA are decodable via
// the registered image formats.
func LoadImage(source string) (image.Image, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: %s", source, resp.Status)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", source, err)
		}
		r = f
	}
	defer r.Close()

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	if globalDebug {
		log.Printf("vista: decoded %s (%s, %dx%d)", source, format, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return img, nil
}

// toNRGBA converts any decoded image to NRGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// mirrorHorizontal flips the image around its vertical center line. An
// equirectangular panorama is authored for outside-in viewing; seen from the
// sphere's center the horizontal winding is reversed, so the correction is
// baked into the pixels once at load.
func mirrorHorizontal(src *image.NRGBA) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * src.Stride
		drow := y * dst.Stride
		for x := 0; x < w; x++ {
			si := row + (w-1-x)*4
			di := drow + x*4
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
