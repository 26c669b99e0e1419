// Package scheduler owns the tile grid, assigns work to a bounded worker
// pool, prioritizes by focus distance, and cancels stale tiles.
package scheduler

import (
	"encoding/binary"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/mandelscope/mandelscope/internal/bufpool"
	"github.com/mandelscope/mandelscope/internal/simd"
)

// Iteration-depth tuning constants. maxIter = BaseMaxIter +
// IterGain*log2(1/cacheSize^2), clamped to [MinMaxIter,
// simd.MaxIterHardCap], so deeper zooms iterate more.
const (
	BaseMaxIter = 100
	IterGain    = 40.0
	MinMaxIter  = 50
)

// Scheduler holds the tile grid, the cache/prev-cache rectangles, and the
// bounded worker pool that runs SIMD compute jobs.
type Scheduler struct {
	grid *Grid
	pool *bufpool.Pool
	work *semaphorePool

	cache       Rect
	prevCache   Rect
	blitPending bool
	initialized bool

	loggerPtr atomic.Pointer[slog.Logger]
}

// New constructs a Scheduler over a textureSize x textureSize texture
// tiled into tileSize squares, with workers concurrent compute jobs
// in flight at once. workers <= 0 derives a default of twice
// runtime.GOMAXPROCS(0).
func New(textureSize, tileSize uint32, workers int) *Scheduler {
	if workers <= 0 {
		workers = 2 * runtime.GOMAXPROCS(0)
	}

	tileBytes := int(tileSize) * int(tileSize) * 2 // sizeof(Pixel) == 2
	s := &Scheduler{
		grid: NewGrid(textureSize, tileSize),
		pool: bufpool.New(tileBytes, workers),
		work: newSemaphorePool(workers),
	}
	s.loggerPtr.Store(discardLogger())
	return s
}

// SetLogger implements the package's loggerSetter contract so the root
// package's SetLogger can propagate to the scheduler.
func (s *Scheduler) SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	s.loggerPtr.Store(l)
}

func (s *Scheduler) logger() *slog.Logger { return s.loggerPtr.Load() }

// Grid exposes the tile grid. The GPU tile cache does not iterate it
// directly; it collects finished tiles through TakeWaitingUpload.
func (s *Scheduler) Grid() *Grid { return s.grid }

// Cache returns the current cache rectangle.
func (s *Scheduler) Cache() Rect { return s.cache }

// PrevCache returns the cache rectangle immediately before the last
// transition.
func (s *Scheduler) PrevCache() Rect { return s.prevCache }

// TakeBlitPending reports whether a viewport transition is pending a blit,
// and clears the flag, resetting prevCache to the current cache. The
// caller (the GPU tile cache) calls this once per frame before deciding
// whether to run the blit pass, having already read PrevCache/Cache for
// the projection math.
func (s *Scheduler) TakeBlitPending() bool {
	pending := s.blitPending
	s.blitPending = false
	if pending {
		s.prevCache = s.cache
	}
	return pending
}

// Update is the scheduler's single public operation. windowW/windowH are
// the current window size in pixels; viewport is the current viewport
// rectangle in fractal-plane units; focus is the fractal-plane point
// gestures should prioritize tiles around (typically the pointer position,
// mapped through the viewport). onTileReady is called, possibly from any
// worker goroutine, when a tile finishes computing and is ready for
// upload; it must be cheap.
func (s *Scheduler) Update(viewport Rect, windowW, windowH float64, focus [2]float64, onTileReady func(index int)) {
	textureSize := float64(s.grid.TextureSize)
	newCache := FromCenterSize(
		centerX(viewport), centerY(viewport),
		viewport.W*textureSize/windowW,
		viewport.H*textureSize/windowH,
	)

	first := !s.initialized
	s.initialized = true

	frameChanged := first || !s.cache.Contains(viewport) || s.cache.W != newCache.W || s.cache.H != newCache.H
	if frameChanged {
		s.prevCache = s.cache
		s.cache = newCache
		s.blitPending = true
		if first {
			// No previous frame to reproject from; the first blit is an
			// identity map over the fresh cache.
			s.prevCache = newCache
		}
	}

	maxIter := computeMaxIter(s.cache.W)

	tiles := make([]*Tile, len(s.grid.Tiles))
	copy(tiles, s.grid.Tiles)
	cache := s.cache
	sort.Slice(tiles, func(i, j int) bool {
		icx, icy := tiles[i].FractalCenter(cache, s.grid.TextureSize)
		jcx, jcy := tiles[j].FractalCenter(cache, s.grid.TextureSize)
		return distSq(icx, icy, focus[0], focus[1]) < distSq(jcx, jcy, focus[0], focus[1])
	})

	for _, tile := range tiles {
		s.updateTile(tile, viewport, cache, frameChanged, maxIter, onTileReady)
	}
}

func (s *Scheduler) updateTile(tile *Tile, viewport, cache Rect, frameChanged bool, maxIter uint32, onTileReady func(int)) {
	tile.mu.Lock()

	fractalRect := tile.FractalRect(cache, s.grid.TextureSize)
	visible := fractalRect.Intersects(viewport)

	switch {
	case !visible:
		s.cancelLocked(tile)
		tile.mu.Unlock()
		return

	case frameChanged:
		// Stale work for the previous cache is dropped; the tile is now
		// Idle and visible, so it is rescheduled below.
		s.cancelLocked(tile)

	case tile.state == TileComputing || tile.state == TileWaitingUpload:
		tile.mu.Unlock()
		return
	}

	// Idle and visible
	buf := s.pool.Take()
	cancel := &simd.CancelFlag{}
	tile.state = TileComputing
	tile.cancel = cancel
	tile.buf = buf
	tile.mu.Unlock()

	s.spawnCompute(tile, cache, maxIter, cancel, buf, onTileReady)
}

// cancelLocked cancels any in-flight work on tile and resets it to Idle.
// A WaitingUpload buffer is dropped too: it was computed for the previous
// cache rectangle and would land at the wrong fractal position if uploaded
// after the blit. Must be called with tile.mu held.
func (s *Scheduler) cancelLocked(tile *Tile) {
	switch tile.state {
	case TileComputing:
		if tile.cancel != nil {
			tile.cancel.Cancel()
		}
		// The worker still holds the buffer handle and releases it
		// itself once it observes the flag.
		tile.buf = nil
	case TileWaitingUpload:
		if tile.buf != nil {
			tile.buf.Release()
			tile.buf = nil
		}
	}
	tile.state = TileIdle
	tile.cancel = nil
}

func (s *Scheduler) spawnCompute(tile *Tile, cache Rect, maxIter uint32, cancel *simd.CancelFlag, buf *bufpool.Handle, onTileReady func(int)) {
	s.work.Go(func() {
		if cancel.Cancelled() {
			buf.Release()
			s.resetIfStillCancelling(tile, cancel)
			return
		}

		// The kernel maps pixel p to ((p/imageSize)-0.5)/scale - offset,
		// so offset = -cache.center and scale = 1/cache.W line its output
		// up with Tile.FractalRect.
		ccx, ccy := cache.Center()
		out := asPixels(buf.Bytes())
		err := simd.Compute(
			s.grid.TextureSize,
			tile.TexRect.X, tile.TexRect.Y, tile.TexRect.W, tile.TexRect.H,
			-ccx, -ccy, 1.0/cache.W,
			maxIter,
			cancel,
			out,
		)
		if err != nil {
			buf.Release()
			s.resetIfStillCancelling(tile, cancel)
			s.logger().Debug("tile compute cancelled", "tile", tile.Index)
			return
		}
		writePixels(buf.Bytes(), out)

		tile.mu.Lock()
		if tile.cancel == cancel {
			tile.state = TileWaitingUpload
			tile.mu.Unlock()
			onTileReady(tile.Index)
			return
		}
		tile.mu.Unlock()
		// A newer generation superseded this job between completion and
		// the lock; this job's output is stale, discard it.
		buf.Release()
	})
}

// resetIfStillCancelling sets tile back to Idle only if it is still
// pointing at the cancel flag this job was spawned with — a later Update
// call may already have started a fresh job for the same tile.
func (s *Scheduler) resetIfStillCancelling(tile *Tile, cancel *simd.CancelFlag) {
	tile.mu.Lock()
	defer tile.mu.Unlock()
	if tile.cancel == cancel {
		tile.state = TileIdle
		tile.cancel = nil
		tile.buf = nil
	}
}

// TakeWaitingUpload collects every tile currently in WaitingUpload state,
// resetting each to Idle and handing back its buffer for the caller to
// copy into the GPU texture and then release.
func (s *Scheduler) TakeWaitingUpload() []ReadyTile {
	var ready []ReadyTile
	for _, tile := range s.grid.Tiles {
		tile.mu.Lock()
		if tile.state == TileWaitingUpload {
			ready = append(ready, ReadyTile{
				Index:   tile.Index,
				TexRect: tile.TexRect,
				Buffer:  tile.buf,
			})
			tile.state = TileIdle
			tile.cancel = nil
			tile.buf = nil
		}
		tile.mu.Unlock()
	}
	return ready
}

// ReadyTile is a tile whose compute buffer is ready to be uploaded.
type ReadyTile struct {
	Index   int
	TexRect TexRect
	Buffer  *bufpool.Handle
}

func computeMaxIter(cacheSize float64) uint32 {
	if cacheSize <= 0 {
		return MinMaxIter
	}
	depth := BaseMaxIter + IterGain*math.Log2(1/(cacheSize*cacheSize))
	if depth < MinMaxIter {
		depth = MinMaxIter
	}
	if depth > simd.MaxIterHardCap {
		depth = simd.MaxIterHardCap
	}
	return uint32(depth)
}

func distSq(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

func centerX(r Rect) float64 { x, _ := r.Center(); return x }
func centerY(r Rect) float64 { _, y := r.Center(); return y }

// asPixels allocates the uint16 scratch slice simd.Compute writes into.
// The pool hands back raw []byte scratch (sized tileW*tileH*2 bytes, see
// New) so that bufpool stays type-agnostic; simd.Compute fills this plain
// allocation and writePixels copies it back into the pooled buffer.
func asPixels(b []byte) []uint16 {
	return make([]uint16, len(b)/2)
}

// writePixels encodes out back into the pooled byte buffer uploadTile
// reads from (internal/gputex/cache.go), little-endian to match
// QueueWriteTexture's R16Uint byte layout.
func writePixels(dst []byte, out []uint16) {
	for i, v := range out {
		binary.LittleEndian.PutUint16(dst[i*2:], v)
	}
}
