package scheduler

import (
	"sync"

	"github.com/mandelscope/mandelscope/internal/bufpool"
	"github.com/mandelscope/mandelscope/internal/simd"
)

// TileState is a tile's compute/upload lifecycle state.
type TileState int

const (
	// TileIdle is the default state: not being computed, nothing to
	// upload.
	TileIdle TileState = iota
	// TileComputing means a worker job is in flight; cancel and buf are
	// non-nil.
	TileComputing
	// TileWaitingUpload means a worker finished and its buffer is ready
	// to be copied into the GPU texture.
	TileWaitingUpload
)

// Tile is a fixed-size square sub-region of the front texture with its own
// lock-guarded state. The scheduler never holds two tile locks at once, so
// lock ordering between tiles cannot deadlock.
type Tile struct {
	Index   int
	TexRect TexRect

	mu     sync.Mutex
	state  TileState
	cancel *simd.CancelFlag
	buf    *bufpool.Handle
}

// State returns the tile's current state under lock.
func (t *Tile) State() TileState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// FractalRect maps the tile's texture-pixel rectangle into the fractal
// plane given the current cache rectangle and texture size.
func (t *Tile) FractalRect(cache Rect, textureSize uint32) Rect {
	scaleX := cache.W / float64(textureSize)
	scaleY := cache.H / float64(textureSize)
	return Rect{
		X: cache.X + float64(t.TexRect.X)*scaleX,
		Y: cache.Y + float64(t.TexRect.Y)*scaleY,
		W: float64(t.TexRect.W) * scaleX,
		H: float64(t.TexRect.H) * scaleY,
	}
}

// FractalCenter is a convenience over FractalRect for focus-distance
// sorting.
func (t *Tile) FractalCenter(cache Rect, textureSize uint32) (float64, float64) {
	return t.FractalRect(cache, textureSize).Center()
}
