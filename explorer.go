package mandelscope

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/mandelscope/mandelscope/internal/gputex"
	"github.com/mandelscope/mandelscope/internal/scheduler"
)

// ManipulationState is the fractal view controller's interaction state.
type ManipulationState int

const (
	// StateIdle means no drag gesture is in progress.
	StateIdle ManipulationState = iota
	// StateDragging means a primary-button drag is in progress.
	StateDragging
)

// DraftTransform is the cheap, screen-space preview transform updated on
// every event, distinct from the fractal-plane Viewport that actually
// seeds tile recompute. Render does not apply it; DraftMatrix exposes it
// for a windowing integration to apply to the previous frame.
type DraftTransform struct {
	Offset Point
	Scale  float64
}

// Explorer is the fractal view controller: it maps pointer gestures to a
// Viewport, drives the scheduler via the GPU tile cache, and presents
// frames.
type Explorer struct {
	opts options

	windowSize Point
	viewport   Viewport
	pointer    Point
	manip      ManipulationState
	draft      DraftTransform

	cache       *gputex.Cache
	paletteSize uint32

	mu     sync.Mutex
	redraw func()
}

// NewExplorer builds an Explorer over device, sized to an initial
// windowW x windowH window. The viewport starts centered at the origin
// with a 2.5-unit tall fractal-plane window, width scaled to the window
// aspect.
func NewExplorer(device *gputex.Device, windowW, windowH uint32, opts ...Option) (*Explorer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sched := scheduler.New(o.textureSize, o.tileSize, o.workers)
	cache, err := gputex.NewCache(device, o.textureSize, sched)
	if errors.Is(err, gputex.ErrShaderCompile) {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	if err != nil {
		return nil, err
	}
	registerLogSink(cache)
	if o.logger != nil {
		cache.SetLogger(o.logger)
	}

	pal, err := loadPaletteOption(o.paletteFile)
	if err != nil {
		return nil, err
	}
	if err := cache.SetPalette(pal.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}

	aspect := float64(windowW) / float64(windowH)
	size := Pt(aspect*2.5, 2.5)

	ex := &Explorer{
		opts:        o,
		windowSize:  Pt(float64(windowW), float64(windowH)),
		viewport:    NewViewport(Pt(0, 0), size),
		draft:       DraftTransform{Offset: Pt(0, 0), Scale: 1.0},
		cache:       cache,
		paletteSize: PaletteWidth,
	}
	ex.scheduleUpdate(ex.viewport.Center())
	return ex, nil
}

// SetRedrawRequester installs the callback fired when a background tile
// finishes computing. It must be cheap; the application shell typically
// wires this to its Window.RequestRedraw.
func (ex *Explorer) SetRedrawRequester(fn func()) {
	ex.mu.Lock()
	ex.redraw = fn
	ex.mu.Unlock()
}

func (ex *Explorer) requestRedraw() {
	ex.mu.Lock()
	fn := ex.redraw
	ex.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Viewport returns the current viewport rectangle.
func (ex *Explorer) Viewport() Viewport { return ex.viewport }

// Pan moves the viewport center by -delta (fractal-plane units, the same
// direction as a drag) and re-runs the scheduler update. A direct, programmatic alternative to routing a
// synthetic drag event through HandleEvent.
func (ex *Explorer) Pan(delta Vec2) {
	ex.viewport = ex.viewport.Pan(Pt(delta.X, delta.Y))
	ex.scheduleUpdate(ex.viewport.Center())
}

// ZoomAt rescales the viewport by factor about the screen-space point
// pointer (pixels), re-running the scheduler update with the
// corresponding fractal-plane focus.
func (ex *Explorer) ZoomAt(pointer Point, factor float64) {
	norm := ex.normalizedPointer(pointer)
	ex.viewport = ex.viewport.ZoomAt(norm, factor)
	ex.scheduleUpdate(ex.viewport.FractalPoint(norm))
}

// HandleEvent routes a neutral window/input event into the view
// controller and reports what the shell should do next.
func (ex *Explorer) HandleEvent(e Event) Result {
	switch e.Kind {
	case EventResize:
		return ex.handleResize(e.Width, e.Height)
	case EventCursorMoved:
		return ex.handleCursorMoved(e.Position, e.Delta)
	case EventMouseButton:
		return ex.handleMouseButton(e.Button, e.State)
	case EventMouseWheel:
		ex.moveScale(ex.normalizedPointer(e.Position), Pt(0, 0), e.WheelDelta)
		return ResultRedraw
	case EventPinch:
		// Treated as a scaled wheel event, factor -50.
		ex.moveScale(ex.normalizedPointer(e.Position), Pt(0, 0), e.PinchDelta*-50)
		return ResultRedraw
	case EventClose:
		return ResultExit
	default:
		return ResultContinue
	}
}

func (ex *Explorer) handleResize(width, height uint32) Result {
	newSize := Pt(float64(width), float64(height))
	if newSize == ex.windowSize {
		return ResultContinue
	}
	old := ex.windowSize
	ex.windowSize = newSize
	ex.viewport = ex.viewport.Resize(old, newSize)
	ex.scheduleUpdate(ex.viewport.Center())
	return ResultRedraw
}

func (ex *Explorer) handleCursorMoved(pos, delta Point) Result {
	ex.pointer = pos
	if ex.manip != StateDragging {
		return ResultContinue
	}
	ex.moveScale(ex.normalizedPointer(pos), delta, 0)
	return ResultRedraw
}

func (ex *Explorer) handleMouseButton(btn MouseButton, state ButtonState) Result {
	if btn == MouseButtonLeft && state == ButtonPressed {
		ex.manip = StateDragging
	} else {
		ex.manip = StateIdle
	}
	return ResultContinue
}

// moveScale is the combined pan/zoom update: it advances both the
// fractal-plane Viewport (which drives tile recompute) and the
// screen-space DraftTransform (read through DraftMatrix).
func (ex *Explorer) moveScale(pointerNorm, pixelDelta Point, wheelDelta float64) {
	zoom := math.Pow(1.15, wheelDelta/5.0)

	oldSize := ex.viewport.Size()
	newSize := oldSize.Mul(zoom)
	center := ex.viewport.Center()
	m := Pt(pointerNorm.X-0.5, pointerNorm.Y-0.5)

	fractalDelta := Pt(
		pixelDelta.X/ex.windowSize.X*oldSize.X,
		-pixelDelta.Y/ex.windowSize.Y*oldSize.Y,
	)
	newCenter := center.Sub(fractalDelta).Sub(Pt(
		m.X*(newSize.X-oldSize.X),
		m.Y*(newSize.Y-oldSize.Y),
	))
	ex.viewport = NewViewport(newCenter, newSize)

	screenDelta := Pt(2*pixelDelta.X/ex.windowSize.X, -2*pixelDelta.Y/ex.windowSize.Y)
	screenPos := Pt(pointerNorm.X*2-1, pointerNorm.Y*2-1)
	oldDraftScale := ex.draft.Scale
	newDraftScale := oldDraftScale * zoom
	newDraftOffset := ex.draft.Offset.
		Add(screenDelta.Mul(newDraftScale)).
		Sub(screenPos.Mul(newDraftScale - oldDraftScale))
	ex.draft = DraftTransform{Offset: newDraftOffset, Scale: newDraftScale}

	ex.scheduleUpdate(ex.viewport.FractalPoint(pointerNorm))
}

// DraftMatrix returns the current screen-space preview transform as an
// affine matrix (scale about the origin, then translate, in clip-space
// units). A windowing integration applies it to the previous frame while
// tiles for the current viewport are still in flight.
func (ex *Explorer) DraftMatrix() Matrix {
	return Translate(ex.draft.Offset.X, ex.draft.Offset.Y).
		Multiply(Scale(ex.draft.Scale, ex.draft.Scale))
}

// ResetDraft snaps the preview transform back to identity, called once
// the cache has caught up with the viewport and the rendered frame no
// longer needs screen-space compensation.
func (ex *Explorer) ResetDraft() {
	ex.draft = DraftTransform{Offset: Pt(0, 0), Scale: 1.0}
}

func (ex *Explorer) normalizedPointer(pos Point) Point {
	return Pt(pos.X/ex.windowSize.X, 1-pos.Y/ex.windowSize.Y)
}

func (ex *Explorer) scheduleUpdate(focus Point) {
	vp := ex.viewport.Rect()
	rect := scheduler.Rect{X: vp.X, Y: vp.Y, W: vp.Width, H: vp.Height}
	ex.cache.Update(rect, ex.windowSize.X, ex.windowSize.Y, [2]float64{focus.X, focus.Y}, func(int) {
		ex.requestRedraw()
	})
}

// loadPaletteOption loads the palette named by path, or falls back to the
// built-in grayscale ramp if path is empty. A non-empty path that fails to
// load is a fatal asset-load error rather than a silent fallback.
func loadPaletteOption(path string) (*Palette, error) {
	if path == "" {
		return grayscalePalette(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening palette %q: %v", ErrAssetLoad, path, err)
	}
	defer f.Close()
	return LoadPalette(f)
}

// Render performs one frame's GPU work (blit, uploads, screen resolve)
// into out.
func (ex *Explorer) Render(out *gputex.Texture) error {
	return ex.cache.Render(out, ex.opts.maxIterations, ex.paletteSize)
}
