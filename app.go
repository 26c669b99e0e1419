package mandelscope

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wgpu/core"

	"github.com/mandelscope/mandelscope/internal/gputex"
)

// Shell is the application shell: it creates the GPU device, routes
// window/input events into an Explorer, and owns the render loop. The
// windowing system is a thin collaborator plugged in via Window; Shell
// never constructs one itself.
type Shell struct {
	window   Window
	device   *gputex.Device
	explorer *Explorer
	out      *gputex.Texture

	// Atomic because tile-ready callbacks may loop back into
	// RequestRedraw from worker goroutines.
	redrawPending atomic.Bool
}

// NewShell bootstraps a GPU device against instance, builds an Explorer
// sized to window's current dimensions, and wires tile-ready callbacks to
// window.RequestRedraw.
func NewShell(instance *core.Instance, window Window, opts ...Option) (*Shell, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	device, err := gputex.Bootstrap(instance, o.windowTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGPUInit, err)
	}

	width, height := window.Size()
	explorer, err := NewExplorer(device, width, height, opts...)
	if err != nil {
		return nil, err
	}
	explorer.SetRedrawRequester(window.RequestRedraw)

	out, err := device.CreateOutputTexture(o.textureSize, "mandelscope-resolve-target")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGPUInit, err)
	}

	s := &Shell{window: window, device: device, explorer: explorer, out: out}
	s.redrawPending.Store(true) // render the initial frame
	return s, nil
}

// RequestRedraw marks the next RenderFrame as needed. Windowing
// integrations whose redraw requests loop straight back into this render
// loop (rather than through a native event queue) call it from
// Window.RequestRedraw. Safe from any goroutine.
func (s *Shell) RequestRedraw() { s.redrawPending.Store(true) }

// Close releases the GPU device.
func (s *Shell) Close() error {
	return s.device.Close()
}

// Explorer exposes the underlying view controller, e.g. for tests driving
// gestures directly.
func (s *Shell) Explorer() *Explorer { return s.explorer }

// PumpEvents drains every event currently queued on the window, routing
// each into the Explorer. Returns false once an EventClose/ResultExit has
// been observed.
func (s *Shell) PumpEvents() bool {
	for {
		event, ok := s.window.Poll()
		if !ok {
			return true
		}
		switch s.explorer.HandleEvent(event) {
		case ResultExit:
			return false
		case ResultRedraw:
			s.redrawPending.Store(true)
		}
	}
}

// RenderFrame performs one frame if a redraw is pending (from an input
// event or a tile-ready callback), under a validation-error scope: the
// scope is pushed before encoding, popped once idle, and a non-empty scope
// is fatal.
func (s *Shell) RenderFrame() error {
	if !s.redrawPending.Swap(false) {
		return nil
	}

	s.device.PushErrorScope()
	renderErr := s.explorer.Render(s.out)
	if gpuErr := s.device.PopErrorScope(); gpuErr != nil {
		return fmt.Errorf("%w: %v", ErrValidation, gpuErr)
	}
	if renderErr != nil {
		return renderErr
	}

	// Presenting s.out to window's surface is left to the windowing
	// integration: the pinned core API has no DeviceCreateSurface or
	// Present entry points yet, only an internal Surface registry.
	return nil
}

// Run pumps events and renders frames until the window closes or an error
// occurs. Unrecoverable errors abort the loop with a logged reason.
func (s *Shell) Run() error {
	for s.PumpEvents() {
		if err := s.RenderFrame(); err != nil {
			slog.Default().Error("mandelscope: fatal error, aborting", "error", err)
			return err
		}
	}
	return nil
}
