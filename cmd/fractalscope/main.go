// Command fractalscope runs the interactive Mandelbrot explorer.
//
// It first tries to bootstrap a real GPU adapter/device, and if none is
// available in the current environment falls back to a mock instance so
// the explorer's tile scheduler and compute kernel can still be exercised
// headlessly.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/mandelscope/mandelscope"
)

// headlessWindow is the minimal Window driver for environments with no
// real windowing system attached. It reports a fixed size, never produces
// input events, and exits after a handful of rendered frames, enough to
// drive the tile scheduler and GPU tile cache end to end without a real
// display.
type headlessWindow struct {
	width, height uint32
	framesLeft    int

	// onRedraw loops tile-ready redraw requests straight back into the
	// shell, since there is no native event queue to post through.
	// Atomic because workers call RequestRedraw while the main goroutine
	// installs the hook.
	onRedraw atomic.Pointer[func()]
}

func newHeadlessWindow(width, height uint32, frames int) *headlessWindow {
	return &headlessWindow{width: width, height: height, framesLeft: frames}
}

func (w *headlessWindow) Poll() (mandelscope.Event, bool) {
	if w.framesLeft <= 0 {
		return mandelscope.Event{Kind: mandelscope.EventClose}, true
	}
	w.framesLeft--
	time.Sleep(16 * time.Millisecond)
	return mandelscope.Event{}, false
}

func (w *headlessWindow) Size() (uint32, uint32) { return w.width, w.height }

func (w *headlessWindow) RequestRedraw() {
	if fn := w.onRedraw.Load(); fn != nil {
		(*fn)()
	}
}

func main() {
	instance := core.NewInstance(&gputypes.InstanceDescriptor{})

	window := newHeadlessWindow(1280, 800, 120)

	shell, err := mandelscope.NewShell(instance, window,
		mandelscope.WithWindowTitle("Mandelscope"),
	)
	if err != nil {
		slog.Default().Warn("mandelscope: real GPU adapter unavailable, retrying with mock instance", "error", err)
		instance = core.NewInstanceWithMock(&gputypes.InstanceDescriptor{})
		shell, err = mandelscope.NewShell(instance, window,
			mandelscope.WithWindowTitle("Mandelscope"),
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, "mandelscope: GPU initialization failed:", err)
			os.Exit(1)
		}
	}
	defer shell.Close()
	redraw := shell.RequestRedraw
	window.onRedraw.Store(&redraw)

	if err := shell.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "mandelscope:", err)
		os.Exit(1)
	}
}
