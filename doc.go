// Package mandelscope provides an interactive, tile-cached Mandelbrot set
// explorer with GPU-resident rendering.
//
// # Overview
//
// mandelscope maintains a GPU texture acting as a cache of iteration counts
// over a region of the complex plane (the "fractal cache"), computed in
// parallel across a pool of worker goroutines using SIMD-style fixed-width
// Mandelbrot iteration. Pans and zooms that stay inside the cached region
// with an unchanged cache size reuse the computed tiles. When the viewport
// leaves the cached region or the cache size changes, every visible tile
// is recomputed for the new cache, and the existing texture is re-projected
// with an affine blit so previous pixels stay on screen meanwhile.
//
// # Quick Start
//
//	import "github.com/mandelscope/mandelscope"
//
//	shell, err := mandelscope.NewShell(instance, window,
//	    mandelscope.WithWindowTitle("Mandelscope"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shell.Close()
//	if err := shell.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Lower-level callers that already own a *gputex.Device and just want the
// view controller can use Explorer directly:
//
//	ex, err := mandelscope.NewExplorer(device, 800, 600)
//	ex.Pan(mandelscope.V2(10, 0))
//	ex.ZoomAt(mandelscope.Pt(400, 300), 1.15)
//	ex.Render(outputTexture)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Explorer (view controller), Window events, Options
//   - internal/simd: fixed-width Mandelbrot iteration kernel
//   - internal/bufpool: reference-counted pixel buffer pool
//   - internal/scheduler: tile grid, priority ordering, worker pool
//   - internal/gputex: GPU texture cache, blit/screen pipelines, shaders
//
// # Coordinate System
//
// The complex plane uses standard math convention: real axis increases
// right, imaginary axis increases up. Screen and texture space use
// top-left-origin pixel coordinates, Y increasing down, matching the
// window systems this library targets.
//
// # Performance
//
// All tile recompute happens off the render thread; Render never blocks on
// SIMD iteration. The GPU is only asked to blit and draw already-computed
// iteration counts, never to iterate the fractal itself.
package mandelscope
