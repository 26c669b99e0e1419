package mandelscope

import "errors"

// Sentinel errors for the failure kinds the application shell can hit.
// Callers at the shell layer (app.go) treat all of these as fatal; a
// cancelled tile compute is normal control flow, absorbed entirely within
// internal/scheduler and never returned to a caller of Explorer.
var (
	// ErrGPUInit covers adapter-not-found, surface-not-supported, and
	// device-request-denied failures during startup.
	ErrGPUInit = errors.New("mandelscope: GPU initialization failed")

	// ErrValidation indicates the GPU validation error scope captured
	// around a frame was non-empty when popped.
	ErrValidation = errors.New("mandelscope: GPU validation error")

	// ErrSurfaceAcquire indicates the surface could not be acquired even
	// after one automatic reconfigure-and-retry.
	ErrSurfaceAcquire = errors.New("mandelscope: surface acquisition failed")

	// ErrAssetLoad covers failure to load or validate a required asset
	// (palette image, WGSL shader source).
	ErrAssetLoad = errors.New("mandelscope: asset load failed")
)
