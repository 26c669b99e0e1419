package mandelscope

import "log/slog"

// Option configures an Explorer during creation.
// Use functional options to customize behavior without changing call sites.
//
// Example:
//
//	// Default configuration
//	ex, err := mandelscope.NewExplorer(device, 800, 600)
//
//	// Custom tile size and worker count
//	ex, err := mandelscope.NewExplorer(device, 800, 600,
//	    mandelscope.WithTileSize(256),
//	    mandelscope.WithWorkers(8),
//	)
type Option func(*options)

// options holds optional configuration for Explorer creation.
type options struct {
	workers        int
	tileSize       uint32
	textureSize    uint32
	maxIterations  uint32
	paletteFile    string
	windowTitle    string
	logger         *slog.Logger
}

// Default configuration constants.
const (
	DefaultTileSize      uint32 = 128
	DefaultTextureSize   uint32 = 8192
	DefaultMaxIterations uint32 = 4500
	DefaultWindowTitle   string = "Mandelscope"
)

// defaultOptions returns the default explorer options. workers defaults to
// 0, meaning "derive from runtime.GOMAXPROCS at scheduler construction time".
func defaultOptions() options {
	return options{
		workers:       0,
		tileSize:      DefaultTileSize,
		textureSize:   DefaultTextureSize,
		maxIterations: DefaultMaxIterations,
		paletteFile:   "",
		windowTitle:   DefaultWindowTitle,
		logger:        nil,
	}
}

// WithWorkers sets the number of concurrent tile-compute workers.
// A value <= 0 means "derive from runtime.GOMAXPROCS(0)".
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTileSize sets the edge length, in pixels, of each square tile in the
// scheduler's grid. Must evenly divide the texture size.
func WithTileSize(px uint32) Option {
	return func(o *options) {
		o.tileSize = px
	}
}

// WithTextureSize sets the edge length, in pixels, of the square GPU tile
// cache texture (front and back buffers are each this size).
func WithTextureSize(px uint32) Option {
	return func(o *options) {
		o.textureSize = px
	}
}

// WithMaxIterations sets the max-iterations value passed to the screen
// resolve pass's parameters. It does not change the SIMD kernel's
// iteration count, which the scheduler derives from the cache size and
// clamps to the kernel's fixed hard cap.
func WithMaxIterations(n uint32) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithPaletteFile sets the path to a 256x1 PNG palette image used to map
// iteration counts to colors. If empty, a built-in grayscale ramp is used.
func WithPaletteFile(path string) Option {
	return func(o *options) {
		o.paletteFile = path
	}
}

// WithWindowTitle sets the title string; the application shell uses it as
// the GPU device's debug label. The Window interface has no title setter,
// so no window title is changed.
func WithWindowTitle(title string) Option {
	return func(o *options) {
		o.windowTitle = title
	}
}

// WithLogger sets the logger this Explorer's tile cache and scheduler use
// in place of the package-level logger at construction. Records are not
// also sent to the package-level logger, and a later SetLogger call
// replaces this logger with the new package-level one.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
