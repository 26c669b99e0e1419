package mandelscope

// MouseButton identifies which physical mouse button an event refers to.
// Named buttons plus an escape hatch for platform-specific extra buttons.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonBack
	MouseButtonForward
	MouseButtonOther
)

// ButtonState is whether a mouse button was just pressed or released.
type ButtonState int

const (
	ButtonPressed ButtonState = iota
	ButtonReleased
)

// Event is the neutral, platform-independent representation of a window or
// input event. A real windowing integration translates its native event
// types into this enum; mandelscope never depends on any specific
// windowing library directly.
//
// Exactly one of the typed fields is meaningful for a given Kind.
type Event struct {
	Kind EventKind

	// Resize
	Width, Height uint32

	// CursorMoved: current position (pixels, top-left origin, Y down).
	Position Point
	// CursorMoved: delta since the previous event (pixels).
	Delta Point

	// MouseButton
	Button MouseButton
	State  ButtonState

	// MouseWheel: scalar delta in "lines". Position is the pointer
	// location at scroll time.
	WheelDelta float64

	// Pinch: trackpad magnification delta, treated as a scaled wheel
	// event with factor -50.
	PinchDelta float64
}

// EventKind discriminates the meaningful fields of an Event.
type EventKind int

const (
	EventResize EventKind = iota
	EventCursorMoved
	EventMouseButton
	EventMouseWheel
	EventPinch
	EventClose
)

// Result tells the application shell what to do after handling an Event.
type Result int

const (
	// ResultContinue means no redraw is needed.
	ResultContinue Result = iota
	// ResultRedraw means the shell should schedule a redraw.
	ResultRedraw
	// ResultExit means the shell should terminate the event loop.
	ResultExit
)

// Window is the seam a real windowing library plugs into. The application
// shell (app.go) only ever calls these methods; it never constructs a
// window itself. A minimal headless implementation is provided for
// environments with no real windowing system attached (see
// cmd/fractalscope for the GPU-then-headless-fallback wiring).
type Window interface {
	// Poll returns the next pending event, or false if none is queued.
	Poll() (Event, bool)
	// Size returns the current window size in pixels.
	Size() (uint32, uint32)
	// RequestRedraw asks the windowing system to schedule a redraw.
	RequestRedraw()
}
