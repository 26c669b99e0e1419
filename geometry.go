package mandelscope

// Number is the set of scalar types a Rect can be built over: uint32
// (texture pixel space), int32 (signed pixel offsets), and float64
// (fractal-plane coordinates).
type Number interface {
	~uint32 | ~int32 | ~float64
}

// Rect is an axis-aligned rectangle with a position and a size. It is
// half-open on the upper edge for Intersects, but Contains uses <= on both
// bounds so a cache rectangle that exactly covers a viewport still
// qualifies as containing it.
type Rect[T Number] struct {
	X, Y          T
	Width, Height T
}

// URect is a rectangle over unsigned texture-pixel coordinates.
type URect = Rect[uint32]

// IRect is a rectangle over signed pixel coordinates.
type IRect = Rect[int32]

// DRect is a rectangle over double-precision fractal-plane coordinates.
type DRect = Rect[float64]

// FromPosSize builds a rectangle from its top-left position and size.
func FromPosSize[T Number](x, y, w, h T) Rect[T] {
	return Rect[T]{X: x, Y: y, Width: w, Height: h}
}

// FromCenterSize builds a rectangle from its center point and size.
func FromCenterSize[T Number](cx, cy, w, h T) Rect[T] {
	return Rect[T]{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// Center returns the rectangle's center point.
func (r Rect[T]) Center() (T, T) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect[T]) Right() T { return r.X + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect[T]) Bottom() T { return r.Y + r.Height }

// Intersects reports whether the two rectangles share any area. Half-open
// on the upper edge: two rectangles that only touch at an edge do not
// intersect.
func (r Rect[T]) Intersects(o Rect[T]) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely within r, using <= on both
// bounds — a rectangle that exactly coincides with r contains it.
func (r Rect[T]) Contains(o Rect[T]) bool {
	return r.X <= o.X && o.Right() <= r.Right() &&
		r.Y <= o.Y && o.Bottom() <= r.Bottom()
}

// Area returns Width*Height.
func (r Rect[T]) Area() T { return r.Width * r.Height }

// DCenter returns a DRect's center as a Point. A free function rather than
// a method: Go forbids attaching new methods to an instantiated generic
// type such as Rect[float64], even under the DRect alias.
func DCenter(r DRect) Point {
	cx, cy := r.Center()
	return Point{X: cx, Y: cy}
}

// DFromCenterSize builds a DRect from a center Point and a size Point
// (Width = size.X, Height = size.Y). Convenience wrapper over
// FromCenterSize for the float64 instantiation, for callers that work with
// Point rather than bare coordinate pairs.
func DFromCenterSize(center, size Point) DRect {
	return FromCenterSize(center.X, center.Y, size.X, size.Y)
}

// DSize returns a DRect's size as a Point.
func DSize(r DRect) Point {
	return Point{X: r.Width, Y: r.Height}
}
