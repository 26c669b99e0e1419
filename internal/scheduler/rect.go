package scheduler

// Rect is a minimal float64 axis-aligned rectangle used for cache/viewport
// math inside the scheduler. It duplicates the handful of operations the
// root package's generic Rect[T] (geometry.go) also provides; the
// duplication exists to avoid an import cycle (the root package imports
// this package to build Explorer on top of the scheduler, so this package
// cannot import back).
type Rect struct {
	X, Y, W, H float64
}

// FromCenterSize builds a Rect from its center point and size.
func FromCenterSize(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Center returns the rectangle's center.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o share any area (half-open on the
// upper edge).
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely within r, inclusive of both
// bounds (so an exactly-coincident rectangle counts as contained).
func (r Rect) Contains(o Rect) bool {
	return r.X <= o.X && o.Right() <= r.Right() &&
		r.Y <= o.Y && o.Bottom() <= r.Bottom()
}

// TexRect is a pixel rectangle within the GPU texture (unsigned, integer).
type TexRect struct {
	X, Y, W, H uint32
}
