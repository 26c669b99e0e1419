package mandelscope

// Viewport is the region of the complex plane currently visible on screen:
// double precision, aspect matched to the window, mutated on every
// pan/zoom/resize gesture.
type Viewport struct {
	rect DRect
}

// NewViewport builds a Viewport centered at center with the given size.
// Callers typically derive size from the window aspect ratio before
// calling this.
func NewViewport(center, size Point) Viewport {
	return Viewport{rect: DFromCenterSize(center, size)}
}

// Rect returns the viewport's underlying rectangle.
func (v Viewport) Rect() DRect { return v.rect }

// Center returns the viewport's center point.
func (v Viewport) Center() Point { return DCenter(v.rect) }

// Size returns the viewport's size.
func (v Viewport) Size() Point { return DSize(v.rect) }

// Pan moves the viewport center by -delta (fractal-plane units), so the
// content shifts by delta as under a drag, keeping size fixed.
func (v Viewport) Pan(delta Point) Viewport {
	c := v.Center()
	return NewViewport(c.Sub(delta), v.Size())
}

// ZoomAt rescales the viewport by factor, keeping the fractal-plane point
// under focus (a normalized [0,1]^2 point within the viewport, Y up) fixed
// on screen: center -= m*(newSize - oldSize) where m is the focus offset
// from the viewport center.
func (v Viewport) ZoomAt(focusNorm Point, factor float64) Viewport {
	oldSize := v.Size()
	newSize := oldSize.Mul(factor)
	c := v.Center()
	m := Pt(focusNorm.X-0.5, focusNorm.Y-0.5)
	newCenter := c.Sub(Pt(m.X*(newSize.X-oldSize.X), m.Y*(newSize.Y-oldSize.Y)))
	return NewViewport(newCenter, newSize)
}

// Resize rescales the viewport size by newWindow/oldWindow component-wise
// about the current center, keeping fractal-plane content under a fixed
// window point in place across a window resize.
func (v Viewport) Resize(oldWindow, newWindow Point) Viewport {
	size := v.Size()
	newSize := Pt(size.X*newWindow.X/oldWindow.X, size.Y*newWindow.Y/oldWindow.Y)
	return NewViewport(v.Center(), newSize)
}

// FractalPoint maps a normalized [0,1]^2 point within the viewport (X
// right, Y up) to its fractal-plane coordinates.
func (v Viewport) FractalPoint(norm Point) Point {
	c := v.Center()
	size := v.Size()
	return Pt(c.X+(norm.X-0.5)*size.X, c.Y+(norm.Y-0.5)*size.Y)
}
