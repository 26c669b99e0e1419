package mandelscope

import "testing"

func TestFromCenterSizeRoundTrip(t *testing.T) {
	r := FromCenterSize(3.0, -2.0, 4.0, 6.0)
	cx, cy := r.Center()
	if cx != 3.0 || cy != -2.0 {
		t.Errorf("Center() = (%v,%v), want (3,-2)", cx, cy)
	}
}

func TestFromPosSizeCenter(t *testing.T) {
	r := FromPosSize(10.0, 20.0, 4.0, 8.0)
	cx, cy := r.Center()
	if cx != 12.0 || cy != 24.0 {
		t.Errorf("Center() = (%v,%v), want (12,24)", cx, cy)
	}
}

func TestContainsExactCoincidence(t *testing.T) {
	a := FromPosSize(0.0, 0.0, 10.0, 10.0)
	b := FromPosSize(0.0, 0.0, 10.0, 10.0)
	if !a.Contains(b) {
		t.Error("a rectangle exactly coinciding with another should contain it")
	}
}

func TestContainsStrictSubset(t *testing.T) {
	outer := FromPosSize(0.0, 0.0, 10.0, 10.0)
	inner := FromPosSize(2.0, 2.0, 4.0, 4.0)
	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if inner.Contains(outer) {
		t.Error("inner should not contain outer")
	}
}

func TestIntersectsTouchingEdgesIsFalse(t *testing.T) {
	a := FromPosSize(0.0, 0.0, 10.0, 10.0)
	b := FromPosSize(10.0, 0.0, 10.0, 10.0)
	if a.Intersects(b) {
		t.Error("rectangles that only touch at an edge should not intersect (half-open)")
	}
}

func TestIntersectsOverlapping(t *testing.T) {
	a := FromPosSize(0.0, 0.0, 10.0, 10.0)
	b := FromPosSize(5.0, 5.0, 10.0, 10.0)
	if !a.Intersects(b) {
		t.Error("overlapping rectangles should intersect")
	}
}

func TestURectGrid(t *testing.T) {
	r := FromPosSize[uint32](0, 0, 128, 128)
	if r.Right() != 128 || r.Bottom() != 128 {
		t.Errorf("Right/Bottom = %d/%d, want 128/128", r.Right(), r.Bottom())
	}
}

func TestDCenterAndSize(t *testing.T) {
	r := DFromCenterSize(Pt(1, 2), Pt(4, 6))
	c := DCenter(r)
	if c.X != 1 || c.Y != 2 {
		t.Errorf("DCenter = %v, want (1,2)", c)
	}
	sz := DSize(r)
	if sz.X != 4 || sz.Y != 6 {
		t.Errorf("DSize = %v, want (4,6)", sz)
	}
}
