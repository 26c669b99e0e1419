package gputex

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/mandelscope/mandelscope/internal/scheduler"
)

func TestBlitTransformIdentity(t *testing.T) {
	r := scheduler.Rect{X: -1, Y: -1, W: 2, H: 2}
	m := blitTransform(r, r)
	want := [6]float64{1, 0, 0, 0, 1, 0}
	if m != want {
		t.Fatalf("blitTransform(r, r) = %v, want identity %v", m, want)
	}
}

func TestBlitTransformPureTranslation(t *testing.T) {
	prev := scheduler.Rect{X: 0, Y: 0, W: 4, H: 4}
	next := scheduler.Rect{X: 1, Y: 2, W: 4, H: 4}
	m := blitTransform(prev, next)

	// Same size: unit scale, translation of (1/4, 2/4) in prev-uv units.
	if m[0] != 1 || m[4] != 1 {
		t.Errorf("scale = (%v,%v), want (1,1)", m[0], m[4])
	}
	if m[2] != 0.25 || m[5] != 0.5 {
		t.Errorf("translation = (%v,%v), want (0.25,0.5)", m[2], m[5])
	}
}

func TestBlitTransformZoomMapsCenterToCenter(t *testing.T) {
	prev := scheduler.Rect{X: -2, Y: -2, W: 4, H: 4}
	next := scheduler.Rect{X: -1, Y: -1, W: 2, H: 2} // zoomed in 2x about the origin

	m := blitTransform(prev, next)

	// The center of the new cache (uv 0.5,0.5) must sample the texel that
	// held the same fractal point, which is also the center of prev.
	u := m[0]*0.5 + m[1]*0.5 + m[2]
	v := m[3]*0.5 + m[4]*0.5 + m[5]
	if math.Abs(u-0.5) > 1e-12 || math.Abs(v-0.5) > 1e-12 {
		t.Fatalf("center maps to (%v,%v), want (0.5,0.5)", u, v)
	}
}

func TestPackBlitParamsLayout(t *testing.T) {
	m := [6]float64{1, 0, 0.25, 0, 1, 0.5}
	buf := packBlitParams(m, 4096)
	if len(buf) != 32 {
		t.Fatalf("len = %d, want 32", len(buf))
	}
	for i, want := range m {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != float32(want) {
			t.Errorf("coefficient %d = %v, want %v", i, got, want)
		}
	}
	if size := binary.LittleEndian.Uint32(buf[24:]); size != 4096 {
		t.Errorf("texture size = %d, want 4096", size)
	}
}

func TestPackScreenParamsLayout(t *testing.T) {
	buf := packScreenParams(4500, 256, 8192)
	if len(buf) != 16 {
		t.Fatalf("len = %d, want 16", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[0:]); got != 4500 {
		t.Errorf("max iterations = %d, want 4500", got)
	}
	if got := binary.LittleEndian.Uint32(buf[4:]); got != 256 {
		t.Errorf("palette size = %d, want 256", got)
	}
	if got := binary.LittleEndian.Uint32(buf[8:]); got != 8192 {
		t.Errorf("texture size = %d, want 8192", got)
	}
}
