package simd

import "testing"

// With a 128x128 tile at the texture origin, zero offset and unit scale,
// the pixel at (64,64) corresponds to c=(0,0), which never escapes.
func TestOriginInsideSet(t *testing.T) {
	const size = 128
	out := make([]uint16, size*size)
	if err := Compute(size, 0, 0, size, size, 0, 0, 1.0, 100, nil, out); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := out[64*size+64]; got != 0 {
		t.Errorf("pixel at (64,64) = %d, want 0 (inside set)", got)
	}
}

func TestSIMDMatchesScalarReference(t *testing.T) {
	const tileW, tileH = 64, 64
	const imageSize = 512

	out := make([]uint16, tileW*tileH)
	if err := Compute(imageSize, 32, 48, tileW, tileH, -0.08, -0.45, 75.0, 512, nil, out); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	ref := make([]uint16, tileW*tileH)
	ComputeScalar(imageSize, 32, 48, tileW, tileH, -0.08, -0.45, 75.0, 512, ref)

	var sumSIMD, sumRef uint64
	for i := range out {
		sumSIMD += uint64(out[i])
		sumRef += uint64(ref[i])
	}
	if sumSIMD != sumRef {
		t.Errorf("sum(SIMD) = %d, sum(scalar) = %d, want equal", sumSIMD, sumRef)
	}
	for i := range out {
		if out[i] != ref[i] {
			t.Fatalf("pixel %d: SIMD=%d scalar=%d", i, out[i], ref[i])
		}
	}
}

func TestCancelBeforeFirstPoll(t *testing.T) {
	const size = 128
	out := make([]uint16, size*size)
	var cancel CancelFlag
	cancel.Cancel()

	err := Compute(size, 0, 0, size, size, 0, 0, 1.0, 4500, &cancel, out)
	if err != ErrCancelled {
		t.Fatalf("Compute() error = %v, want ErrCancelled", err)
	}
}

func TestCancelledLargeTileReturnsPromptly(t *testing.T) {
	const size = 256
	out := make([]uint16, size*size)
	var cancel CancelFlag

	// Cancel after the kernel has had a chance to process a handful of
	// lane blocks by flipping the flag from another goroutine is
	// nondeterministic to test directly; instead verify the documented
	// poll granularity: cancelling before the call still yields a prompt,
	// well-defined Cancelled result with no panic even for a large tile.
	cancel.Cancel()
	if err := Compute(size, 0, 0, size, size, 0, 0, 0.5, 4500, &cancel, out); err != ErrCancelled {
		t.Fatalf("Compute() error = %v, want ErrCancelled", err)
	}
}

func TestMaxIterClampedToHardCap(t *testing.T) {
	const size = 16
	out := make([]uint16, size*size)
	// Requesting far more than MaxIterHardCap must not hang or panic; it
	// silently clamps.
	if err := Compute(size, 0, 0, size, size, 0, 0, 1.0, 1_000_000, nil, out); err != nil {
		t.Fatalf("Compute: %v", err)
	}
}

func TestNonMultipleOfLaneCountWidth(t *testing.T) {
	// tileW=20 is not a multiple of LaneCount(8); the tail lane block
	// must still be handled without writing out of bounds.
	const tileW, tileH = 20, 4
	out := make([]uint16, tileW*tileH)
	if err := Compute(64, 0, 0, tileW, tileH, 0, 0, 1.0, 50, nil, out); err != nil {
		t.Fatalf("Compute: %v", err)
	}
}
