// Package simd provides the vectorized per-pixel Mandelbrot iteration
// kernel.
//
// Go has no portable SIMD intrinsics in the standard toolchain, so the
// kernel works over small fixed-size arrays and lets the compiler
// auto-vectorize the lane loops on amd64/arm64.
package simd

// LaneCount is the vector width used by the Mandelbrot kernel.
const LaneCount = 8

// Float64x8 holds LaneCount float64 lanes. Methods operate lane-wise.
type Float64x8 [LaneCount]float64

// SplatF64 returns a Float64x8 with every lane set to v.
func SplatF64(v float64) Float64x8 {
	var r Float64x8
	for i := range r {
		r[i] = v
	}
	return r
}

// Add returns a + b, lane-wise.
func (a Float64x8) Add(b Float64x8) Float64x8 {
	var r Float64x8
	for i := range r {
		r[i] = a[i] + b[i]
	}
	return r
}

// Sub returns a - b, lane-wise.
func (a Float64x8) Sub(b Float64x8) Float64x8 {
	var r Float64x8
	for i := range r {
		r[i] = a[i] - b[i]
	}
	return r
}

// Mul returns a * b, lane-wise.
func (a Float64x8) Mul(b Float64x8) Float64x8 {
	var r Float64x8
	for i := range r {
		r[i] = a[i] * b[i]
	}
	return r
}

// Uint32x8 holds LaneCount uint32 lanes, used as the per-lane iteration
// counter. Counts are accumulated in 32 bits to avoid overflow concerns
// during iteration even though the final stored Pixel is 16-bit.
type Uint32x8 [LaneCount]uint32

// AddWhere increments each lane of c by 1 where mask[i] is true.
func (c *Uint32x8) AddWhere(mask [LaneCount]bool) {
	for i := range c {
		if mask[i] {
			c[i]++
		}
	}
}
