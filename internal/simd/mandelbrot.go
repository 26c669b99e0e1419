package simd

import (
	"errors"
	"sync/atomic"
)

// EscapeRadiusSquared is the squared escape-radius bailout threshold.
// Anything >= 4 is valid; a larger bailout only delays escape detection by
// at most one extra iteration.
const EscapeRadiusSquared = 5.0

// MaxIterHardCap bounds worst-case tile compute time regardless of what a
// caller requests.
const MaxIterHardCap = 4500

// MultisampleThreshold is the iteration-count delta above which a pixel
// would qualify for multisampling. The multisampling path itself is not
// wired; the constant documents the threshold.
const MultisampleThreshold uint16 = 64

// ErrCancelled is returned by Compute when the cancel flag was observed set
// before the tile finished. This is normal control flow, not a failure:
// the caller leaves the tile Idle and discards the partially-written
// buffer.
var ErrCancelled = errors.New("simd: compute cancelled")

// CancelFlag is a shared atomic boolean polled periodically inside
// Compute's inner loop. The zero value is unset.
type CancelFlag struct {
	set atomic.Bool
}

// Cancel marks the flag as set. Safe for concurrent use.
func (f *CancelFlag) Cancel() { f.set.Store(true) }

// Cancelled reports whether the flag has been set.
func (f *CancelFlag) Cancelled() bool { return f.set.Load() }

// pollInterval is how many pixel columns Compute advances between cancel
// checks.
const pollInterval = 32

// Compute fills out with escape iteration counts for the tileW x tileH
// pixel rectangle at (tileX, tileY) within a conceptual imageSize x
// imageSize image, mapped into the fractal plane via fractalOffset and
// fractalScale.
//
// out must have length tileW*tileH. Rows are stored in row-major order.
// maxIter is clamped to MaxIterHardCap. Returns ErrCancelled if cancel was
// observed set before the tile finished; in that case out may have been
// partially written (up to the last fully-computed lane block) and must be
// discarded by the caller, never uploaded.
func Compute(
	imageSize uint32,
	tileX, tileY, tileW, tileH uint32,
	fractalOffsetX, fractalOffsetY, fractalScale float64,
	maxIter uint32,
	cancel *CancelFlag,
	out []uint16,
) error {
	if uint32(len(out)) != tileW*tileH {
		panic("simd: out has wrong length for tile dimensions")
	}

	iterCap := maxIter
	if iterCap > MaxIterHardCap {
		iterCap = MaxIterHardCap
	}

	invImage := 1.0 / float64(imageSize)

	for row := uint32(0); row < tileH; row++ {
		py := float64(tileY + row)
		cy0 := (py*invImage - 0.5) / fractalScale
		cy0 -= fractalOffsetY

		for xBlock := uint32(0); xBlock < tileW; xBlock += LaneCount {
			if xBlock%pollInterval == 0 && cancel != nil && cancel.Cancelled() {
				return ErrCancelled
			}

			lanes := LaneCount
			if remaining := int(tileW - xBlock); remaining < lanes {
				lanes = remaining
			}

			var cx Float64x8
			for l := 0; l < lanes; l++ {
				px := float64(tileX + xBlock + uint32(l))
				cx[l] = (px*invImage - 0.5) / fractalScale
				cx[l] -= fractalOffsetX
			}
			cy := SplatF64(cy0)

			// Every lane iterates until it escapes; its count advances
			// only while active, so a lane escaping at iteration i ends
			// with count i+1 and a lane that never escapes stays active
			// with its count discarded. Escaped lanes keep iterating
			// (their values may blow up to inf) but are never read again.
			var zx, zy Float64x8
			var cnt Uint32x8
			var active [LaneCount]bool
			for l := 0; l < lanes; l++ {
				active[l] = true
			}

			for it := uint32(0); it < iterCap; it++ {
				cnt.AddWhere(active)

				zx2 := zx.Mul(zx)
				zy2 := zy.Mul(zy)
				xy := zx.Mul(zy)
				zx = zx2.Sub(zy2).Add(cx)
				zy = xy.Add(xy).Add(cy)

				mag := zx.Mul(zx).Add(zy.Mul(zy))
				anyActive := false
				for l := 0; l < lanes; l++ {
					if !active[l] {
						continue
					}
					if mag[l] >= EscapeRadiusSquared {
						active[l] = false
					} else {
						anyActive = true
					}
				}
				if !anyActive {
					break
				}
			}

			base := row*tileW + xBlock
			for l := 0; l < lanes; l++ {
				v := uint16(0)
				if !active[l] {
					c := cnt[l]
					if c > 0xFFFF {
						c = 0xFFFF
					}
					v = uint16(c)
				}
				out[base+uint32(l)] = v
			}
		}
	}

	return nil
}
