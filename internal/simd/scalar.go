package simd

// ComputeScalar is a non-vectorized reference implementation of the same
// kernel as Compute, used only to verify the vectorized path produces
// identical iteration counts. It does not support cancellation since it
// exists purely as a test oracle.
func ComputeScalar(
	imageSize uint32,
	tileX, tileY, tileW, tileH uint32,
	fractalOffsetX, fractalOffsetY, fractalScale float64,
	maxIter uint32,
	out []uint16,
) {
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
		cy := (py*invImage-0.5)/fractalScale - fractalOffsetY

		for col := uint32(0); col < tileW; col++ {
			px := float64(tileX + col)
			cx := (px*invImage-0.5)/fractalScale - fractalOffsetX

			var zx, zy float64
			var iter uint32
			escaped := false
			for ; iter < iterCap; iter++ {
				nx := zx*zx - zy*zy + cx
				ny := 2*zx*zy + cy
				zx, zy = nx, ny
				if zx*zx+zy*zy >= EscapeRadiusSquared {
					escaped = true
					iter++
					break
				}
			}

			v := uint16(0)
			if escaped {
				c := iter
				if c > 0xFFFF {
					c = 0xFFFF
				}
				v = uint16(c)
			}
			out[row*tileW+col] = v
		}
	}
}
