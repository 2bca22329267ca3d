package pdq

// gridSize is the side of the canonical low-pass grid the frequency
// transform consumes.
const gridSize = 64

// ToneMatrix is the fixed 64×64 low-pass luminance grid, row-major.
type ToneMatrix [gridSize * gridSize]float32

// downsample box-averages an arbitrary-size luminance matrix into the
// fixed 64×64 tone grid.  Each destination cell averages the
// source-aligned span of samples, so large images are anti-aliased
// rather than subsampled, and sources smaller than 64 in a dimension
// duplicate samples instead of producing empty windows.
//
// Destination-order traversal with left-to-right accumulation keeps the
// result bit-for-bit reproducible.
func downsample(luma []float32, w, h int, dst *ToneMatrix) {
	for dy := 0; dy < gridSize; dy++ {
		sy0, sy1 := srcSpan(dy, gridSize, h)
		for dx := 0; dx < gridSize; dx++ {
			sx0, sx1 := srcSpan(dx, gridSize, w)

			var sum float32
			for sy := sy0; sy < sy1; sy++ {
				row := sy * w
				for sx := sx0; sx < sx1; sx++ {
					sum += luma[row+sx]
				}
			}
			dst[dy*gridSize+dx] = sum / float32((sy1-sy0)*(sx1-sx0))
		}
	}
}

// srcSpan maps destination index d of dstSize onto a half-open source
// span, widened to at least one sample and clamped to srcSize.
func srcSpan(d, dstSize, srcSize int) (int, int) {
	s0 := d * srcSize / dstSize
	s1 := (d + 1) * srcSize / dstSize
	if s1 <= s0 {
		s1 = s0 + 1
	}
	if s1 > srcSize {
		s1 = srcSize
	}
	return s0, s1
}
