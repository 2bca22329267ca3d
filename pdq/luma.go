package pdq

// BT.601 luma weights.  These are part of the fingerprint contract:
// changing them changes every hash.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// lumaFromRGB converts an interleaved R,G,B byte buffer into one float32
// luminance sample per pixel, same row-major order.  Inputs are assumed
// validated by the caller.
func lumaFromRGB(buf []byte, n int) []float32 {
	luma := make([]float32, n)
	for i := 0; i < n; i++ {
		off := i * 3
		luma[i] = lumaR*float32(buf[off]) +
			lumaG*float32(buf[off+1]) +
			lumaB*float32(buf[off+2])
	}
	return luma
}

// lumaFromGray widens each grayscale byte to float32.
func lumaFromGray(buf []byte, n int) []float32 {
	luma := make([]float32, n)
	for i := 0; i < n; i++ {
		luma[i] = float32(buf[i])
	}
	return luma
}
