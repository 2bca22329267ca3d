package pdq

import (
	"math"
	"sort"
)

// quantize thresholds the coefficient block into a 256-bit hash and
// derives the quality score.  The threshold is the median of all 256
// coefficients (mean of the two middle order statistics); a bit is set
// iff its coefficient strictly exceeds the threshold, so bit k of word
// i maps to matrix position (i, k).
//
// Quality is the mean absolute deviation of the coefficients from the
// threshold, capped at 100.  A near-flat block — typically a blank or
// uniform source image — scores at or near zero, flagging the hash as
// unreliable for matching.
func quantize(coeff *CoeffMatrix, scratch *[hashDim * hashDim]float32) (Hash256, int) {
	copy(scratch[:], coeff[:])
	sort.Sort(f32Slice(scratch[:]))
	n := len(scratch)
	median := (scratch[n/2-1] + scratch[n/2]) / 2

	var hash Hash256
	var spread float64
	for i, c := range coeff {
		if c > median {
			hash.setBit(i)
		}
		spread += math.Abs(float64(c - median))
	}

	quality := int(math.Round(spread / float64(n)))
	if quality > 100 {
		quality = 100
	}
	return hash, quality
}

// f32Slice adapts []float32 for sort.Sort.  NaNs cannot occur here:
// every coefficient is a finite combination of byte-ranged inputs.
type f32Slice []float32

func (s f32Slice) Len() int           { return len(s) }
func (s f32Slice) Less(i, j int) bool { return s[i] < s[j] }
func (s f32Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
