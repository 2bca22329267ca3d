package pdq

import "testing"

func runQuantize(coeff *CoeffMatrix) (Hash256, int) {
	var scratch [hashDim * hashDim]float32
	return quantize(coeff, &scratch)
}

func TestQuantize_FlatMatrix(t *testing.T) {
	var coeff CoeffMatrix
	h, q := runQuantize(&coeff)
	if h != (Hash256{}) {
		t.Errorf("flat matrix hash = %s, want all zeros", h)
	}
	if q != 0 {
		t.Errorf("flat matrix quality = %d, want 0", q)
	}
}

// Alternating ±10 splits exactly at the median: bits follow the sign,
// quality equals the mean absolute deviation.
func TestQuantize_AlternatingSigns(t *testing.T) {
	var coeff CoeffMatrix
	for i := range coeff {
		if i%2 == 0 {
			coeff[i] = 10
		} else {
			coeff[i] = -10
		}
	}
	h, q := runQuantize(&coeff)
	for i, w := range h {
		if w != 0x5555 {
			t.Errorf("word %d = %04x, want 5555", i, w)
		}
	}
	if q != 10 {
		t.Errorf("quality = %d, want 10", q)
	}
}

func TestQuantize_QualityMonotoneInSpread(t *testing.T) {
	var small, large CoeffMatrix
	for i := range small {
		sign := float32(1)
		if i%2 == 1 {
			sign = -1
		}
		small[i] = 4 * sign
		large[i] = 40 * sign
	}
	_, qSmall := runQuantize(&small)
	_, qLarge := runQuantize(&large)
	if qSmall >= qLarge {
		t.Errorf("quality not monotone: spread 4 → %d, spread 40 → %d", qSmall, qLarge)
	}
}

func TestQuantize_QualityCapped(t *testing.T) {
	var coeff CoeffMatrix
	for i := range coeff {
		if i%2 == 0 {
			coeff[i] = 500
		} else {
			coeff[i] = -500
		}
	}
	_, q := runQuantize(&coeff)
	if q != 100 {
		t.Errorf("quality = %d, want capped at 100", q)
	}
}

// One outlier above a flat background sets exactly one bit, at the
// row-major position of its matrix cell.
func TestQuantize_BitPosition(t *testing.T) {
	var coeff CoeffMatrix
	for i := range coeff {
		coeff[i] = -1
	}
	const row, col = 2, 3
	coeff[row*hashDim+col] = 100

	h, _ := runQuantize(&coeff)
	for n := 0; n < HashBits; n++ {
		want := n == row*hashDim+col
		if h.Bit(n) != want {
			t.Errorf("bit %d = %v, want %v", n, h.Bit(n), want)
		}
	}
	if h[row] != 1<<col {
		t.Errorf("word %d = %04x, want %04x", row, h[row], 1<<col)
	}
}

// Strictly-exceeds rule: values equal to the threshold stay zero.
func TestQuantize_StrictThreshold(t *testing.T) {
	var coeff CoeffMatrix // all zeros: median 0, nothing strictly above
	h, _ := runQuantize(&coeff)
	for n := 0; n < HashBits; n++ {
		if h.Bit(n) {
			t.Fatalf("bit %d set for coefficients equal to threshold", n)
		}
	}
}
