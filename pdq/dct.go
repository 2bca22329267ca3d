package pdq

import "math"

// hashDim is the side of the retained low-frequency coefficient block.
const hashDim = 16

// CoeffMatrix is the 16×16 block of lowest non-DC frequency
// coefficients, row-major.
type CoeffMatrix [hashDim * hashDim]float32

// dctBasis[i][j] = sqrt(2/64) · cos(π/(2·64) · (i+1) · (2j+1)).
// The i+1 offset skips the zero-frequency row, so the retained
// coefficients are invariant to uniform brightness shifts.
var dctBasis [hashDim][gridSize]float32

func init() {
	scale := math.Sqrt(2.0 / gridSize)
	for i := 0; i < hashDim; i++ {
		for j := 0; j < gridSize; j++ {
			dctBasis[i][j] = float32(scale * math.Cos(
				math.Pi/2/gridSize*float64(i+1)*float64(2*j+1)))
		}
	}
}

// dct64To16 applies the separable two-pass cosine transform: a column
// pass reduces the 64×64 tone grid to a 16×64 intermediate, then a row
// pass reduces that to the final 16×16 block.  Pure, no data-dependent
// branching.
func dct64To16(tone *ToneMatrix, tmp *[hashDim * gridSize]float32, dst *CoeffMatrix) {
	// Column pass: tmp[i][j] = Σ_k basis[i][k] · tone[k][j].
	for i := 0; i < hashDim; i++ {
		basis := &dctBasis[i]
		for j := 0; j < gridSize; j++ {
			var sum float32
			for k := 0; k < gridSize; k++ {
				sum += basis[k] * tone[k*gridSize+j]
			}
			tmp[i*gridSize+j] = sum
		}
	}

	// Row pass: dst[i][j] = Σ_k tmp[i][k] · basis[j][k].
	for i := 0; i < hashDim; i++ {
		row := tmp[i*gridSize : (i+1)*gridSize]
		for j := 0; j < hashDim; j++ {
			basis := &dctBasis[j]
			var sum float32
			for k := 0; k < gridSize; k++ {
				sum += row[k] * basis[k]
			}
			dst[i*hashDim+j] = sum
		}
	}
}
