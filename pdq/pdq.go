// Package pdq computes 256-bit perceptual image fingerprints.
//
// Visually near-identical images (after resizing, mild recompression,
// or minor edits) hash to values at small Hamming distance; distinct
// images land far apart.  The pipeline is a deterministic numeric chain:
// BT.601 luminance → 64×64 box-filtered tone grid → separable cosine
// transform keeping the lowest 16×16 non-DC coefficients → median
// threshold into 256 bits, plus a 0–100 quality score measuring how
// much robust structure the source contained.
//
// Performance design:
//   - float32 throughout the numeric stages
//   - sync.Pool for the fixed-size work buffers → the only
//     size-dependent allocation per call is the luminance slice
//   - pre-computed cosine basis, pure multiply-add transform
//   - every entry point is pure and safe for concurrent use
//
// The byte and hex encodings of Hash256 are a cross-implementation wire
// contract; see Hash256.Bytes.
package pdq

import (
	"fmt"
	"image"
	"sync"
)

// workBuf holds the fixed-size intermediates of one pipeline run.
// tone(16 KB) + tmp(4 KB) + coeff/scratch(2 KB) ≈ 22 KB per pool entry.
type workBuf struct {
	tone    ToneMatrix
	tmp     [hashDim * gridSize]float32
	coeff   CoeffMatrix
	scratch [hashDim * hashDim]float32
}

var wbPool = sync.Pool{New: func() any { return new(workBuf) }}

// FromRGB fingerprints an interleaved R,G,B byte buffer of the given
// dimensions.  It returns the hash, a quality score in [0, 100], and an
// error for a nil buffer (ErrMissingInput) or non-positive dimensions /
// a buffer shorter than width*height*3 (ErrInvalidDimensions).
// Validation happens before any computation, so a rejected call does no
// partial work.
func FromRGB(buf []byte, width, height int) (Hash256, int, error) {
	if buf == nil {
		return Hash256{}, 0, ErrMissingInput
	}
	if err := checkDims(len(buf), width, height, 3); err != nil {
		return Hash256{}, 0, err
	}
	return hashLuma(func() []float32 { return lumaFromRGB(buf, width*height) }, width, height)
}

// FromGray fingerprints a single-channel grayscale byte buffer.  Same
// validation contract as FromRGB with one byte per pixel.
func FromGray(buf []byte, width, height int) (Hash256, int, error) {
	if buf == nil {
		return Hash256{}, 0, ErrMissingInput
	}
	if err := checkDims(len(buf), width, height, 1); err != nil {
		return Hash256{}, 0, err
	}
	return hashLuma(func() []float32 { return lumaFromGray(buf, width*height) }, width, height)
}

// FromImage fingerprints a decoded image.  Fast paths extract luminance
// directly from NRGBA, RGBA, Gray and YCbCr pixel storage; other types
// fall back to the generic color interface.
func FromImage(img image.Image) (Hash256, int, error) {
	if img == nil {
		return Hash256{}, 0, ErrMissingInput
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return Hash256{}, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return hashLuma(func() []float32 { return lumaFromImage(img, bounds, w, h) }, w, h)
}

func checkDims(bufLen, width, height, channels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	// Divide instead of multiplying: width*height*channels can wrap for
	// huge dimensions and slip past a product comparison.  For positive
	// ints, bufLen/channels/height >= width iff bufLen >= w*h*c.
	if bufLen/channels/height < width {
		return fmt.Errorf("%w: buffer %d bytes too short for %dx%dx%d",
			ErrInvalidDimensions, bufLen, width, height, channels)
	}
	return nil
}

// hashLuma runs luminance extraction and the downsample → transform →
// quantize chain.  The numeric stages cannot fail on validated input;
// the recover boundary (which also covers extraction) maps any
// unexpected panic to ErrInternal instead of crashing the caller.
func hashLuma(extract func() []float32, w, h int) (hash Hash256, quality int, err error) {
	defer func() {
		if r := recover(); r != nil {
			hash, quality = Hash256{}, 0
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	luma := extract()
	wb := wbPool.Get().(*workBuf)
	downsample(luma, w, h, &wb.tone)
	dct64To16(&wb.tone, &wb.tmp, &wb.coeff)
	hash, quality = quantize(&wb.coeff, &wb.scratch)
	wbPool.Put(wb)
	return hash, quality, nil
}

// lumaFromImage extracts one float32 luminance sample per pixel.
func lumaFromImage(img image.Image, bounds image.Rectangle, w, h int) []float32 {
	luma := make([]float32, w*h)

	switch src := img.(type) {
	case *image.NRGBA:
		bY := bounds.Min.Y - src.Rect.Min.Y
		bX4 := (bounds.Min.X - src.Rect.Min.X) * 4
		for y := 0; y < h; y++ {
			off := (bY+y)*src.Stride + bX4
			row := y * w
			for x := 0; x < w; x++ {
				luma[row+x] = lumaR*float32(src.Pix[off]) +
					lumaG*float32(src.Pix[off+1]) +
					lumaB*float32(src.Pix[off+2])
				off += 4
			}
		}
	case *image.RGBA:
		// Premultiplied; un-premultiply before weighting.
		bY := bounds.Min.Y - src.Rect.Min.Y
		bX4 := (bounds.Min.X - src.Rect.Min.X) * 4
		for y := 0; y < h; y++ {
			off := (bY+y)*src.Stride + bX4
			row := y * w
			for x := 0; x < w; x++ {
				a := src.Pix[off+3]
				if a == 0 {
					off += 4
					continue
				}
				inv := float32(255) / float32(a)
				luma[row+x] = (lumaR*float32(src.Pix[off]) +
					lumaG*float32(src.Pix[off+1]) +
					lumaB*float32(src.Pix[off+2])) * inv
				off += 4
			}
		}
	case *image.Gray:
		bY := bounds.Min.Y - src.Rect.Min.Y
		bX := bounds.Min.X - src.Rect.Min.X
		for y := 0; y < h; y++ {
			off := (bY+y)*src.Stride + bX
			row := y * w
			for x := 0; x < w; x++ {
				luma[row+x] = float32(src.Pix[off])
				off++
			}
		}
	case *image.YCbCr:
		// The Y plane already is BT.601 luma.
		bY := bounds.Min.Y - src.Rect.Min.Y
		bX := bounds.Min.X - src.Rect.Min.X
		for y := 0; y < h; y++ {
			off := (bY+y)*src.YStride + bX
			row := y * w
			for x := 0; x < w; x++ {
				luma[row+x] = float32(src.Y[off])
				off++
			}
		}
	default:
		for y := 0; y < h; y++ {
			row := y * w
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				luma[row+x] = (lumaR*float32(r) +
					lumaG*float32(g) +
					lumaB*float32(b)) / 257
			}
		}
	}
	return luma
}
