package pdq

import (
	"errors"
	"fmt"
	"math/bits"
)

// Sentinel errors returned by the public entry points. Callers can
// distinguish their own mistakes (missing input, bad dimensions, bad
// format) from unexpected internal failures.
var (
	ErrMissingInput      = errors.New("pdq: missing input buffer")
	ErrInvalidDimensions = errors.New("pdq: invalid dimensions")
	ErrInvalidFormat     = errors.New("pdq: invalid hash format")
	ErrInternal          = errors.New("pdq: internal computation failure")
)

// HashBits is the fingerprint width in bits.
const HashBits = 256

// HashBytes is the fingerprint width in bytes.
const HashBytes = HashBits / 8

// Hash256 is a 256-bit perceptual fingerprint stored as 16 words of
// 16 bits.  Word i holds bits [16i, 16i+16); bit k of word i corresponds
// to row i, column k of the quantized coefficient matrix.
//
// The zero value is the all-zero hash (the fingerprint of a flat black
// image).  Hash256 is a comparable value type: == is bit equality.
type Hash256 [16]uint16

// setBit sets bit n (0-based, row-major over the coefficient matrix).
func (h *Hash256) setBit(n int) {
	h[n>>4] |= 1 << uint(n&15)
}

// Bit reports whether bit n is set.
func (h Hash256) Bit(n int) bool {
	return h[n>>4]&(1<<uint(n&15)) != 0
}

// Bytes returns the canonical 32-byte big-endian encoding: byte 2i is
// the high byte of word i, byte 2i+1 the low byte.  This layout is a
// wire contract shared with other implementations and is independent of
// host byte order.
func (h Hash256) Bytes() [HashBytes]byte {
	var out [HashBytes]byte
	for i, w := range h {
		out[i*2] = byte(w >> 8)
		out[i*2+1] = byte(w)
	}
	return out
}

// FromBytes decodes the canonical 32-byte encoding produced by Bytes.
// Inputs of any other length are rejected with ErrInvalidFormat.
func FromBytes(b []byte) (Hash256, error) {
	var h Hash256
	if len(b) != HashBytes {
		return h, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidFormat, HashBytes, len(b))
	}
	for i := range h {
		h[i] = uint16(b[i*2])<<8 | uint16(b[i*2+1])
	}
	return h, nil
}

const hexDigits = "0123456789abcdef"

// Hex returns the 64-character lowercase hex encoding, most significant
// byte first, matching the Bytes order.
func (h Hash256) Hex() string {
	var out [HashBytes * 2]byte
	b := h.Bytes()
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0xf]
	}
	return string(out[:])
}

// String implements fmt.Stringer as the hex form.
func (h Hash256) String() string {
	return h.Hex()
}

// FromHex decodes a 64-character hex fingerprint.  Both cases are
// accepted on input.  A wrong length or any non-hex character yields
// ErrInvalidFormat and the zero hash; no partial value is ever returned.
func FromHex(s string) (Hash256, error) {
	var h Hash256
	if len(s) != HashBytes*2 {
		return Hash256{}, fmt.Errorf("%w: want %d hex chars, got %d", ErrInvalidFormat, HashBytes*2, len(s))
	}
	for i := 0; i < HashBytes; i++ {
		hi := hexVal(s[i*2])
		lo := hexVal(s[i*2+1])
		if hi < 0 || lo < 0 {
			pos := i * 2
			if hi >= 0 {
				pos++
			}
			return Hash256{}, fmt.Errorf("%w: non-hex character at position %d", ErrInvalidFormat, pos)
		}
		h[i>>1] |= uint16(hi<<4|lo) << uint(8*(1-i&1))
	}
	return h, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// HammingDistance counts the bit positions where h and o differ.
// The result is in [0, 256].  It is a metric: zero iff equal, symmetric,
// and it satisfies the triangle inequality.
func (h Hash256) HammingDistance(o Hash256) int {
	d := 0
	for i := range h {
		d += bits.OnesCount16(h[i] ^ o[i])
	}
	return d
}
