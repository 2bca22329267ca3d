// Package hasher provides exact-content hashes for manifest entries.
// A content hash answers "are these the same bytes"; the perceptual
// fingerprint answers "do these look alike" — manifests carry both.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Sum64Hex returns the xxHash64 of data as 16 lowercase hex chars.
func Sum64Hex(data []byte) string {
	return encode(xxhash.Sum64(data))
}

// ReaderSum64Hex computes the xxHash64 of a reader, streaming.
func ReaderSum64Hex(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return encode(h.Sum64()), nil
}

func encode(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
