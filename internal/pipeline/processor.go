package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/Raudbjorn/pdq-go/internal/hasher"
	"github.com/Raudbjorn/pdq-go/internal/manifest"
	"github.com/Raudbjorn/pdq-go/pdq"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the outcome of fingerprinting one source image.
type processResult struct {
	key   string
	entry manifest.Entry
	err   error
}

// processImage fingerprints a single file: one read serves both the
// exact-content hash and the decode for the perceptual hash.
func processImage(src Source) processResult {
	result := processResult{key: src.RelPath}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	hash, quality, err := pdq.FromImage(img)
	if err != nil {
		result.err = fmt.Errorf("fingerprint %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	result.entry = manifest.Entry{
		Path:        src.RelPath,
		Format:      format,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Size:        src.Size,
		ContentHash: hasher.Sum64Hex(data),
		PDQ:         hash.Hex(),
		Quality:     quality,
	}
	return result
}
