package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/Raudbjorn/pdq-go/internal/manifest"
	"github.com/Raudbjorn/pdq-go/pdq"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var hashOrientations bool

var hashCmd = &cobra.Command{
	Use:   "hash <image...>",
	Short: "Fingerprint one or more images",
	Long: `Decodes each image (png, jpg, gif, webp, bmp, tiff) and prints its
256-bit fingerprint as hex, with a 0-100 quality score. Low quality
means the image had too little structure (near-uniform content) for
the fingerprint to be reliable.

With --orientations, also prints fingerprints for the seven rotated
and mirrored orientations, covering the full dihedral family so a
match can be found even when one copy was rotated or flipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().BoolVar(&hashOrientations, "orientations", false,
		"also fingerprint rotated and mirrored orientations")
	rootCmd.AddCommand(hashCmd)
}

// orientation pairs a dihedral transform with its label.
type orientation struct {
	name  string
	apply func(image.Image) image.Image
}

var orientations = []orientation{
	{"rotate90", func(img image.Image) image.Image { return imaging.Rotate90(img) }},
	{"rotate180", func(img image.Image) image.Image { return imaging.Rotate180(img) }},
	{"rotate270", func(img image.Image) image.Image { return imaging.Rotate270(img) }},
	{"flip-h", func(img image.Image) image.Image { return imaging.FlipH(img) }},
	{"flip-v", func(img image.Image) image.Image { return imaging.FlipV(img) }},
	{"transpose", func(img image.Image) image.Image { return imaging.Transpose(img) }},
	{"transverse", func(img image.Image) image.Image { return imaging.Transverse(img) }},
}

func runHash(_ *cobra.Command, args []string) error {
	for _, path := range args {
		img, err := decodeImage(path)
		if err != nil {
			return err
		}

		hash, quality, err := pdq.FromImage(img)
		if err != nil {
			return fmt.Errorf("fingerprint %s: %w", path, err)
		}
		fmt.Printf("%s  q=%-3d  %s\n", hash.Hex(), quality, path)
		if quality < manifest.LowQualityThreshold {
			logVerbose("low quality (%d) for %s: fingerprint may be unreliable", quality, path)
		}

		if !hashOrientations {
			continue
		}
		for _, o := range orientations {
			oh, _, err := pdq.FromImage(o.apply(img))
			if err != nil {
				return fmt.Errorf("fingerprint %s (%s): %w", path, o.name, err)
			}
			fmt.Printf("%s  %-10s %s\n", oh.Hex(), o.name, path)
		}
	}
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	logVerbose("decoded %s (%s, %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
