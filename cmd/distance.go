package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raudbjorn/pdq-go/pdq"
)

var distanceCmd = &cobra.Command{
	Use:   "distance <a> <b>",
	Short: "Hamming distance between two fingerprints",
	Long: `Compares two fingerprints and prints their Hamming distance (0-256).
Each argument is either a 64-character hex fingerprint or the path of
an image to fingerprint on the fly. As a rule of thumb, distances up
to ~31 indicate visually near-identical images.`,
	Args: cobra.ExactArgs(2),
	RunE: runDistance,
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}

func runDistance(_ *cobra.Command, args []string) error {
	a, err := resolveHash(args[0])
	if err != nil {
		return err
	}
	b, err := resolveHash(args[1])
	if err != nil {
		return err
	}
	fmt.Println(a.HammingDistance(b))
	return nil
}

// resolveHash treats the argument as hex when it parses, otherwise as
// an image path.
func resolveHash(arg string) (pdq.Hash256, error) {
	if h, err := pdq.FromHex(arg); err == nil {
		return h, nil
	}
	if _, err := os.Stat(arg); err != nil {
		return pdq.Hash256{}, fmt.Errorf("%s is neither a 64-char hex fingerprint nor a readable file", arg)
	}
	img, err := decodeImage(arg)
	if err != nil {
		return pdq.Hash256{}, err
	}
	h, quality, err := pdq.FromImage(img)
	if err != nil {
		return pdq.Hash256{}, fmt.Errorf("fingerprint %s: %w", arg, err)
	}
	logVerbose("%s  q=%d  %s", h.Hex(), quality, arg)
	return h, nil
}
