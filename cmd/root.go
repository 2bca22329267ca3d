package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pdq",
	Short: "256-bit perceptual image fingerprints",
	Long: `pdq — compact, robust perceptual fingerprints for raster images.

Visually near-identical images (resized, recompressed, lightly edited)
hash to values at small Hamming distance; distinct images land far
apart. Fingerprints travel as 64-character hex strings and compare in
nanoseconds, making near-duplicate detection a pair of integer ops.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pdq %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[pdq] "+format+"\n", args...)
	}
}
