package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raudbjorn/pdq-go/internal/manifest"
	"github.com/Raudbjorn/pdq-go/internal/pipeline"
)

var (
	scanOut     string
	scanWorkers int
)

var scanCmd = &cobra.Command{
	Use:   "scan <input_dir>",
	Short: "Fingerprint a directory tree into a manifest",
	Long: `Walks the input directory for images (png, jpg, jpeg, gif, webp, bmp,
tiff), fingerprints each in parallel, and writes a JSON manifest with
the perceptual fingerprint, an exact-content hash, dimensions, and the
quality score per file.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "pdq.manifest.json", "manifest output path")
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir: absInput,
		Workers:  scanWorkers,
		Verbose:  verbose,
	})
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := manifest.WriteJSON(m, scanOut); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	fmt.Printf("  Files:       %d\n", m.Stats.TotalFiles)
	fmt.Printf("  Bytes:       %d\n", m.Stats.TotalBytes)
	if m.Stats.LowQuality > 0 {
		fmt.Printf("  Low quality: %d (below %d)\n", m.Stats.LowQuality, manifest.LowQualityThreshold)
	}
	fmt.Printf("  Time:        %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Manifest:    %s\n", scanOut)
	return nil
}
