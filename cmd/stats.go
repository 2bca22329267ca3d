package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Raudbjorn/pdq-go/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <dir_or_manifest>",
	Short: "Display statistics for a scanned manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for a manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "pdq.manifest.json")
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	m.ComputeStats()

	fmt.Printf("  Root:        %s\n", m.Root)
	fmt.Printf("  Generated:   %s\n", m.GeneratedAt)
	fmt.Printf("  Files:       %d\n", m.Stats.TotalFiles)
	fmt.Printf("  Bytes:       %d\n", m.Stats.TotalBytes)
	fmt.Printf("  Low quality: %d (below %d)\n", m.Stats.LowQuality, manifest.LowQualityThreshold)

	if len(m.Entries) == 0 {
		return
	}

	// Quality distribution in buckets of 10.
	var buckets [11]int
	for _, e := range m.Entries {
		b := e.Quality / 10
		if b > 10 {
			b = 10
		}
		if b < 0 {
			b = 0
		}
		buckets[b]++
	}
	fmt.Println("\n  Quality distribution:")
	for b := 10; b >= 0; b-- {
		if buckets[b] == 0 {
			continue
		}
		lo := b * 10
		hi := lo + 9
		if b == 10 {
			hi = 100
		}
		fmt.Printf("    %3d–%-3d %s (%d)\n", lo, hi, bar(buckets[b]), buckets[b])
	}

	// Lowest-quality entries are the matching weak spots.
	type kq struct {
		key     string
		quality int
	}
	var items []kq
	for key, e := range m.Entries {
		items = append(items, kq{key, e.Quality})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].quality != items[j].quality {
			return items[i].quality < items[j].quality
		}
		return items[i].key < items[j].key
	})
	n := len(items)
	if n > 5 {
		n = 5
	}
	fmt.Printf("\n  Weakest fingerprints:\n")
	for _, it := range items[:n] {
		fmt.Printf("    q=%-3d %s\n", it.quality, it.key)
	}
}

func bar(n int) string {
	if n > 40 {
		n = 40
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = '#'
	}
	return string(out)
}
