package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Raudbjorn/pdq-go/internal/manifest"
	"github.com/Raudbjorn/pdq-go/pdq"
)

var dupesMaxDistance int

var dupesCmd = &cobra.Command{
	Use:   "dupes <manifest>",
	Short: "Report near-duplicate pairs in a scanned manifest",
	Long: `Compares every pair of fingerprints in a manifest and prints the
pairs within --max-distance, closest first. Exact byte duplicates
(identical content hash) are marked. Entries with low-quality
fingerprints are compared but flagged, since their distances are
less meaningful.`,
	Args: cobra.ExactArgs(1),
	RunE: runDupes,
}

func init() {
	dupesCmd.Flags().IntVar(&dupesMaxDistance, "max-distance", 31, "maximum Hamming distance to report")
	rootCmd.AddCommand(dupesCmd)
}

// pair is one reported near-duplicate match.
type pair struct {
	a, b     string
	distance int
	exact    bool
	lowQual  bool
}

// buildPairs compares every pair of fingerprints in the manifest and
// returns the matches within maxDistance, sorted by distance and then
// by key so the report is stable across runs.
func buildPairs(m *manifest.Manifest, maxDistance int) ([]pair, error) {
	type parsed struct {
		key     string
		hash    pdq.Hash256
		content string
		lowQual bool
	}
	var entries []parsed
	for key, e := range m.Entries {
		h, err := pdq.FromHex(e.PDQ)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", key, err)
		}
		entries = append(entries, parsed{
			key:     key,
			hash:    h,
			content: e.ContentHash,
			lowQual: e.Quality < manifest.LowQualityThreshold,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	var pairs []pair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			d := entries[i].hash.HammingDistance(entries[j].hash)
			if d > maxDistance {
				continue
			}
			pairs = append(pairs, pair{
				a:        entries[i].key,
				b:        entries[j].key,
				distance: d,
				exact:    entries[i].content == entries[j].content,
				lowQual:  entries[i].lowQual || entries[j].lowQual,
			})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].distance != pairs[j].distance {
			return pairs[i].distance < pairs[j].distance
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	return pairs, nil
}

func runDupes(_ *cobra.Command, args []string) error {
	m, err := manifest.ReadJSON(args[0])
	if err != nil {
		return err
	}

	pairs, err := buildPairs(m, dupesMaxDistance)
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		fmt.Printf("no pairs within distance %d (%d files compared)\n",
			dupesMaxDistance, len(m.Entries))
		return nil
	}

	for _, p := range pairs {
		marker := ""
		if p.exact {
			marker = "  [identical bytes]"
		} else if p.lowQual {
			marker = "  [low quality]"
		}
		fmt.Printf("%3d  %s  ~  %s%s\n", p.distance, p.a, p.b, marker)
	}
	fmt.Printf("\n%d pair(s) within distance %d (%d files compared)\n",
		len(pairs), dupesMaxDistance, len(m.Entries))
	return nil
}
