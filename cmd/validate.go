package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Raudbjorn/pdq-go/internal/manifest"
	"github.com/Raudbjorn/pdq-go/pdq"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Validate a manifest and check referenced files exist",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	m, err := manifest.ReadJSON(args[0])
	if err != nil {
		return err
	}

	errors := validateManifest(m)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d entries — all fingerprints well-formed, all files present\n",
			m.Stats.TotalFiles)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest) []string {
	var errs []string

	if m.Version != manifest.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	for key, e := range m.Entries {
		if e.Width <= 0 || e.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid dimensions %dx%d",
				key, e.Width, e.Height))
		}
		if _, err := pdq.FromHex(e.PDQ); err != nil {
			errs = append(errs, fmt.Sprintf("entry %q: bad fingerprint: %v", key, err))
		}
		if e.Quality < 0 || e.Quality > 100 {
			errs = append(errs, fmt.Sprintf("entry %q: quality %d out of range", key, e.Quality))
		}
		if len(e.ContentHash) != 16 {
			errs = append(errs, fmt.Sprintf("entry %q: content hash %q not 16 hex chars",
				key, e.ContentHash))
		}
		if m.Root != "" {
			if _, err := os.Stat(filepath.Join(m.Root, filepath.FromSlash(e.Path))); err != nil {
				errs = append(errs, fmt.Sprintf("entry %q: file missing: %v", key, err))
			}
		}
	}
	return errs
}
