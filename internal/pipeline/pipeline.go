// Package pipeline batch-fingerprints directory trees of images into a
// manifest.  It owns discovery and parallelism; the numeric work lives
// in the pdq package.
package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/Raudbjorn/pdq-go/internal/manifest"
)

// Config holds all parameters for a scan run.
type Config struct {
	InputDir string
	Workers  int
	Verbose  bool
}

// Pipeline orchestrates scanning and fingerprinting.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Pipeline{cfg: cfg}
}

// Run scans the input directory, fingerprints every image in parallel,
// and returns the manifest.  Individual file failures are reported on
// stderr; the run fails only when nothing could be processed.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[pdq] found %d images\n", len(sources))
	}

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = processImage(s)

			if p.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[pdq] %s  q=%d  %s\n",
					results[idx].entry.PDQ, results[idx].entry.Quality, s.RelPath)
			}
		}(i, src)
	}
	wg.Wait()

	m := manifest.New(p.cfg.InputDir)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Entries[r.key] = r.entry
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[pdq] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[pdq] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.ComputeStats()
	return m, nil
}
