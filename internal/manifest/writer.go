package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest for the given scan root.
func New(root string) *Manifest {
	return &Manifest{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Root:        root,
		Entries:     make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from the entries.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalFiles = len(m.Entries)
	for _, e := range m.Entries {
		s.TotalBytes += e.Size
		if e.Quality < LowQualityThreshold {
			s.LowQuality++
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads and parses a manifest file.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
