package manifest

// Manifest is the JSON index a scan produces: one fingerprint entry per
// image file under the scanned root.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Root        string           `json:"root"`
	Entries     map[string]Entry `json:"entries"`
	Stats       Stats            `json:"stats"`
}

// Entry records one scanned image.
type Entry struct {
	Path        string `json:"path"`   // relative to root
	Format      string `json:"format"` // decoded format name
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"`         // bytes on disk
	ContentHash string `json:"content_hash"` // xxhash64, 16 hex chars
	PDQ         string `json:"pdq"`          // 256-bit fingerprint, 64 hex chars
	Quality     int    `json:"quality"`      // 0-100
}

// Stats aggregates scan metrics.
type Stats struct {
	TotalFiles int   `json:"total_files"`
	TotalBytes int64 `json:"total_bytes"`
	LowQuality int   `json:"low_quality"` // entries below LowQualityThreshold
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// LowQualityThreshold marks fingerprints with too little image
// structure to be reliable for matching.
const LowQualityThreshold = 50
