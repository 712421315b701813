package report

// Report is the top-level output of a stackblur run.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	Radius      int              `json:"radius"`
	Downscale   int              `json:"downscale"`
	Alpha       bool             `json:"alpha"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Entries     map[string]Entry `json:"entries"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run-time parameters for diagnostics.
type BuildInfo struct {
	Workers       int `json:"workers"`
	PeakScratchKB int `json:"peak_scratch_kb"` // largest engine scratch footprint seen
}

// Entry describes one blurred source image.
type Entry struct {
	Source     string `json:"source"` // relative to the input directory
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	InputSize  int64  `json:"input_size"`
	Format     string `json:"format"` // "png", "jpeg"
	Size       int64  `json:"size"`   // bytes on disk
	Hash       string `json:"hash"`   // first 16 hex chars of xxhash64 of the file
	PixelHash  string `json:"pixel_hash"`
	Path       string `json:"path"` // relative to the report
	BlurMicros int64  `json:"blur_us"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalEntries     int   `json:"total_entries"`
	TotalBlurMicros  int64 `json:"total_blur_us"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// FileName is the report name inside an output directory.
const FileName = "stackblur.report.json"
