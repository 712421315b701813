package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty report with defaults.
func New(profileName string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		Entries:     make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries. Failed is
// kept as set by the caller.
func (r *Report) ComputeStats() {
	s := Stats{Failed: r.Stats.Failed}
	s.TotalEntries = len(r.Entries)
	for _, e := range r.Entries {
		s.TotalInputBytes += e.InputSize
		s.TotalOutputBytes += e.Size
		s.TotalBlurMicros += e.BlurMicros
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file with stable ordering.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report written by WriteJSON.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
