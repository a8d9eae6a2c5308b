package types

import "time"

// ScanStats holds per-scanner coverage counters. Each scanner fills only the
// counters that apply to it; zero values are omitted from JSON.
type ScanStats struct {
	PathsChecked        int           `json:"paths_checked,omitempty"`
	AccessibleFound     int           `json:"accessible_found,omitempty"`
	FormsTested         int           `json:"forms_tested,omitempty"`
	PayloadsSent        int           `json:"payloads_sent,omitempty"`
	TechnologiesChecked int           `json:"technologies_checked,omitempty"`
	Elapsed             time.Duration `json:"time_elapsed"`
}

// Merge adds another stats block counter-by-counter. Elapsed takes the max,
// since scanners run concurrently under the runner.
func (s ScanStats) Merge(other ScanStats) ScanStats {
	s.PathsChecked += other.PathsChecked
	s.AccessibleFound += other.AccessibleFound
	s.FormsTested += other.FormsTested
	s.PayloadsSent += other.PayloadsSent
	s.TechnologiesChecked += other.TechnologiesChecked
	if other.Elapsed > s.Elapsed {
		s.Elapsed = other.Elapsed
	}
	return s
}

// ScanResult is the output of a single scanner run. It is transient: created
// per invocation, handed to the report builder, never persisted by the engine.
type ScanResult struct {
	ScannerName string    `json:"scanner_name"`
	Target      Target    `json:"target"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Findings    []Finding `json:"findings"`
	Stats       ScanStats `json:"stats"`
	// Errors collects per-probe diagnostics (budget exhaustion, skipped
	// candidates). A failed probe never aborts the scan.
	Errors []string `json:"errors,omitempty"`
	// Error is set only when the scanner could not run at all.
	Error string `json:"error,omitempty"`
}
