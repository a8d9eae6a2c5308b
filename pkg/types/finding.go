package types

import "strings"

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// SeverityRank returns a numeric rank for sorting (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}

// ParseSeverity normalizes a free-text severity label ("High", "critical")
// into a Severity. Unrecognized labels default to INFO.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityCritical:
		return SeverityCritical
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	case SeverityLow:
		return SeverityLow
	case SeverityInfo, "INFORMATIONAL":
		return SeverityInfo
	default:
		return SeverityInfo
	}
}

// Finding is a single reported security observation. Findings are created by
// exactly one scanner and never mutated afterward; the report builder only
// aggregates them.
type Finding struct {
	Title         string            `json:"title"`
	Severity      Severity          `json:"severity"`
	OWASPCategory string            `json:"owasp_category,omitempty"`
	Location      string            `json:"location,omitempty"`
	Description   string            `json:"description"`
	Evidence      string            `json:"evidence,omitempty"`
	Snapshot      *EvidenceSnapshot `json:"evidence_snapshot,omitempty"`
	Remediation   string            `json:"remediation,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}
