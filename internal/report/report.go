// Package report assembles scanner output into a single renderable document
// and recovers findings from unstructured analyst text.
package report

import (
	"sort"
	"time"

	"github.com/buemura/webscan/pkg/types"
)

// Status describes whether the assessment ran to completion.
type Status string

const (
	StatusCompleted    Status = "COMPLETED"
	StatusInconclusive Status = "INCONCLUSIVE"
)

// RiskLevel is the aggregated risk verdict for the whole assessment.
type RiskLevel string

const (
	RiskCritical     RiskLevel = "CRITICAL"
	RiskHigh         RiskLevel = "HIGH"
	RiskMedium       RiskLevel = "MEDIUM"
	RiskLow          RiskLevel = "LOW"
	RiskPass         RiskLevel = "PASS"
	RiskInconclusive RiskLevel = "INCONCLUSIVE"
)

// riskBarScale is the total width of the risk-distribution bar.
const riskBarScale = 30

// Coverage holds the scan-coverage counters shown in the report header.
type Coverage struct {
	PagesCrawled  int `json:"pages_crawled"`
	PathsProbed   int `json:"paths_probed"`
	FormsTested   int `json:"forms_tested"`
	PayloadsSent  int `json:"payloads_sent"`
	MethodsProbed int `json:"methods_probed"`
}

// SeverityCount is one row of the risk-distribution table.
type SeverityCount struct {
	Severity types.Severity `json:"severity"`
	Count    int            `json:"count"`
	Percent  float64        `json:"percent"`
	BarUnits int            `json:"bar_units"`
}

// Phase is one row of the fixed methodology table.
type Phase struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Report is the structured assessment document. Renderers (markdown, JSON,
// HTML, terminal table) consume it without re-deriving anything.
type Report struct {
	Target        string          `json:"target"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Status        Status          `json:"status"`
	ScanType      string          `json:"scan_type"`
	OverallRisk   RiskLevel       `json:"overall_risk"`
	Findings      []types.Finding `json:"findings"`
	Counts        []SeverityCount `json:"severity_counts"`
	TotalFindings int             `json:"total_findings"`
	Coverage      *Coverage       `json:"coverage,omitempty"`
	ReconSummary  string          `json:"recon_summary,omitempty"`
	SourceSummary string          `json:"source_summary,omitempty"`
	ReconError    string          `json:"recon_error,omitempty"`
	Limitations   []string        `json:"limitations,omitempty"`
	Methodology   []Phase         `json:"methodology"`
}

// BuildOptions carries everything besides the findings themselves.
type BuildOptions struct {
	Status        Status
	ReconError    string
	ReconSummary  string
	SourceSummary string
	Coverage      *Coverage
}

// Build assembles the report: sorts findings most severe first, computes the
// severity distribution, and derives the overall risk verdict. Findings are
// copied before sorting so callers keep their slices untouched.
func Build(target string, findings []types.Finding, opts BuildOptions) *Report {
	sorted := make([]types.Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return types.SeverityRank(sorted[i].Severity) < types.SeverityRank(sorted[j].Severity)
	})

	status := opts.Status
	if status == "" {
		status = StatusCompleted
	}

	scanType := "Black-box web application scan"
	if opts.SourceSummary != "" {
		scanType = "Code-assisted web application scan"
	}

	r := &Report{
		Target:        target,
		GeneratedAt:   time.Now(),
		Status:        status,
		ScanType:      scanType,
		Findings:      sorted,
		Counts:        severityCounts(sorted),
		TotalFindings: len(sorted),
		Coverage:      opts.Coverage,
		ReconSummary:  opts.ReconSummary,
		SourceSummary: opts.SourceSummary,
		ReconError:    opts.ReconError,
		Methodology:   Methodology(),
	}

	r.OverallRisk = overallRisk(status, r.Counts)

	if status == StatusInconclusive {
		r.Limitations = limitations(opts.ReconError)
		// Network-dependent sections are meaningless without recon.
		r.Coverage = nil
	}

	return r
}

// overallRisk applies the priority cascade. An inconclusive assessment always
// overrides the severity-derived verdict.
func overallRisk(status Status, counts []SeverityCount) RiskLevel {
	if status == StatusInconclusive {
		return RiskInconclusive
	}
	bySeverity := make(map[types.Severity]int, len(counts))
	for _, c := range counts {
		bySeverity[c.Severity] = c.Count
	}
	switch {
	case bySeverity[types.SeverityCritical] > 0:
		return RiskCritical
	case bySeverity[types.SeverityHigh] > 0:
		return RiskHigh
	case bySeverity[types.SeverityMedium] > 0:
		return RiskMedium
	case bySeverity[types.SeverityLow] > 0:
		return RiskLow
	default:
		return RiskPass
	}
}

// severityCounts builds the distribution table, one row per severity level in
// rank order, with percentage and a proportional share of the 30-unit bar.
func severityCounts(findings []types.Finding) []SeverityCount {
	order := []types.Severity{
		types.SeverityCritical,
		types.SeverityHigh,
		types.SeverityMedium,
		types.SeverityLow,
		types.SeverityInfo,
	}

	tally := make(map[types.Severity]int)
	for _, f := range findings {
		tally[f.Severity]++
	}

	total := len(findings)
	counts := make([]SeverityCount, 0, len(order))
	for _, sev := range order {
		row := SeverityCount{Severity: sev, Count: tally[sev]}
		if total > 0 {
			row.Percent = float64(row.Count) / float64(total) * 100
			row.BarUnits = (row.Count*riskBarScale + total/2) / total
		}
		counts = append(counts, row)
	}
	return counts
}

// limitations explains why the assessment is inconclusive and what to try
// next. Rendered as a dedicated section ahead of everything else.
func limitations(reconError string) []string {
	lines := []string{
		"Reconnaissance against the target failed, so no network-dependent checks could run.",
	}
	if reconError != "" {
		lines = append(lines, "Recon error: "+reconError)
	}
	lines = append(lines,
		"No conclusion about the target's security posture can be drawn from this run.",
		"Verify the target URL is reachable from the scanning host and re-run the assessment.",
		"If the target sits behind an allow-list or WAF, add the scanner's address before retrying.",
	)
	return lines
}

// Methodology returns the fixed nine-phase scan methodology table.
func Methodology() []Phase {
	return []Phase{
		{1, "Scope validation", "Target URL is validated and checked against the SSRF guard before any traffic is sent."},
		{2, "Reconnaissance", "Homepage fetch, server banner and technology identification."},
		{3, "Path discovery", "robots.txt parsing plus a curated catalog of sensitive paths."},
		{4, "Path probing", "Each candidate path is requested and classified as exposed, gated, or absent."},
		{5, "Form enumeration", "Input forms are collected and filtered to testable inputs."},
		{6, "Injection probing", "XSS and SQL injection payloads are submitted per testable input."},
		{7, "Configuration review", "Security headers and TLS configuration are inspected."},
		{8, "Vulnerability matching", "Detected product versions are checked against known CVEs."},
		{9, "Reporting", "Findings are aggregated, classified by OWASP category, and rendered."},
	}
}
