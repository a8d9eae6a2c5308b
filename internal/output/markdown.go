package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/buemura/webscan/internal/report"
	"github.com/buemura/webscan/pkg/types"
)

// MarkdownFormatter renders the full report as a Markdown document suitable
// for docs, issues, or archival.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, r *report.Report) error {
	fmt.Fprintln(w, "# Web Application Security Assessment")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "| | |\n|---|---|\n")
	fmt.Fprintf(w, "| **Target** | %s |\n", escapeMarkdown(r.Target))
	fmt.Fprintf(w, "| **Date** | %s |\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "| **Status** | %s |\n", r.Status)
	fmt.Fprintf(w, "| **Scan type** | %s |\n", r.ScanType)
	fmt.Fprintf(w, "| **Overall risk** | **%s** |\n", r.OverallRisk)
	fmt.Fprintln(w)

	if len(r.Limitations) > 0 {
		fmt.Fprintln(w, "## Assessment Limitations")
		fmt.Fprintln(w)
		for _, line := range r.Limitations {
			fmt.Fprintf(w, "- %s\n", line)
		}
		fmt.Fprintln(w)
	}

	if r.ReconSummary != "" {
		fmt.Fprintln(w, "## Reconnaissance Summary")
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.ReconSummary)
		fmt.Fprintln(w)
	}

	if r.SourceSummary != "" {
		fmt.Fprintln(w, "## Source Code Summary")
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.SourceSummary)
		fmt.Fprintln(w)
	}

	writeRiskDistribution(w, r)

	if r.Coverage != nil {
		fmt.Fprintln(w, "## Scan Coverage")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Metric | Count |")
		fmt.Fprintln(w, "|--------|-------|")
		fmt.Fprintf(w, "| Pages crawled | %d |\n", r.Coverage.PagesCrawled)
		fmt.Fprintf(w, "| Paths probed | %d |\n", r.Coverage.PathsProbed)
		fmt.Fprintf(w, "| Forms tested | %d |\n", r.Coverage.FormsTested)
		fmt.Fprintf(w, "| Payloads sent | %d |\n", r.Coverage.PayloadsSent)
		fmt.Fprintf(w, "| Methods probed | %d |\n", r.Coverage.MethodsProbed)
		fmt.Fprintln(w)
	}

	writeFindings(w, r)
	writeMethodology(w, r)

	return nil
}

func writeRiskDistribution(w io.Writer, r *report.Report) {
	fmt.Fprintln(w, "## Risk Distribution")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Severity | Count | % | |")
	fmt.Fprintln(w, "|----------|-------|---|---|")
	for _, row := range r.Counts {
		fmt.Fprintf(w, "| %s | %d | %.1f%% | `%s` |\n",
			row.Severity, row.Count, row.Percent, riskBar(row.BarUnits))
	}
	fmt.Fprintln(w)
}

// riskBar renders a fixed-width proportional bar.
func riskBar(units int) string {
	if units < 0 {
		units = 0
	}
	if units > 30 {
		units = 30
	}
	return strings.Repeat("█", units) + strings.Repeat("░", 30-units)
}

func writeFindings(w io.Writer, r *report.Report) {
	fmt.Fprintln(w, "## Findings")
	fmt.Fprintln(w)

	if len(r.Findings) == 0 {
		fmt.Fprintln(w, "_No findings._")
		fmt.Fprintln(w)
		return
	}

	for i, f := range r.Findings {
		fmt.Fprintf(w, "### %d. %s\n\n", i+1, escapeMarkdown(f.Title))
		fmt.Fprintf(w, "**Severity:** %s", f.Severity)
		if f.OWASPCategory != "" {
			fmt.Fprintf(w, " | **OWASP:** %s", f.OWASPCategory)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w)
		if f.Location != "" {
			fmt.Fprintf(w, "**Location:** `%s`\n\n", f.Location)
		}
		if f.Description != "" {
			fmt.Fprintf(w, "%s\n\n", f.Description)
		}
		if f.Evidence != "" {
			fmt.Fprintf(w, "**Evidence:** %s\n\n", escapeMarkdown(f.Evidence))
		}
		if f.Snapshot != nil {
			writeSnapshot(w, f.Snapshot)
		}
		if f.Remediation != "" {
			fmt.Fprintf(w, "**Remediation:** %s\n\n", f.Remediation)
		}
	}
}

// writeSnapshot renders an evidence snapshot according to its kind tag.
func writeSnapshot(w io.Writer, s *types.EvidenceSnapshot) {
	switch s.Kind {
	case types.EvidenceHTTPResponse:
		fmt.Fprintf(w, "```\n%s\nHTTP %d\n\n%s\n```\n\n", s.Request, s.Status, s.BodySnippet)
	case types.EvidenceExposedPath:
		fmt.Fprintf(w, "```\n%s\nHTTP %d\n", s.Request, s.Status)
		for name, value := range s.Headers {
			fmt.Fprintf(w, "%s: %s\n", name, value)
		}
		if s.BodySnippet != "" {
			fmt.Fprintf(w, "\n%s\n", s.BodySnippet)
		}
		fmt.Fprint(w, "```\n\n")
	case types.EvidenceHTTPHeaders:
		fmt.Fprint(w, "```\n")
		for name, value := range s.Headers {
			fmt.Fprintf(w, "%s: %s\n", name, value)
		}
		fmt.Fprint(w, "```\n\n")
	default:
		if s.Label != "" {
			fmt.Fprintf(w, "```\n%s: %s\n```\n\n", s.Label, s.Raw)
		} else {
			fmt.Fprintf(w, "```\n%s\n```\n\n", s.Raw)
		}
	}
}

func writeMethodology(w io.Writer, r *report.Report) {
	fmt.Fprintln(w, "## Methodology")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Phase | Name | Description |")
	fmt.Fprintln(w, "|-------|------|-------------|")
	for _, p := range r.Methodology {
		fmt.Fprintf(w, "| %d | %s | %s |\n", p.Number, p.Name, p.Description)
	}
	fmt.Fprintln(w)
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
