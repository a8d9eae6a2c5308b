package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/buemura/webscan/internal/report"
	"github.com/buemura/webscan/pkg/types"
)

// TableFormatter renders the report as a colored terminal summary.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, r *report.Report) error {
	fmt.Fprintf(w, "\nTarget:       %s\n", r.Target)
	fmt.Fprintf(w, "Date:         %s\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(w, "Status:       %s\n", r.Status)
	fmt.Fprintf(w, "Scan type:    %s\n", r.ScanType)
	fmt.Fprintf(w, "Overall risk: %s\n\n", colorRisk(r.OverallRisk))

	if len(r.Limitations) > 0 {
		fmt.Fprintln(w, color.YellowString("Assessment Limitations"))
		for _, line := range r.Limitations {
			fmt.Fprintf(w, "  - %s\n", line)
		}
		fmt.Fprintln(w)
	}

	distribution := tablewriter.NewWriter(w)
	distribution.SetHeader([]string{"Severity", "Count", "%"})
	distribution.SetBorder(false)
	distribution.SetColumnSeparator("│")
	for _, row := range r.Counts {
		distribution.Append([]string{
			colorSeverity(row.Severity),
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.1f%%", row.Percent),
		})
	}
	distribution.Render()
	fmt.Fprintln(w)

	if r.Coverage != nil {
		fmt.Fprintf(w, "Coverage: %d paths probed, %d forms tested, %d payloads sent\n\n",
			r.Coverage.PathsProbed, r.Coverage.FormsTested, r.Coverage.PayloadsSent)
	}

	if len(r.Findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Severity", "OWASP", "Title", "Location"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, finding := range r.Findings {
		table.Append([]string{
			colorSeverity(finding.Severity),
			finding.OWASPCategory,
			finding.Title,
			finding.Location,
		})
	}
	table.Render()

	fmt.Fprintf(w, "\n%d findings total.\n", r.TotalFindings)
	return nil
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return color.RedString("CRITICAL")
	case types.SeverityHigh:
		return color.RedString("HIGH")
	case types.SeverityMedium:
		return color.YellowString("MEDIUM")
	case types.SeverityLow:
		return color.CyanString("LOW")
	case types.SeverityInfo:
		return color.WhiteString("INFO")
	default:
		return string(s)
	}
}

func colorRisk(r report.RiskLevel) string {
	switch r {
	case report.RiskCritical, report.RiskHigh:
		return color.RedString(string(r))
	case report.RiskMedium:
		return color.YellowString(string(r))
	case report.RiskLow:
		return color.CyanString(string(r))
	case report.RiskInconclusive:
		return color.MagentaString(string(r))
	default:
		return color.GreenString(string(r))
	}
}
