package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/buemura/webscan/internal/report"
	"github.com/buemura/webscan/pkg/types"
)

// HTMLFormatter renders the report as a self-contained HTML document with
// styled severity badges and expandable finding details.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, r *report.Report) error {
	return htmlTpl.Execute(w, r)
}

// severityClass maps a Severity to a CSS class name.
func severityClass(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return "critical"
	case types.SeverityHigh:
		return "high"
	case types.SeverityMedium:
		return "medium"
	case types.SeverityLow:
		return "low"
	default:
		return "info"
	}
}

func riskClass(r report.RiskLevel) string {
	switch r {
	case report.RiskCritical:
		return "critical"
	case report.RiskHigh:
		return "high"
	case report.RiskMedium:
		return "medium"
	case report.RiskLow:
		return "low"
	case report.RiskInconclusive:
		return "inconclusive"
	default:
		return "pass"
	}
}

var funcMap = template.FuncMap{
	"severityClass": severityClass,
	"riskClass":     riskClass,
	"riskBar":       riskBar,
	"inc":           func(i int) int { return i + 1 },
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Security Assessment — {{.Target}}</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>Web Application Security Assessment</h1>

  <table class="header-table">
    <tr><th>Target</th><td>{{.Target}}</td></tr>
    <tr><th>Date</th><td>{{.GeneratedAt.Format "2006-01-02 15:04 MST"}}</td></tr>
    <tr><th>Status</th><td>{{.Status}}</td></tr>
    <tr><th>Scan type</th><td>{{.ScanType}}</td></tr>
    <tr><th>Overall risk</th><td><span class="badge {{riskClass .OverallRisk}}">{{.OverallRisk}}</span></td></tr>
  </table>

  {{if .Limitations}}
  <section>
    <h2>Assessment Limitations</h2>
    <div class="error-box">
      <ul>{{range .Limitations}}<li>{{.}}</li>{{end}}</ul>
    </div>
  </section>
  {{end}}

  <section>
    <h2>Risk Distribution</h2>
    <table>
      <thead><tr><th>Severity</th><th>Count</th><th>%%</th><th></th></tr></thead>
      <tbody>
        {{range .Counts}}
        <tr>
          <td><span class="badge {{severityClass .Severity}}">{{.Severity}}</span></td>
          <td>{{.Count}}</td>
          <td>{{printf "%%.1f" .Percent}}%%</td>
          <td class="bar">{{riskBar .BarUnits}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </section>

  {{if .Coverage}}
  <section>
    <h2>Scan Coverage</h2>
    <table>
      <tbody>
        <tr><th>Pages crawled</th><td>{{.Coverage.PagesCrawled}}</td></tr>
        <tr><th>Paths probed</th><td>{{.Coverage.PathsProbed}}</td></tr>
        <tr><th>Forms tested</th><td>{{.Coverage.FormsTested}}</td></tr>
        <tr><th>Payloads sent</th><td>{{.Coverage.PayloadsSent}}</td></tr>
        <tr><th>Methods probed</th><td>{{.Coverage.MethodsProbed}}</td></tr>
      </tbody>
    </table>
  </section>
  {{end}}

  <section>
    <h2>Findings</h2>
    {{if not .Findings}}
      <p class="no-findings">No findings.</p>
    {{else}}
      {{range $i, $f := .Findings}}
      <div class="finding">
        <h3>{{inc $i}}. {{$f.Title}}</h3>
        <p>
          <span class="badge {{severityClass $f.Severity}}">{{$f.Severity}}</span>
          {{if $f.OWASPCategory}}<span class="owasp">{{$f.OWASPCategory}}</span>{{end}}
        </p>
        {{if $f.Location}}<p class="location"><code>{{$f.Location}}</code></p>{{end}}
        {{if $f.Description}}<p>{{$f.Description}}</p>{{end}}
        {{if or $f.Evidence $f.Snapshot $f.Remediation}}
        <details>
          <summary>Details</summary>
          {{if $f.Evidence}}<p><strong>Evidence:</strong> {{$f.Evidence}}</p>{{end}}
          {{with $f.Snapshot}}
          <pre class="snapshot">{{if .Request}}{{.Request}}
{{end}}{{if .Status}}HTTP {{.Status}}
{{end}}{{range $name, $value := .Headers}}{{$name}}: {{$value}}
{{end}}{{if .BodySnippet}}{{.BodySnippet}}{{end}}{{if .Raw}}{{.Raw}}{{end}}</pre>
          {{end}}
          {{if $f.Remediation}}<p><strong>Remediation:</strong> {{$f.Remediation}}</p>{{end}}
        </details>
        {{end}}
      </div>
      {{end}}
    {{end}}
  </section>

  <section>
    <h2>Methodology</h2>
    <table>
      <thead><tr><th>Phase</th><th>Name</th><th>Description</th></tr></thead>
      <tbody>
        {{range .Methodology}}
        <tr><td>{{.Number}}</td><td>{{.Name}}</td><td>{{.Description}}</td></tr>
        {{end}}
      </tbody>
    </table>
  </section>
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:960px;margin:0 auto}
h1{margin-bottom:1rem;font-size:1.8rem}
h2{margin:1.5rem 0 .75rem;font-size:1.3rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem}
h3{margin:.75rem 0 .4rem;font-size:1.05rem}
.header-table th{text-align:left;padding-right:1rem;color:#555}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.critical{background:#d32f2f}
.badge.high{background:#e53935}
.badge.medium{background:#f9a825;color:#333}
.badge.low{background:#0288d1}
.badge.info{background:#757575}
.badge.pass{background:#2e7d32}
.badge.inconclusive{background:#6a1b9a}
.owasp{margin-left:.5rem;font-size:.85rem;color:#555;font-weight:600}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
td.bar{font-family:monospace;letter-spacing:-1px;color:#e53935}
details{margin-top:.4rem}
summary{cursor:pointer;color:#1565c0;font-size:.85rem}
pre.snapshot{background:#1a1a2e;color:#e0e0e0;padding:.75rem;border-radius:6px;overflow-x:auto;font-size:.8rem;margin:.5rem 0}
.location code{background:#eaeaea;padding:2px 6px;border-radius:4px;font-size:.85rem}
.error-box{background:#ffebee;color:#c62828;padding:.75rem 1rem;border-radius:6px;margin-bottom:1rem}
.error-box ul{margin-left:1.2rem}
.no-findings{color:#666;font-style:italic}
.finding{margin-bottom:1.25rem;padding-bottom:.75rem;border-bottom:1px solid #ececec}
`
