package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/webscan/internal/report"
	"github.com/buemura/webscan/pkg/types"
)

// resetFlags restores every flag on the command tree to its default so
// values set by one test's Execute call do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func executeCmd(args ...string) (string, error) {
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	// Capture stdout for commands that write to os.Stdout.
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := rootCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	var captured bytes.Buffer
	captured.ReadFrom(r)

	output := buf.String() + captured.String()
	return output, err
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCmd("version")
	require.NoError(t, err)
	assert.Contains(t, output, "webscan version")
}

func TestScanPathsMissingTarget(t *testing.T) {
	_, err := executeCmd("scan", "paths")
	assert.Error(t, err)
}

func TestScanInjectRequiresForms(t *testing.T) {
	_, err := executeCmd("scan", "inject", "-t", "https://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--forms")
}

func TestScanHelpListsSubcommands(t *testing.T) {
	output, err := executeCmd("scan", "--help")
	require.NoError(t, err)
	for _, name := range []string{"paths", "inject", "cve", "headers", "tls"} {
		assert.Contains(t, output, name)
	}
}

func TestOWASPChecklist(t *testing.T) {
	output, err := executeCmd("owasp")
	require.NoError(t, err)
	assert.Contains(t, output, "OWASP Top 10 (2021)")
	assert.Contains(t, output, "A01:2021")
	assert.Contains(t, output, "A10:2021")
	assert.Contains(t, output, "Injection")
}

func TestReportRequiresInput(t *testing.T) {
	_, err := executeCmd("report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--results or --analysis")
}

func TestReportFromAnalysisFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.txt")
	content := `### FINDING: Reflected XSS in search
**Severity:** High
**Location:** /search?q=
**Description:** Input reflected without encoding.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	output, err := executeCmd("report", "--analysis", path, "-t", "https://example.com", "-o", "markdown")
	require.NoError(t, err)

	assert.Contains(t, output, "Reflected XSS in search")
	assert.Contains(t, output, "HIGH")
	assert.Contains(t, output, "A03:2021")
	assert.Contains(t, output, "## Methodology")
}

func TestReportFromSavedResults(t *testing.T) {
	saved := report.Build("https://example.com", []types.Finding{
		{Title: "Exposed path: /.env", Severity: types.SeverityHigh, OWASPCategory: "A05:2021"},
	}, report.BuildOptions{
		Coverage: &report.Coverage{PathsProbed: 53},
	})

	data, err := json.Marshal(saved)
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	output, err := executeCmd("report", "--results", path, "-o", "json")
	require.NoError(t, err)

	var rebuilt report.Report
	require.NoError(t, json.Unmarshal([]byte(output), &rebuilt))
	assert.Equal(t, "https://example.com", rebuilt.Target)
	assert.Equal(t, report.RiskHigh, rebuilt.OverallRisk)
	require.Len(t, rebuilt.Findings, 1)
	require.NotNil(t, rebuilt.Coverage)
	assert.Equal(t, 53, rebuilt.Coverage.PathsProbed)
}

func TestReportMergesResultsAndAnalysis(t *testing.T) {
	dir := t.TempDir()

	saved := report.Build("https://example.com", []types.Finding{
		{Title: "Missing CSP", Severity: types.SeverityMedium},
	}, report.BuildOptions{})
	data, err := json.Marshal(saved)
	require.NoError(t, err)

	resultsPath := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(resultsPath, data, 0o644))

	analysisPath := filepath.Join(dir, "analysis.txt")
	analysis := "### FINDING: SQL injection in login\n**Severity:** Critical\n"
	require.NoError(t, os.WriteFile(analysisPath, []byte(analysis), 0o644))

	output, err := executeCmd("report", "--results", resultsPath, "--analysis", analysisPath, "-o", "json")
	require.NoError(t, err)

	var rebuilt report.Report
	require.NoError(t, json.Unmarshal([]byte(output), &rebuilt))
	require.Len(t, rebuilt.Findings, 2)
	// Analyst finding sorts first as the more severe.
	assert.Equal(t, "SQL injection in login", rebuilt.Findings[0].Title)
	assert.Equal(t, report.RiskCritical, rebuilt.OverallRisk)
}

func TestUnknownOutputFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.txt")
	require.NoError(t, os.WriteFile(path, []byte("### FINDING: x\n"), 0o644))

	_, err := executeCmd("report", "--analysis", path, "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestFullUnknownProfile(t *testing.T) {
	_, err := executeCmd("full", "--target", "example.com", "--profile", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in config")
}
