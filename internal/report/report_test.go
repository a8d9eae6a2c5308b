package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/webscan/pkg/types"
)

func TestBuild_SortsBySeverity(t *testing.T) {
	findings := []types.Finding{
		{Title: "low", Severity: types.SeverityLow},
		{Title: "crit", Severity: types.SeverityCritical},
		{Title: "info", Severity: types.SeverityInfo},
		{Title: "high", Severity: types.SeverityHigh},
		{Title: "med", Severity: types.SeverityMedium},
	}

	r := Build("https://example.com", findings, BuildOptions{})

	var titles []string
	for _, f := range r.Findings {
		titles = append(titles, f.Title)
	}
	assert.Equal(t, []string{"crit", "high", "med", "low", "info"}, titles)

	// The caller's slice is untouched.
	assert.Equal(t, "low", findings[0].Title)
}

func TestBuild_SortIsStable(t *testing.T) {
	findings := []types.Finding{
		{Title: "first high", Severity: types.SeverityHigh},
		{Title: "second high", Severity: types.SeverityHigh},
	}

	r := Build("https://example.com", findings, BuildOptions{})
	assert.Equal(t, "first high", r.Findings[0].Title)
	assert.Equal(t, "second high", r.Findings[1].Title)
}

func TestBuild_OverallRiskCascade(t *testing.T) {
	cases := []struct {
		name     string
		findings []types.Finding
		want     RiskLevel
	}{
		{"critical wins", []types.Finding{
			{Severity: types.SeverityCritical}, {Severity: types.SeverityLow},
		}, RiskCritical},
		{"high", []types.Finding{
			{Severity: types.SeverityHigh}, {Severity: types.SeverityLow},
		}, RiskHigh},
		{"medium", []types.Finding{{Severity: types.SeverityMedium}}, RiskMedium},
		{"low", []types.Finding{{Severity: types.SeverityLow}}, RiskLow},
		{"info only passes", []types.Finding{{Severity: types.SeverityInfo}}, RiskPass},
		{"empty passes", nil, RiskPass},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Build("https://example.com", tc.findings, BuildOptions{})
			assert.Equal(t, tc.want, r.OverallRisk)
		})
	}
}

func TestBuild_InconclusiveOverridesFindings(t *testing.T) {
	findings := []types.Finding{{Severity: types.SeverityCritical}}

	r := Build("https://example.com", findings, BuildOptions{
		Status:     StatusInconclusive,
		ReconError: "connection refused",
		Coverage:   &Coverage{PathsProbed: 10},
	})

	assert.Equal(t, RiskInconclusive, r.OverallRisk)
	assert.Equal(t, StatusInconclusive, r.Status)
	require.NotEmpty(t, r.Limitations)
	assert.Contains(t, r.Limitations[1], "connection refused")
	// Network-dependent sections are dropped.
	assert.Nil(t, r.Coverage)
}

func TestBuild_SeverityCounts(t *testing.T) {
	findings := []types.Finding{
		{Severity: types.SeverityCritical},
		{Severity: types.SeverityHigh},
		{Severity: types.SeverityHigh},
		{Severity: types.SeverityLow},
	}

	r := Build("https://example.com", findings, BuildOptions{})

	require.Len(t, r.Counts, 5)
	assert.Equal(t, types.SeverityCritical, r.Counts[0].Severity)
	assert.Equal(t, 1, r.Counts[0].Count)
	assert.Equal(t, 2, r.Counts[1].Count)
	assert.InDelta(t, 50.0, r.Counts[1].Percent, 0.01)
	assert.Equal(t, 15, r.Counts[1].BarUnits)
	assert.Equal(t, 0, r.Counts[2].Count)
	assert.Equal(t, 0, r.Counts[2].BarUnits)
	assert.Equal(t, 4, r.TotalFindings)
}

func TestBuild_ScanTypeLabel(t *testing.T) {
	r := Build("https://example.com", nil, BuildOptions{})
	assert.Equal(t, "Black-box web application scan", r.ScanType)

	r = Build("https://example.com", nil, BuildOptions{SourceSummary: "Go monolith, chi router"})
	assert.Equal(t, "Code-assisted web application scan", r.ScanType)
}

func TestMethodology_NinePhases(t *testing.T) {
	phases := Methodology()
	require.Len(t, phases, 9)
	for i, p := range phases {
		assert.Equal(t, i+1, p.Number)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
	}
}
