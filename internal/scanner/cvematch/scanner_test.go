package cvematch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_ExactVersionCVEs(t *testing.T) {
	res := Match(nil, "Apache/2.4.49 (Ubuntu)")

	require.Len(t, res.Findings, 2)

	ids := []string{res.Findings[0].Metadata["cve"], res.Findings[1].Metadata["cve"]}
	assert.ElementsMatch(t, []string{"CVE-2021-41773", "CVE-2021-42013"}, ids)

	for _, f := range res.Findings {
		assert.Equal(t, "A06:2021", f.OWASPCategory)
		assert.Contains(t, f.Evidence, "Apache/2.4.49")
		assert.Contains(t, f.Evidence, "2.4.49")
	}
	assert.Equal(t, []string{"Apache/2.4.49 (Ubuntu)"}, res.TechnologiesChecked)
}

func TestMatch_OutdatedFallback(t *testing.T) {
	res := Match([]string{"nginx/1.10.0"}, "")

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, "Outdated Nginx Version", f.Title)
	assert.Equal(t, "A06:2021", f.OWASPCategory)
	assert.Contains(t, f.Evidence, "1.10.0 < 1.25.0")
}

func TestMatch_CurrentVersionClean(t *testing.T) {
	res := Match([]string{"nginx/1.27.3"}, "")
	assert.Empty(t, res.Findings)
	assert.Equal(t, 1, res.Stats.TechnologiesChecked)
}

func TestMatch_NoVersionNoMatch(t *testing.T) {
	res := Match([]string{"nginx"}, "")
	assert.Empty(t, res.Findings)
}

func TestMatch_UnknownTechnologyIgnored(t *testing.T) {
	res := Match([]string{"caddy/2.7.6", "  "}, "")
	assert.Empty(t, res.Findings)
	assert.Equal(t, []string{"caddy/2.7.6"}, res.TechnologiesChecked)
}

func TestMatch_ServerHeaderCheckedFirst(t *testing.T) {
	res := Match([]string{"jquery 1.12.4"}, "Apache/2.4.50")

	require.NotEmpty(t, res.TechnologiesChecked)
	assert.Equal(t, "Apache/2.4.50", res.TechnologiesChecked[0])
	// Both candidates produce findings.
	assert.Len(t, res.Findings, 2)
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.2.0", 0},
		{"2.4.48", "2.4.52", -1},
		{"3.0.1", "3.0.0", 1},
		{"10.0", "9.9.9", 1},
		{"1", "1.0.0", 0},
	}

	for _, tc := range cases {
		got, err := compareVersions(tc.a, tc.b)
		require.NoError(t, err, "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.want, got, "%s vs %s", tc.a, tc.b)
	}

	_, err := compareVersions("1.2.x", "1.2.0")
	assert.Error(t, err)
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, "2.4.49", extractVersion("Apache/2.4.49 (Ubuntu)"))
	assert.Equal(t, "8.1", extractVersion("PHP/8.1"))
	assert.Equal(t, "", extractVersion("nginx"))
}

func TestDetectServerHeader(t *testing.T) {
	orig := guardValidate
	guardValidate = func(raw string) (string, error) { return raw, nil }
	t.Cleanup(func() { guardValidate = orig })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "nginx/1.10.0")
		w.Header().Set("X-Powered-By", "PHP/7.4.3")
	}))
	defer srv.Close()

	server, extra, err := DetectServerHeader(context.Background(), srv.URL, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "nginx/1.10.0", server)
	assert.Equal(t, []string{"PHP/7.4.3"}, extra)
}

func TestDetectServerHeader_GuardEnforced(t *testing.T) {
	_, _, err := DetectServerHeader(context.Background(), "http://127.0.0.1/", time.Second)
	assert.Error(t, err)
}
