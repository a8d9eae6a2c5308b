package headers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/webscan/pkg/types"
)

func allowLocalTargets(t *testing.T) {
	t.Helper()
	orig := guardValidate
	guardValidate = func(raw string) (string, error) { return raw, nil }
	t.Cleanup(func() { guardValidate = orig })
}

func TestAnalyze_BareResponseFlagsMissingHeaders(t *testing.T) {
	allowLocalTargets(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	findings, err := Analyze(context.Background(), srv.URL, 2*time.Second)
	require.NoError(t, err)

	titles := make(map[string]types.Finding)
	for _, f := range findings {
		titles[f.Title] = f
	}

	assert.Contains(t, titles, "Missing Content-Security-Policy header")
	assert.Contains(t, titles, "Missing X-Content-Type-Options header")
	assert.Contains(t, titles, "Missing clickjacking protection")
	assert.Contains(t, titles, "Missing Referrer-Policy header")
	assert.Contains(t, titles, "Missing Permissions-Policy header")

	// HSTS only applies over HTTPS; httptest.NewServer is plain HTTP.
	assert.NotContains(t, titles, "Missing Strict-Transport-Security header")

	csp := titles["Missing Content-Security-Policy header"]
	assert.Equal(t, "A03:2021", csp.OWASPCategory)
	assert.Equal(t, types.SeverityMedium, csp.Severity)
	require.NotNil(t, csp.Snapshot)
	assert.Equal(t, types.EvidenceHTTPHeaders, csp.Snapshot.Kind)
	assert.Equal(t, srv.URL, csp.Location)
}

func TestAnalyze_WellConfiguredServer(t *testing.T) {
	allowLocalTargets(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=()")
	}))
	defer srv.Close()

	findings, err := Analyze(context.Background(), srv.URL, 2*time.Second)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestAnalyze_MisconfiguredNosniff(t *testing.T) {
	allowLocalTargets(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "sniff-away")
	}))
	defer srv.Close()

	findings, err := Analyze(context.Background(), srv.URL, 2*time.Second)
	require.NoError(t, err)

	var found bool
	for _, f := range findings {
		if f.Title == "Misconfigured X-Content-Type-Options header" {
			found = true
			assert.Contains(t, f.Description, "sniff-away")
		}
	}
	assert.True(t, found, "expected misconfiguration finding")
}

func TestAnalyze_ServerVersionDisclosure(t *testing.T) {
	allowLocalTargets(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "nginx/1.18.0")
	}))
	defer srv.Close()

	findings, err := Analyze(context.Background(), srv.URL, 2*time.Second)
	require.NoError(t, err)

	var found bool
	for _, f := range findings {
		if f.Title == "Server header discloses version" {
			found = true
			assert.Equal(t, types.SeverityInfo, f.Severity)
			require.NotNil(t, f.Snapshot)
			assert.Equal(t, "nginx/1.18.0", f.Snapshot.Headers["Server"])
		}
	}
	assert.True(t, found, "expected version disclosure finding")
}

func TestAnalyze_RejectsUnsafeBase(t *testing.T) {
	_, err := Analyze(context.Background(), "http://169.254.169.254/latest/meta-data/", time.Second)
	assert.Error(t, err)
}
