package paths

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowLocalTargets disables the SSRF guard for the duration of a test so it
// can probe a local httptest server.
func allowLocalTargets(t *testing.T) {
	t.Helper()
	origValidate, origJoin := guardValidate, guardJoin
	guardValidate = func(raw string) (string, error) { return raw, nil }
	guardJoin = func(base, path string) (string, error) {
		b, err := url.Parse(base)
		if err != nil {
			return "", err
		}
		ref, err := url.Parse(path)
		if err != nil {
			return "", err
		}
		return b.ResolveReference(ref).String(), nil
	}
	t.Cleanup(func() {
		guardValidate, guardJoin = origValidate, origJoin
	})
}

func TestEnumerate_FindsExposedPath(t *testing.T) {
	allowLocalTargets(t)
	secret := strings.Repeat("DB_PASSWORD=hunter2\n", 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/.env" {
			w.Header().Set("Content-Type", "text/plain")
			fmt.Fprint(w, secret)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	res, err := Enumerate(context.Background(), srv.URL, 30*time.Second, 2*time.Second)
	require.NoError(t, err)

	require.Len(t, res.AccessiblePaths, 1)
	ap := res.AccessiblePaths[0]
	assert.Equal(t, "/.env", ap.Path)
	assert.Equal(t, http.StatusOK, ap.Status)
	assert.Equal(t, "text/plain", ap.Headers["Content-Type"])
	assert.Contains(t, ap.BodyPreview, "DB_PASSWORD=hunter2")

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, "Exposed path: /.env", f.Title)
	require.NotNil(t, f.Snapshot)
	assert.Equal(t, "exposed_path", string(f.Snapshot.Kind))
	assert.Greater(t, res.Stats.PathsChecked, 40)
	assert.Equal(t, 1, res.Stats.AccessibleFound)
}

func TestEnumerate_SmallBodiesAndHomepageRedirectsIgnored(t *testing.T) {
	allowLocalTargets(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, strings.Repeat("welcome home ", 20))
		case "/admin":
			// Soft 404: bounce back to the homepage.
			http.Redirect(w, r, "/", http.StatusFound)
		default:
			// 200 with a tiny body must not count as accessible.
			fmt.Fprint(w, "ok")
		}
	}))
	defer srv.Close()

	res, err := Enumerate(context.Background(), srv.URL, 30*time.Second, 2*time.Second)
	require.NoError(t, err)
	assert.Empty(t, res.AccessiblePaths)
	assert.Empty(t, res.Findings)
}

func TestEnumerate_RecordsGatedResponses(t *testing.T) {
	allowLocalTargets(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	res, err := Enumerate(context.Background(), srv.URL, 30*time.Second, 2*time.Second)
	require.NoError(t, err)

	require.NotEmpty(t, res.InterestingResponses)
	assert.Equal(t, "/admin", res.InterestingResponses[0].Path)
	assert.Equal(t, http.StatusForbidden, res.InterestingResponses[0].Status)
	// Gated access is a note, never a finding.
	assert.Empty(t, res.Findings)
}

func TestEnumerate_RobotsCandidatesProbed(t *testing.T) {
	allowLocalTargets(t)
	hidden := strings.Repeat("internal dashboard content ", 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			fmt.Fprint(w, "User-agent: *\nDisallow: /secret-panel\nDisallow: /\nAllow: /public\n")
		case "/secret-panel":
			fmt.Fprint(w, hidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	res, err := Enumerate(context.Background(), srv.URL, 30*time.Second, 2*time.Second)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"/secret-panel", "/public"}, res.RobotsEntries)

	require.Len(t, res.AccessiblePaths, 1)
	assert.Equal(t, "/secret-panel", res.AccessiblePaths[0].Path)
	require.Len(t, res.Findings, 1)
	assert.Contains(t, res.Findings[0].Description, "robots.txt")
}

func TestEnumerate_ZeroBudgetReturnsDiagnostic(t *testing.T) {
	allowLocalTargets(t)
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	res, err := Enumerate(context.Background(), srv.URL, 0, 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Stats.PathsChecked)
	assert.Zero(t, requests)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "time budget exhausted")
}

func TestEnumerate_RejectsUnsafeBase(t *testing.T) {
	_, err := Enumerate(context.Background(), "http://169.254.169.254/", 10*time.Second, time.Second)
	assert.Error(t, err)
}

func TestParseRobots(t *testing.T) {
	body := "User-agent: *\nDISALLOW: /a\nallow: /b\nDisallow:\nDisallow: /\nDisallow: /a\n"
	entries := parseRobots(body)

	require.Len(t, entries, 2)
	assert.Equal(t, "/a", entries[0].Path)
	assert.Equal(t, "/b", entries[1].Path)
	assert.Equal(t, robotsDescription, entries[0].Description)
}

func TestParseRobots_CapsCandidates(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "Disallow: /path-%d\n", i)
	}
	entries := parseRobots(sb.String())
	assert.Len(t, entries, maxRobotsCandidates)
}

func TestCatalog_Shape(t *testing.T) {
	entries := Catalog()
	assert.GreaterOrEqual(t, len(entries), 50)
	for _, e := range entries {
		assert.True(t, strings.HasPrefix(e.Path, "/"), "path %q must be absolute", e.Path)
		assert.NotEmpty(t, e.Description)
	}
}
