// Package paths enumerates exposed sensitive paths on a target: a static
// catalog of well-known locations plus candidates harvested from robots.txt.
package paths

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/buemura/webscan/internal/owasp"
	"github.com/buemura/webscan/internal/scanner"
	"github.com/buemura/webscan/internal/scanner/urlguard"
	"github.com/buemura/webscan/pkg/types"
)

const (
	// minAccessibleBodySize filters empty or placeholder 200 responses.
	minAccessibleBodySize = 50
	// bodyPreviewLimit caps the normalized body preview length.
	bodyPreviewLimit = 500
	// maxBodyRead bounds how much of a response body is read per probe.
	maxBodyRead = 1 << 20
)

// URL guard hooks. Extracted as variables so tests can run against local
// httptest servers, which the guard rejects by design.
var (
	guardValidate = urlguard.Validate
	guardJoin     = urlguard.Join
)

// headerAllowList is the safe subset of response headers captured as evidence.
var headerAllowList = []string{
	"Content-Type",
	"Server",
	"X-Powered-By",
	"Set-Cookie",
	"X-Frame-Options",
	"Content-Length",
}

// AccessiblePath records a catalog path that answered 200 with real content.
type AccessiblePath struct {
	Path          string            `json:"path"`
	FinalURL      string            `json:"final_url"`
	Status        int               `json:"status"`
	ContentType   string            `json:"content_type,omitempty"`
	ContentLength int               `json:"content_length"`
	BodyPreview   string            `json:"body_preview,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
}

// GatedResponse records a 401/403 answer: access is gated, so it is noted
// with low priority rather than reported as a finding.
type GatedResponse struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	Status int    `json:"status"`
}

// Result is the typed output of one enumeration run.
type Result struct {
	AccessiblePaths      []AccessiblePath `json:"accessible_paths"`
	InterestingResponses []GatedResponse  `json:"interesting_responses"`
	RobotsEntries        []string         `json:"robots_txt_entries,omitempty"`
	Findings             []types.Finding  `json:"findings"`
	Stats                types.ScanStats  `json:"stats"`
	Errors               []string         `json:"errors,omitempty"`
}

// Enumerate probes the sensitive-path catalog plus robots.txt candidates
// against baseURL. Probes run sequentially; the deadline is checked before
// every request and partial results are always returned.
func Enumerate(ctx context.Context, baseURL string, timeBudget, requestTimeout time.Duration) (*Result, error) {
	validated, err := guardValidate(baseURL)
	if err != nil {
		return nil, fmt.Errorf("base URL rejected: %w", err)
	}
	baseURL = strings.TrimRight(validated, "/")

	result := &Result{}
	deadline := scanner.NewDeadline(timeBudget)

	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}
	client := &http.Client{Timeout: requestTimeout}

	probeList := Catalog()
	if !deadline.Expired() {
		robots := fetchRobotsCandidates(ctx, robotsClient(requestTimeout), baseURL)
		for _, entry := range robots {
			result.RobotsEntries = append(result.RobotsEntries, entry.Path)
		}
		probeList = append(probeList, robots...)
	}

	for _, entry := range probeList {
		if deadline.Expired() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("time budget exhausted after %d of %d paths", result.Stats.PathsChecked, len(probeList)))
			break
		}

		fullURL, err := guardJoin(baseURL, entry.Path)
		if err != nil {
			// Joined URL escaped the guard; skip the candidate.
			continue
		}

		result.Stats.PathsChecked++
		probeOne(ctx, client, baseURL, fullURL, entry, result)
	}

	result.Stats.AccessibleFound = len(result.AccessiblePaths)
	result.Stats.Elapsed = deadline.Elapsed()
	return result, nil
}

// probeOne issues a single GET (redirects followed) and classifies the
// response. Network failures are swallowed: enumeration continues.
func probeOne(ctx context.Context, client *http.Client, baseURL, fullURL string, entry CatalogEntry, result *Result) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyRead))
		if err != nil {
			return
		}

		finalURL := fullURL
		if resp.Request != nil && resp.Request.URL != nil {
			finalURL = resp.Request.URL.String()
		}

		// A redirect back to the homepage is a soft 404, not an exposure.
		if len(body) < minAccessibleBodySize || strings.TrimRight(finalURL, "/") == baseURL {
			return
		}

		headers := filterHeaders(resp.Header)
		preview := normalizePreview(string(body), bodyPreviewLimit)

		result.AccessiblePaths = append(result.AccessiblePaths, AccessiblePath{
			Path:          entry.Path,
			FinalURL:      finalURL,
			Status:        resp.StatusCode,
			ContentType:   resp.Header.Get("Content-Type"),
			ContentLength: len(body),
			BodyPreview:   preview,
			Headers:       headers,
		})

		result.Findings = append(result.Findings, types.Finding{
			Title:         fmt.Sprintf("Exposed path: %s", entry.Path),
			Severity:      entry.Severity,
			OWASPCategory: owasp.CategoryFor(entry.Description),
			Location:      finalURL,
			Description:   entry.Description,
			Evidence: fmt.Sprintf("GET %s returned 200 with %d bytes (%s)",
				entry.Path, len(body), resp.Header.Get("Content-Type")),
			Snapshot: types.ExposedPathEvidence(
				entry.Path,
				fmt.Sprintf("GET %s", fullURL),
				resp.StatusCode,
				headers,
				preview,
			),
			Remediation: "Remove the resource from the web root or restrict access to it.",
			Metadata: map[string]string{
				"check": "paths",
				"path":  entry.Path,
			},
		})

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		result.InterestingResponses = append(result.InterestingResponses, GatedResponse{
			Path:   entry.Path,
			URL:    fullURL,
			Status: resp.StatusCode,
		})
	}
}

// filterHeaders keeps only the allow-listed response headers.
func filterHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for _, name := range headerAllowList {
		if v := h.Get(name); v != "" {
			out[name] = v
		}
	}
	return out
}

// normalizePreview collapses all whitespace runs to single spaces and
// truncates to limit characters, marking truncation with "...".
func normalizePreview(body string, limit int) string {
	collapsed := strings.Join(strings.Fields(body), " ")
	if len(collapsed) > limit {
		return collapsed[:limit] + "..."
	}
	return collapsed
}

// Scanner adapts Enumerate to the scanner framework.
type Scanner struct{}

// New creates a new path enumeration scanner.
func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Name() string        { return "paths" }
func (s *Scanner) Description() string { return "Sensitive path enumeration" }

func (s *Scanner) Run(ctx context.Context, target types.Target, opts scanner.Options) (*types.ScanResult, error) {
	scanResult := &types.ScanResult{
		ScannerName: s.Name(),
		Target:      target,
		StartedAt:   time.Now(),
	}

	baseURL := resolveBaseURL(target)
	if baseURL == "" {
		return nil, fmt.Errorf("cannot determine URL for target %q", target.Host)
	}

	res, err := Enumerate(ctx, baseURL, opts.TimeBudget, opts.RequestTimeout)
	if err != nil {
		return nil, err
	}

	scanResult.Findings = res.Findings
	scanResult.Stats = res.Stats
	scanResult.Errors = res.Errors
	scanResult.CompletedAt = time.Now()
	return scanResult, nil
}

// resolveBaseURL determines the base URL from the target.
func resolveBaseURL(target types.Target) string {
	if target.URL != "" {
		return target.URL
	}
	scheme := target.Scheme
	if scheme == "" {
		scheme = "https"
	}
	if target.Host == "" {
		return ""
	}
	return scheme + "://" + target.Host
}
