// Package cvematch maps detected product/version strings (server headers,
// tech-detection output) to known vulnerabilities using a curated table plus
// a generic outdated-version heuristic.
package cvematch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/buemura/webscan/internal/owasp"
	"github.com/buemura/webscan/internal/scanner"
	"github.com/buemura/webscan/internal/scanner/urlguard"
	"github.com/buemura/webscan/pkg/types"
)

// Result is the typed output of one matching run.
type Result struct {
	Findings            []types.Finding `json:"findings"`
	TechnologiesChecked []string        `json:"technologies_checked"`
	Stats               types.ScanStats `json:"stats"`
}

// Match checks each technology string (server header first) against the
// vulnerability catalog. Pure string work: no network traffic.
func Match(technologies []string, serverHeader string) *Result {
	started := time.Now()
	result := &Result{}

	var candidates []string
	if serverHeader != "" {
		candidates = append(candidates, serverHeader)
	}
	candidates = append(candidates, technologies...)

	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" {
			continue
		}
		result.TechnologiesChecked = append(result.TechnologiesChecked, trimmed)

		lower := strings.ToLower(trimmed)
		for key, product := range Catalog() {
			if !strings.Contains(lower, key) {
				continue
			}
			version := extractVersion(trimmed)
			if version == "" {
				continue
			}
			result.Findings = append(result.Findings, matchProduct(trimmed, product, version)...)
		}
	}

	result.Stats = types.ScanStats{
		TechnologiesChecked: len(result.TechnologiesChecked),
		Elapsed:             time.Since(started),
	}
	return result
}

// matchProduct emits one finding per exact-version CVE, falling back to a
// single generic outdated-version finding when the catalog defines a
// threshold and the detected version is strictly below it.
func matchProduct(candidate string, product Product, version string) []types.Finding {
	if entries, ok := product.ByVersion[version]; ok {
		findings := make([]types.Finding, 0, len(entries))
		for _, entry := range entries {
			findings = append(findings, types.Finding{
				Title:         fmt.Sprintf("%s: %s %s", entry.ID, product.DisplayName, version),
				Severity:      entry.Severity,
				OWASPCategory: owasp.VulnerableComponents,
				Location:      candidate,
				Description:   entry.Description,
				Evidence: fmt.Sprintf("Detected %q, version %s has a known vulnerability (%s)",
					candidate, version, entry.ID),
				Snapshot:    types.RawEvidence("version detection", candidate),
				Remediation: fmt.Sprintf("Upgrade %s to a version not affected by %s.", product.DisplayName, entry.ID),
				Metadata: map[string]string{
					"check":   "cve",
					"cve":     entry.ID,
					"product": product.DisplayName,
					"version": version,
				},
			})
		}
		return findings
	}

	if product.OutdatedBelow == "" {
		return nil
	}

	cmp, err := compareVersions(version, product.OutdatedBelow)
	if err != nil || cmp >= 0 {
		// Unparseable versions are treated as "no match", never an error.
		return nil
	}

	return []types.Finding{{
		Title:         fmt.Sprintf("Outdated %s Version", product.DisplayName),
		Severity:      types.SeverityMedium,
		OWASPCategory: owasp.VulnerableComponents,
		Location:      candidate,
		Description: fmt.Sprintf("%s Detected version %s is older than %s.",
			product.OutdatedNote, version, product.OutdatedBelow),
		Evidence:    fmt.Sprintf("Detected %q, version %s < %s", candidate, version, product.OutdatedBelow),
		Snapshot:    types.RawEvidence("version detection", candidate),
		Remediation: fmt.Sprintf("Upgrade %s to %s or later.", product.DisplayName, product.OutdatedBelow),
		Metadata: map[string]string{
			"check":   "cve",
			"product": product.DisplayName,
			"version": version,
		},
	}}
}

// DetectServerHeader fetches the base URL once and returns identification
// headers (Server, X-Powered-By) for matching. The URL guard is enforced.
func DetectServerHeader(ctx context.Context, baseURL string, timeout time.Duration) (string, []string, error) {
	validated, err := guardValidate(baseURL)
	if err != nil {
		return "", nil, fmt.Errorf("base URL rejected: %w", err)
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, validated, nil)
	if err != nil {
		return "", nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", nil, err
	}
	resp.Body.Close()

	var extra []string
	if v := resp.Header.Get("X-Powered-By"); v != "" {
		extra = append(extra, v)
	}
	return resp.Header.Get("Server"), extra, nil
}

// guardValidate is the SSRF guard hook, swappable in tests.
var guardValidate = urlguard.Validate

// Scanner adapts Match to the scanner framework: it detects the server
// header itself and accepts extra technology strings via
// opts.ExtraArgs["technologies"].
type Scanner struct{}

// New creates a new CVE matching scanner.
func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Name() string        { return "cve" }
func (s *Scanner) Description() string { return "Known-vulnerability matching by product version" }

func (s *Scanner) Run(ctx context.Context, target types.Target, opts scanner.Options) (*types.ScanResult, error) {
	started := time.Now()

	baseURL := target.URL
	if baseURL == "" && target.Host != "" {
		scheme := target.Scheme
		if scheme == "" {
			scheme = "https"
		}
		baseURL = scheme + "://" + target.Host
	}

	var technologies []string
	if raw, ok := opts.ExtraArgs["technologies"].([]string); ok {
		technologies = raw
	}

	var errors []string
	serverHeader, extra, err := DetectServerHeader(ctx, baseURL, opts.RequestTimeout)
	if err != nil {
		errors = append(errors, fmt.Sprintf("server header detection failed: %v", err))
	}
	technologies = append(technologies, extra...)

	res := Match(technologies, serverHeader)

	return &types.ScanResult{
		ScannerName: s.Name(),
		Target:      target,
		StartedAt:   started,
		CompletedAt: time.Now(),
		Findings:    res.Findings,
		Stats:       res.Stats,
		Errors:      errors,
	}, nil
}
