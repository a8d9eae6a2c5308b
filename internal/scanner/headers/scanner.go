// Package headers analyzes HTTP security headers on the target's base URL.
package headers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/buemura/webscan/internal/scanner"
	"github.com/buemura/webscan/internal/scanner/urlguard"
	"github.com/buemura/webscan/pkg/types"
)

// guardValidate is the SSRF guard hook, swappable in tests.
var guardValidate = urlguard.Validate

// Analyze fetches the base URL once and evaluates every header rule against
// the response. The returned findings all carry an http_headers snapshot of
// the observed security headers.
func Analyze(ctx context.Context, baseURL string, requestTimeout time.Duration) ([]types.Finding, error) {
	validated, err := guardValidate(baseURL)
	if err != nil {
		return nil, fmt.Errorf("base URL rejected: %w", err)
	}

	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}
	client := &http.Client{Timeout: requestTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, validated, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", validated, err)
	}
	resp.Body.Close()

	isHTTPS := strings.HasPrefix(validated, "https://")
	snapshot := types.HTTPHeadersEvidence(observedHeaders(resp.Header))

	var findings []types.Finding
	for _, rule := range Rules() {
		finding := rule.Check(resp.Header, isHTTPS)
		if finding == nil {
			continue
		}
		finding.OWASPCategory = rule.Category
		finding.Location = validated
		finding.Evidence = fmt.Sprintf("Response headers from GET %s", validated)
		finding.Snapshot = snapshot
		finding.Metadata = map[string]string{"check": "headers", "header": rule.Header}
		findings = append(findings, *finding)
	}

	return findings, nil
}

// observedHeaders captures the security-relevant headers present in the
// response, for the evidence snapshot.
func observedHeaders(h http.Header) map[string]string {
	out := make(map[string]string)
	for _, rule := range Rules() {
		if v := h.Get(rule.Header); v != "" {
			out[rule.Header] = v
		}
	}
	return out
}

// Scanner adapts Analyze to the scanner framework.
type Scanner struct{}

// New creates a new headers scanner.
func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Name() string        { return "headers" }
func (s *Scanner) Description() string { return "HTTP security header analysis" }

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
	if baseURL == "" {
		return nil, fmt.Errorf("cannot determine URL for target %q", target.Host)
	}

	findings, err := Analyze(ctx, baseURL, opts.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &types.ScanResult{
		ScannerName: s.Name(),
		Target:      target,
		StartedAt:   started,
		CompletedAt: time.Now(),
		Findings:    findings,
		Stats:       types.ScanStats{Elapsed: time.Since(started)},
	}, nil
}
