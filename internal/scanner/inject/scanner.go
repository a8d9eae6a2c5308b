// Package inject submits XSS and SQL injection probes against crawler-
// discovered forms and classifies the responses. All payloads are detection
// probes, not exploits.
package inject

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

const (
	// snippetRadius is the context window captured around a match.
	snippetRadius = 150
	// maxBodyRead bounds how much of a response body is read per probe.
	maxBodyRead = 1 << 20
)

// guardValidate is the SSRF guard hook, swappable in tests.
var guardValidate = urlguard.Validate

// Result is the typed output of one probing run.
type Result struct {
	XSSFindings  []types.Finding `json:"xss_findings"`
	SQLiFindings []types.Finding `json:"sqli_findings"`
	FormsTested  int             `json:"forms_tested"`
	PayloadsSent int             `json:"payloads_sent"`
	Stats        types.ScanStats `json:"stats"`
	Errors       []string        `json:"errors,omitempty"`
}

// Findings returns XSS and SQLi findings as one list.
func (r *Result) Findings() []types.Finding {
	out := make([]types.Finding, 0, len(r.XSSFindings)+len(r.SQLiFindings))
	out = append(out, r.XSSFindings...)
	out = append(out, r.SQLiFindings...)
	return out
}

// Probe submits the payload catalogs against every testable input of every
// form. Requests are sequential; the deadline is checked before each request
// at every loop level, and partial results are always returned.
func Probe(ctx context.Context, forms []types.Form, baseURL string, timeBudget, requestTimeout time.Duration) *Result {
	result := &Result{}
	deadline := scanner.NewDeadline(timeBudget)

	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}
	client := &http.Client{Timeout: requestTimeout}

	budgetExhausted := false
	for _, form := range forms {
		if deadline.Expired() {
			budgetExhausted = true
			break
		}

		actionURL, err := resolveAction(form, baseURL)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("skipping form on %s: %v", form.PageURL, err))
			continue
		}
		if _, err := guardValidate(actionURL); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("skipping form action %s: %v", actionURL, err))
			continue
		}

		inputs := testableInputs(form)
		if len(inputs) == 0 {
			continue
		}

		result.FormsTested++
		if stopped := probeForm(ctx, client, deadline, actionURL, form.Method, inputs, result); stopped {
			budgetExhausted = true
			break
		}
	}

	if budgetExhausted {
		result.Errors = append(result.Errors,
			fmt.Sprintf("time budget exhausted after %d payloads across %d forms", result.PayloadsSent, result.FormsTested))
	}

	result.Stats = types.ScanStats{
		FormsTested:  result.FormsTested,
		PayloadsSent: result.PayloadsSent,
		Elapsed:      deadline.Elapsed(),
	}
	return result
}

// probeForm runs every payload against every testable input of one form.
// It reports true when the time budget ran out mid-form.
func probeForm(ctx context.Context, client *http.Client, deadline scanner.Deadline, actionURL, method string, inputs []types.FormInput, result *Result) bool {
	for _, input := range inputs {
		if deadline.Expired() {
			return true
		}

		for _, payload := range XSSPayloads() {
			if deadline.Expired() {
				return true
			}
			probeXSS(ctx, client, actionURL, method, inputs, input, payload, result)
		}

		for _, payload := range SQLiPayloads() {
			if deadline.Expired() {
				return true
			}
			probeSQLi(ctx, client, actionURL, method, inputs, input, payload, result)
		}
	}
	return false
}

// probeXSS sends one XSS payload through one field. A failed request means
// no finding for this attempt; probing continues.
func probeXSS(ctx context.Context, client *http.Client, actionURL, method string, inputs []types.FormInput, target types.FormInput, payload XSSPayload, result *Result) {
	values := buildSubmission(inputs, target.Name, payload.Payload)
	sub, err := submitForm(ctx, client, actionURL, method, values)
	result.PayloadsSent++
	if err != nil {
		return
	}

	loc := payload.Pattern.FindStringIndex(sub.Body)
	if loc == nil {
		return
	}

	result.XSSFindings = append(result.XSSFindings, types.Finding{
		Title:         "Reflected Cross-Site Scripting (XSS)",
		Severity:      types.SeverityHigh,
		OWASPCategory: owasp.Injection,
		Location:      fmt.Sprintf("%s (field %q)", actionURL, target.Name),
		Description: fmt.Sprintf("The %s payload submitted through field %q was reflected unescaped in the response.",
			payload.Name, target.Name),
		Evidence: fmt.Sprintf("Payload %q reflected without encoding", payload.Payload),
		Snapshot: types.HTTPResponseEvidence(
			fmt.Sprintf("XSS probe: %s", payload.Name),
			sub.RequestLine,
			sub.Status,
			contextSnippet(sub.Body, loc[0], loc[1]),
		),
		Remediation: "Encode all user-supplied input for the HTML context it is rendered in, and set a restrictive Content-Security-Policy.",
		Metadata: map[string]string{
			"check":   "xss",
			"field":   target.Name,
			"payload": payload.Payload,
			"marker":  payload.Marker,
		},
	})
}

// probeSQLi sends one SQL injection payload through one field and checks the
// response for database error fingerprints. The first matching signature
// wins: one finding per payload attempt, not one per signature.
func probeSQLi(ctx context.Context, client *http.Client, actionURL, method string, inputs []types.FormInput, target types.FormInput, payload SQLiPayload, result *Result) {
	values := buildSubmission(inputs, target.Name, payload.Payload)
	sub, err := submitForm(ctx, client, actionURL, method, values)
	result.PayloadsSent++
	if err != nil {
		return
	}

	for _, sig := range payload.Signatures {
		loc := sig.Pattern.FindStringIndex(sub.Body)
		if loc == nil {
			continue
		}

		result.SQLiFindings = append(result.SQLiFindings, types.Finding{
			Title:         "SQL Injection",
			Severity:      types.SeverityCritical,
			OWASPCategory: owasp.Injection,
			Location:      fmt.Sprintf("%s (field %q)", actionURL, target.Name),
			Description: fmt.Sprintf("Submitting a %s payload through field %q produced a %s error message, indicating the input reaches a SQL query unsanitized.",
				payload.Name, target.Name, sig.Database),
			Evidence: fmt.Sprintf("%s error signature %q matched in response", sig.Database, sig.Pattern.String()),
			Snapshot: types.HTTPResponseEvidence(
				fmt.Sprintf("SQLi probe: %s", payload.Name),
				sub.RequestLine,
				sub.Status,
				contextSnippet(sub.Body, loc[0], loc[1]),
			),
			Remediation: "Use parameterized queries or prepared statements. Never concatenate user input into SQL.",
			Metadata: map[string]string{
				"check":    "sqli",
				"field":    target.Name,
				"payload":  payload.Payload,
				"database": sig.Database,
			},
		})
		return
	}
}

// contextSnippet extracts a whitespace-collapsed window around body[start:end],
// marking truncation with ellipses.
func contextSnippet(body string, start, end int) string {
	from := start - snippetRadius
	if from < 0 {
		from = 0
	}
	to := end + snippetRadius
	if to > len(body) {
		to = len(body)
	}

	snippet := strings.Join(strings.Fields(body[from:to]), " ")
	if from > 0 {
		snippet = "..." + snippet
	}
	if to < len(body) {
		snippet += "..."
	}
	return snippet
}

// Scanner adapts Probe to the scanner framework. Forms are supplied through
// opts.ExtraArgs["forms"] since discovery belongs to the crawler.
type Scanner struct{}

// New creates a new injection scanner.
func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Name() string        { return "inject" }
func (s *Scanner) Description() string { return "Form-based XSS and SQL injection probing" }

func (s *Scanner) Run(ctx context.Context, target types.Target, opts scanner.Options) (*types.ScanResult, error) {
	forms, _ := opts.ExtraArgs["forms"].([]types.Form)
	if len(forms) == 0 {
		return nil, fmt.Errorf("no forms supplied; provide crawler output via the forms option")
	}

	baseURL := target.URL
	if baseURL == "" && target.Host != "" {
		scheme := target.Scheme
		if scheme == "" {
			scheme = "https"
		}
		baseURL = scheme + "://" + target.Host
	}

	started := time.Now()
	res := Probe(ctx, forms, baseURL, opts.TimeBudget, opts.RequestTimeout)

	return &types.ScanResult{
		ScannerName: s.Name(),
		Target:      target,
		StartedAt:   started,
		CompletedAt: time.Now(),
		Findings:    res.Findings(),
		Stats:       res.Stats,
		Errors:      res.Errors,
	}, nil
}
