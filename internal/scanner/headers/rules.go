package headers

import (
	"net/http"
	"strings"

	"github.com/buemura/webscan/internal/owasp"
	"github.com/buemura/webscan/pkg/types"
)

// Rule is a single security header check. Category carries the OWASP code
// for findings the rule emits.
type Rule struct {
	Header   string
	Category string
	Check    func(h http.Header, isHTTPS bool) *types.Finding
}

// Rules returns the header security rule table.
func Rules() []Rule {
	return []Rule{
		{
			Header:   "Strict-Transport-Security",
			Category: owasp.CryptographicFailure,
			Check: func(h http.Header, isHTTPS bool) *types.Finding {
				if !isHTTPS {
					return nil
				}
				if h.Get("Strict-Transport-Security") == "" {
					return &types.Finding{
						Title:       "Missing Strict-Transport-Security header",
						Severity:    types.SeverityHigh,
						Description: "HSTS is not enforced. Clients may be downgraded to plain HTTP, exposing cookies and credentials.",
						Remediation: "Add: Strict-Transport-Security: max-age=31536000; includeSubDomains",
					}
				}
				return nil
			},
		},
		{
			Header:   "Content-Security-Policy",
			Category: owasp.Injection,
			Check: func(h http.Header, _ bool) *types.Finding {
				if h.Get("Content-Security-Policy") == "" {
					return &types.Finding{
						Title:       "Missing Content-Security-Policy header",
						Severity:    types.SeverityMedium,
						Description: "Without a CSP, any successful markup injection escalates directly to script execution.",
						Remediation: "Add a restrictive Content-Security-Policy, e.g. default-src 'self'.",
					}
				}
				return nil
			},
		},
		{
			Header:   "X-Content-Type-Options",
			Category: owasp.Misconfiguration,
			Check: func(h http.Header, _ bool) *types.Finding {
				val := h.Get("X-Content-Type-Options")
				if val == "" {
					return &types.Finding{
						Title:       "Missing X-Content-Type-Options header",
						Severity:    types.SeverityLow,
						Description: "Browsers may MIME-sniff responses, allowing content-type confusion attacks.",
						Remediation: "Add: X-Content-Type-Options: nosniff",
					}
				}
				if !strings.EqualFold(val, "nosniff") {
					return &types.Finding{
						Title:       "Misconfigured X-Content-Type-Options header",
						Severity:    types.SeverityLow,
						Description: "The header is present but not set to 'nosniff'. Current value: " + val,
						Remediation: "Set the value to 'nosniff'.",
					}
				}
				return nil
			},
		},
		{
			Header:   "X-Frame-Options",
			Category: owasp.Misconfiguration,
			Check: func(h http.Header, _ bool) *types.Finding {
				if h.Get("X-Frame-Options") == "" && !strings.Contains(h.Get("Content-Security-Policy"), "frame-ancestors") {
					return &types.Finding{
						Title:       "Missing clickjacking protection",
						Severity:    types.SeverityLow,
						Description: "Neither X-Frame-Options nor a frame-ancestors CSP directive is set; the page can be framed by other origins.",
						Remediation: "Add X-Frame-Options: DENY or a frame-ancestors CSP directive.",
					}
				}
				return nil
			},
		},
		{
			Header:   "Referrer-Policy",
			Category: owasp.Misconfiguration,
			Check: func(h http.Header, _ bool) *types.Finding {
				if h.Get("Referrer-Policy") == "" {
					return &types.Finding{
						Title:       "Missing Referrer-Policy header",
						Severity:    types.SeverityLow,
						Description: "Sensitive path or query data may leak to third parties through the Referer header.",
						Remediation: "Add: Referrer-Policy: strict-origin-when-cross-origin",
					}
				}
				return nil
			},
		},
		{
			Header:   "Permissions-Policy",
			Category: owasp.Misconfiguration,
			Check: func(h http.Header, _ bool) *types.Finding {
				if h.Get("Permissions-Policy") == "" {
					return &types.Finding{
						Title:       "Missing Permissions-Policy header",
						Severity:    types.SeverityInfo,
						Description: "Browser features like camera, microphone, and geolocation are not explicitly restricted.",
						Remediation: "Add: Permissions-Policy: camera=(), microphone=(), geolocation=()",
					}
				}
				return nil
			},
		},
		{
			Header:   "Server",
			Category: owasp.Misconfiguration,
			Check: func(h http.Header, _ bool) *types.Finding {
				server := h.Get("Server")
				if server != "" && strings.ContainsAny(server, "0123456789") {
					return &types.Finding{
						Title:       "Server header discloses version",
						Severity:    types.SeverityInfo,
						Description: "The Server header exposes software version details: " + server,
						Remediation: "Suppress the version from the Server header.",
					}
				}
				return nil
			},
		},
	}
}
