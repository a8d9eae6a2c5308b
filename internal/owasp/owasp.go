// Package owasp holds the OWASP Top 10 (2021) reference table and maps
// free-text finding descriptions onto category codes.
package owasp

import "strings"

// Category is one entry of the OWASP Top 10 (2021).
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CheckAreas  []string `json:"check_areas"`
}

// Category codes. DefaultCategory is the fallback when no keyword matches.
const (
	BrokenAccessControl  = "A01:2021"
	CryptographicFailure = "A02:2021"
	Injection            = "A03:2021"
	InsecureDesign       = "A04:2021"
	Misconfiguration     = "A05:2021"
	VulnerableComponents = "A06:2021"
	AuthFailures         = "A07:2021"
	IntegrityFailures    = "A08:2021"
	LoggingFailures      = "A09:2021"
	SSRF                 = "A10:2021"

	DefaultCategory = Misconfiguration
)

// categories is read-only process-wide reference data, loaded once.
var categories = []Category{
	{
		ID:          BrokenAccessControl,
		Name:        "Broken Access Control",
		Description: "Restrictions on what authenticated users are allowed to do are not properly enforced.",
		CheckAreas: []string{
			"Vertical and horizontal privilege escalation",
			"Insecure direct object references (IDOR)",
			"Missing function-level access control",
			"Forced browsing to authenticated pages",
			"CORS misconfiguration allowing unauthorized origins",
		},
	},
	{
		ID:          CryptographicFailure,
		Name:        "Cryptographic Failures",
		Description: "Failures related to cryptography that often lead to exposure of sensitive data.",
		CheckAreas: []string{
			"Cleartext transmission of sensitive data",
			"Weak or deprecated cryptographic algorithms",
			"Missing HTTPS enforcement and HSTS",
			"Improper certificate validation",
			"Hardcoded or weak cryptographic keys",
		},
	},
	{
		ID:          Injection,
		Name:        "Injection",
		Description: "User-supplied data is not validated, filtered, or sanitized before use in interpreters.",
		CheckAreas: []string{
			"SQL, NoSQL, and OS command injection",
			"Cross-site scripting (reflected, stored, DOM)",
			"LDAP and XPath injection",
			"Expression language and template injection",
			"Header injection and CRLF splitting",
		},
	},
	{
		ID:          InsecureDesign,
		Name:        "Insecure Design",
		Description: "Missing or ineffective control design, distinct from implementation defects.",
		CheckAreas: []string{
			"Missing rate limiting on sensitive operations",
			"Insufficient anti-automation controls",
			"Trust-boundary violations in business flows",
			"Unprotected state-changing operations",
		},
	},
	{
		ID:          Misconfiguration,
		Name:        "Security Misconfiguration",
		Description: "Insecure default configurations, incomplete setups, verbose errors, or exposed services.",
		CheckAreas: []string{
			"Default accounts and unchanged credentials",
			"Directory listing and exposed admin panels",
			"Verbose error messages and stack traces",
			"Missing security headers",
			"Unnecessary features, ports, or debug endpoints enabled",
		},
	},
	{
		ID:          VulnerableComponents,
		Name:        "Vulnerable and Outdated Components",
		Description: "Use of components with known vulnerabilities or unsupported versions.",
		CheckAreas: []string{
			"Server software with published CVEs",
			"Outdated frameworks and libraries",
			"Unpatched operating system packages",
			"Unsupported or end-of-life component versions",
		},
	},
	{
		ID:          AuthFailures,
		Name:        "Identification and Authentication Failures",
		Description: "Weaknesses in confirming user identity, authentication, and session management.",
		CheckAreas: []string{
			"Credential stuffing and brute-force exposure",
			"Weak password recovery flows",
			"Session fixation and predictable session tokens",
			"Missing multi-factor authentication on sensitive actions",
			"Session identifiers exposed in URLs",
		},
	},
	{
		ID:          IntegrityFailures,
		Name:        "Software and Data Integrity Failures",
		Description: "Code and infrastructure that do not protect against integrity violations.",
		CheckAreas: []string{
			"Unsigned or unverified updates",
			"Insecure deserialization of untrusted data",
			"CI/CD pipeline trust assumptions",
			"Dependency confusion and untrusted package sources",
		},
	},
	{
		ID:          LoggingFailures,
		Name:        "Security Logging and Monitoring Failures",
		Description: "Insufficient logging, detection, monitoring, and active response.",
		CheckAreas: []string{
			"Auditable events not logged",
			"Logs not monitored for suspicious activity",
			"Missing alerting on authentication failures",
			"Log injection via unsanitized input",
		},
	},
	{
		ID:          SSRF,
		Name:        "Server-Side Request Forgery",
		Description: "The application fetches remote resources without validating the user-supplied URL.",
		CheckAreas: []string{
			"URL fetch features reaching internal hosts",
			"Cloud metadata endpoint access",
			"Bypass of allow-list validation via redirects",
			"DNS rebinding exposure",
		},
	},
}

// keywordRule maps a keyword phrase to a category. Rules are evaluated in
// order; the first case-insensitive substring match wins.
type keywordRule struct {
	keyword  string
	category string
}

var keywordRules = []keywordRule{
	// A03 Injection
	{"sql injection", Injection},
	{"sqli", Injection},
	{"cross-site scripting", Injection},
	{"xss", Injection},
	{"command injection", Injection},
	{"os command", Injection},
	{"ldap injection", Injection},
	{"xpath", Injection},
	{"template injection", Injection},
	{"crlf", Injection},
	{"injection", Injection},

	// A10 SSRF
	{"ssrf", SSRF},
	{"server-side request forgery", SSRF},
	{"request forgery to internal", SSRF},
	{"metadata endpoint", SSRF},

	// A01 Broken Access Control
	{"access control", BrokenAccessControl},
	{"idor", BrokenAccessControl},
	{"insecure direct object", BrokenAccessControl},
	{"privilege escalation", BrokenAccessControl},
	{"forced browsing", BrokenAccessControl},
	{"cors", BrokenAccessControl},
	{"path traversal", BrokenAccessControl},
	{"directory traversal", BrokenAccessControl},

	// A02 Cryptographic Failures
	{"cleartext", CryptographicFailure},
	{"weak cipher", CryptographicFailure},
	{"tls", CryptographicFailure},
	{"ssl", CryptographicFailure},
	{"certificate", CryptographicFailure},
	{"hsts", CryptographicFailure},
	{"encryption", CryptographicFailure},

	// A07 Identification and Authentication Failures
	{"session", AuthFailures},
	{"authentication", AuthFailures},
	{"brute force", AuthFailures},
	{"credential", AuthFailures},
	{"password policy", AuthFailures},
	{"login", AuthFailures},

	// A06 Vulnerable and Outdated Components
	{"outdated", VulnerableComponents},
	{"cve-", VulnerableComponents},
	{"known vulnerab", VulnerableComponents},
	{"end-of-life", VulnerableComponents},
	{"unpatched", VulnerableComponents},

	// A08 Software and Data Integrity Failures
	{"deserialization", IntegrityFailures},
	{"integrity", IntegrityFailures},
	{"unsigned", IntegrityFailures},

	// A09 Security Logging and Monitoring Failures
	{"logging", LoggingFailures},
	{"monitoring", LoggingFailures},

	// A04 Insecure Design
	{"rate limit", InsecureDesign},
	{"business logic", InsecureDesign},

	// A05 Security Misconfiguration
	{"misconfig", Misconfiguration},
	{"default credential", Misconfiguration},
	{"debug", Misconfiguration},
	{"directory listing", Misconfiguration},
	{"exposed", Misconfiguration},
	{"security header", Misconfiguration},
	{"robots.txt", Misconfiguration},
}

// Categories returns the full OWASP Top 10 reference table.
func Categories() []Category {
	return categories
}

// Lookup returns the category with the given ID.
func Lookup(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryFor classifies free-text finding descriptions into a category code.
// First keyword match wins; unmatched text falls back to A05 Security
// Misconfiguration.
func CategoryFor(findingType string) string {
	lower := strings.ToLower(findingType)
	for _, rule := range keywordRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.category
		}
	}
	return DefaultCategory
}
