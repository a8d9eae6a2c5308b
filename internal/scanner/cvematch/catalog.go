package cvematch

import "github.com/buemura/webscan/pkg/types"

// CVEEntry is one known vulnerability affecting an exact product version.
type CVEEntry struct {
	ID          string
	Severity    types.Severity
	Description string
}

// Product is the curated vulnerability data for one product key. Keys are
// matched as case-insensitive substrings of detected technology strings.
type Product struct {
	// DisplayName is used in finding titles ("Outdated Nginx Version").
	DisplayName string
	// ByVersion maps exact version strings to known CVEs.
	ByVersion map[string][]CVEEntry
	// OutdatedBelow, when non-empty, flags any strictly lower detected
	// version as generically outdated.
	OutdatedBelow string
	// OutdatedNote explains the generic outdated finding.
	OutdatedNote string
}

// catalog is read-only process-wide reference data, loaded once.
var catalog = map[string]Product{
	"apache": {
		DisplayName: "Apache",
		ByVersion: map[string][]CVEEntry{
			"2.4.49": {
				{"CVE-2021-41773", types.SeverityCritical, "Path traversal and remote code execution in Apache HTTP Server 2.4.49."},
				{"CVE-2021-42013", types.SeverityCritical, "Incomplete fix for CVE-2021-41773 allowing path traversal and RCE."},
			},
			"2.4.50": {
				{"CVE-2021-42013", types.SeverityCritical, "Path traversal and remote code execution in Apache HTTP Server 2.4.50."},
			},
		},
		OutdatedBelow: "2.4.58",
		OutdatedNote:  "Apache HTTP Server releases before 2.4.58 miss multiple security fixes.",
	},
	"nginx": {
		DisplayName: "Nginx",
		ByVersion: map[string][]CVEEntry{
			"1.3.9": {
				{"CVE-2013-2028", types.SeverityCritical, "Stack buffer overflow in nginx chunked transfer decoding."},
			},
			"1.20.0": {
				{"CVE-2021-23017", types.SeverityHigh, "Off-by-one heap write in the nginx DNS resolver."},
			},
		},
		OutdatedBelow: "1.25.0",
		OutdatedNote:  "Nginx releases before 1.25.0 are outside the current stable branch.",
	},
	"openssl": {
		DisplayName: "OpenSSL",
		ByVersion: map[string][]CVEEntry{
			"1.0.1": {
				{"CVE-2014-0160", types.SeverityCritical, "Heartbleed: TLS heartbeat read overrun discloses process memory."},
			},
			"3.0.0": {
				{"CVE-2022-3602", types.SeverityHigh, "X.509 email address punycode buffer overflow."},
			},
		},
		OutdatedBelow: "3.0.0",
		OutdatedNote:  "OpenSSL releases before 3.0 are end-of-life or close to it.",
	},
	"wordpress": {
		DisplayName: "WordPress",
		ByVersion: map[string][]CVEEntry{
			"5.8.2": {
				{"CVE-2022-21661", types.SeverityHigh, "SQL injection through WP_Query in WordPress core."},
			},
		},
		OutdatedBelow: "6.0.0",
		OutdatedNote:  "WordPress releases before 6.0 no longer receive full support.",
	},
	"php": {
		DisplayName: "PHP",
		ByVersion: map[string][]CVEEntry{
			"8.1.0": {
				{"CVE-2022-31626", types.SeverityHigh, "Buffer overflow in the PHP mysqlnd driver."},
			},
		},
		OutdatedBelow: "8.1.0",
		OutdatedNote:  "PHP releases before 8.1 are end-of-life.",
	},
	"jquery": {
		DisplayName: "jQuery",
		ByVersion: map[string][]CVEEntry{
			"1.12.4": {
				{"CVE-2020-11022", types.SeverityMedium, "XSS via HTML passed to jQuery DOM manipulation methods."},
			},
		},
		OutdatedBelow: "3.5.0",
		OutdatedNote:  "jQuery releases before 3.5.0 contain known XSS issues in DOM manipulation.",
	},
}

// Catalog returns the curated product vulnerability table.
func Catalog() map[string]Product {
	return catalog
}
