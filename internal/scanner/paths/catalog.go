package paths

import "github.com/buemura/webscan/pkg/types"

// CatalogEntry is one sensitive path probed during enumeration.
type CatalogEntry struct {
	Path        string
	Description string
	Severity    types.Severity
}

// catalog is the static probe list. Read-only process-wide state.
var catalog = []CatalogEntry{
	// VCS metadata
	{"/.git/config", "Git repository configuration exposed", types.SeverityCritical},
	{"/.git/HEAD", "Git repository metadata exposed", types.SeverityCritical},
	{"/.svn/entries", "Subversion metadata exposed", types.SeverityHigh},
	{"/.hg/requires", "Mercurial metadata exposed", types.SeverityHigh},
	{"/.gitignore", "Gitignore file reveals project structure", types.SeverityLow},

	// Environment / secrets
	{"/.env", "Environment file with potential secrets", types.SeverityCritical},
	{"/.env.local", "Local environment file with potential secrets", types.SeverityCritical},
	{"/.env.backup", "Backup environment file with potential secrets", types.SeverityCritical},
	{"/.aws/credentials", "AWS credentials file", types.SeverityCritical},
	{"/.htpasswd", "HTTP basic auth password file", types.SeverityHigh},
	{"/.htaccess", "Apache configuration file exposed", types.SeverityMedium},
	{"/config.json", "Application configuration file", types.SeverityHigh},
	{"/config.yml", "Application configuration file", types.SeverityHigh},
	{"/settings.py", "Django settings file exposed", types.SeverityHigh},
	{"/web.config", "IIS configuration file exposed", types.SeverityHigh},

	// Admin panels
	{"/admin", "Admin panel reachable", types.SeverityMedium},
	{"/admin/login", "Admin login page reachable", types.SeverityMedium},
	{"/administrator", "Administrator panel reachable", types.SeverityMedium},
	{"/phpmyadmin", "phpMyAdmin panel reachable", types.SeverityHigh},
	{"/wp-admin", "WordPress admin panel reachable", types.SeverityMedium},
	{"/wp-login.php", "WordPress login page reachable", types.SeverityMedium},
	{"/manager/html", "Tomcat manager reachable", types.SeverityHigh},
	{"/console", "Application console reachable", types.SeverityHigh},

	// API documentation
	{"/swagger.json", "Swagger API specification exposed", types.SeverityMedium},
	{"/swagger-ui.html", "Swagger UI exposed", types.SeverityMedium},
	{"/openapi.json", "OpenAPI specification exposed", types.SeverityMedium},
	{"/api-docs", "API documentation exposed", types.SeverityMedium},
	{"/graphql", "GraphQL endpoint reachable", types.SeverityMedium},
	{"/graphiql", "GraphiQL explorer exposed", types.SeverityMedium},
	{"/.well-known/openid-configuration", "OpenID configuration exposed", types.SeverityLow},

	// Backups and dumps
	{"/backup.sql", "SQL dump exposed", types.SeverityCritical},
	{"/dump.sql", "SQL dump exposed", types.SeverityCritical},
	{"/db.sql", "SQL dump exposed", types.SeverityCritical},
	{"/database.sql", "SQL dump exposed", types.SeverityCritical},
	{"/backup.zip", "Backup archive exposed", types.SeverityHigh},
	{"/backup.tar.gz", "Backup archive exposed", types.SeverityHigh},
	{"/site.bak", "Site backup exposed", types.SeverityHigh},
	{"/config.php.bak", "PHP configuration backup exposed", types.SeverityHigh},

	// Framework debug / management endpoints
	{"/actuator", "Spring Boot actuator index exposed", types.SeverityHigh},
	{"/actuator/env", "Spring Boot environment endpoint exposed", types.SeverityCritical},
	{"/actuator/health", "Spring Boot health endpoint exposed", types.SeverityLow},
	{"/actuator/heapdump", "Spring Boot heap dump exposed", types.SeverityCritical},
	{"/debug", "Debug endpoint exposed", types.SeverityHigh},
	{"/debug/pprof/", "Go pprof profiling endpoint exposed", types.SeverityHigh},
	{"/server-status", "Apache server-status page exposed", types.SeverityMedium},
	{"/server-info", "Apache server-info page exposed", types.SeverityMedium},
	{"/phpinfo.php", "phpinfo() output exposed", types.SeverityHigh},
	{"/elmah.axd", "ELMAH error log exposed", types.SeverityHigh},
	{"/trace.axd", "ASP.NET trace handler exposed", types.SeverityHigh},

	// Informational / well-known
	{"/.well-known/security.txt", "security.txt contact file present", types.SeverityInfo},
	{"/crossdomain.xml", "Flash cross-domain policy present", types.SeverityLow},
	{"/sitemap.xml", "Sitemap present", types.SeverityInfo},
	{"/.DS_Store", "macOS directory metadata exposed", types.SeverityLow},
}

// robotsDescription tags candidates discovered via robots.txt directives.
const robotsDescription = "found in robots.txt - may be intentionally hidden"

// maxRobotsCandidates caps how many robots.txt-derived paths are probed.
const maxRobotsCandidates = 20

// Catalog returns the static sensitive-path probe list.
func Catalog() []CatalogEntry {
	return catalog
}
