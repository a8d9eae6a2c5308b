// Package urlguard is the SSRF control boundary for every outbound request
// the engine makes. Callers must validate each URL, including URLs built by
// joining a base with a catalog path, form actions, and redirect targets,
// and skip the request entirely on rejection.
package urlguard

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// blockedHosts are hostnames that must never be fetched: loopback aliases
// and cloud metadata endpoints.
var blockedHosts = map[string]bool{
	"localhost":                true,
	"0.0.0.0":                  true,
	"metadata.google.internal": true,
	"metadata.aws.internal":    true,
}

// blockedPrefixes catch private-range literals without needing a full IP
// parse, covering sloppy inputs like "10.0.0.5:8080".
var blockedPrefixes = []string{
	"10.",
	"192.168.",
	"169.254.",
}

// Validate checks that rawURL is safe to fetch. It returns the URL unchanged
// on success, or an error naming the rejection reason. The check is pure: no
// DNS lookups, no network traffic.
func Validate(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("unparseable URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("scheme %q not allowed (http/https only)", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("URL has no hostname")
	}

	if blockedHosts[host] {
		return "", fmt.Errorf("host %q is blocked (loopback/metadata target)", host)
	}

	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(host, prefix) {
			return "", fmt.Errorf("host %q is in a private address range", host)
		}
	}

	if ip := net.ParseIP(host); ip != nil {
		if err := checkIP(ip); err != nil {
			return "", err
		}
	}

	return rawURL, nil
}

// Join resolves path against base and validates the result, so catalog paths
// cannot smuggle the probe onto another host.
func Join(base, path string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("unparseable base URL: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("unparseable path %q: %w", path, err)
	}
	return Validate(baseURL.ResolveReference(ref).String())
}

func checkIP(ip net.IP) error {
	switch {
	case ip.IsLoopback():
		return fmt.Errorf("IP %s is a loopback address", ip)
	case ip.IsPrivate():
		return fmt.Errorf("IP %s is a private address", ip)
	case ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast():
		return fmt.Errorf("IP %s is link-local", ip)
	case ip.IsUnspecified():
		return fmt.Errorf("IP %s is unspecified", ip)
	case ip.IsMulticast():
		return fmt.Errorf("IP %s is multicast", ip)
	}
	return nil
}
