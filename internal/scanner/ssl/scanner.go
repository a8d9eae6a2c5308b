// Package ssl inspects the target's TLS configuration: protocol version,
// cipher suite, and certificate health.
package ssl

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/buemura/webscan/internal/owasp"
	"github.com/buemura/webscan/internal/scanner"
	"github.com/buemura/webscan/pkg/types"
)

// Scanner performs SSL/TLS configuration checks against a target.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

func (s *Scanner) Name() string        { return "tls" }
func (s *Scanner) Description() string { return "TLS configuration and certificate checks" }

func (s *Scanner) Run(ctx context.Context, target types.Target, opts scanner.Options) (*types.ScanResult, error) {
	result := &types.ScanResult{
		ScannerName: s.Name(),
		Target:      target,
		StartedAt:   time.Now(),
	}

	port := resolvePort(target)
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	addr := net.JoinHostPort(target.Host, strconv.Itoa(port))

	dialer := &net.Dialer{Timeout: timeout}
	// Verification is disabled so invalid certificates can be inspected and
	// reported instead of aborting the handshake.
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{
		InsecureSkipVerify: true,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("TLS connection to %s failed: %v", addr, err))
		result.CompletedAt = time.Now()
		return result, nil
	}
	defer conn.Close()

	state := conn.ConnectionState()

	result.Findings = append(result.Findings, checkTLSVersion(state, addr)...)
	result.Findings = append(result.Findings, checkCipherSuite(state, addr)...)

	if len(state.PeerCertificates) > 0 {
		cert := state.PeerCertificates[0]
		result.Findings = append(result.Findings, checkCertExpiration(cert, addr)...)
		result.Findings = append(result.Findings, checkCertHostname(cert, target.Host, addr)...)
		result.Findings = append(result.Findings, checkSelfSigned(cert, state.PeerCertificates, addr)...)
	}

	result.Stats = types.ScanStats{Elapsed: time.Since(result.StartedAt)}
	result.CompletedAt = time.Now()
	return result, nil
}

func resolvePort(target types.Target) int {
	if len(target.Ports) > 0 {
		return target.Ports[0]
	}
	return 443
}

func checkTLSVersion(state tls.ConnectionState, addr string) []types.Finding {
	versionName := tlsVersionName(state.Version)
	if state.Version > tls.VersionTLS11 {
		return nil
	}
	return []types.Finding{{
		Title:         fmt.Sprintf("Deprecated TLS version: %s", versionName),
		Severity:      types.SeverityHigh,
		OWASPCategory: owasp.CryptographicFailure,
		Location:      addr,
		Description:   fmt.Sprintf("The server negotiated %s, which is deprecated and insecure.", versionName),
		Evidence:      fmt.Sprintf("Negotiated protocol version: %s", versionName),
		Snapshot:      types.RawEvidence("TLS handshake", fmt.Sprintf("%s negotiated %s", addr, versionName)),
		Remediation:   "Disable TLS 1.0 and TLS 1.1. Configure the server to support TLS 1.2 or higher.",
		Metadata:      map[string]string{"check": "tls", "tls_version": versionName},
	}}
}

func checkCipherSuite(state tls.ConnectionState, addr string) []types.Finding {
	cipherID := state.CipherSuite
	cipherName := tls.CipherSuiteName(cipherID)
	if !isWeakCipher(cipherID) {
		return nil
	}
	return []types.Finding{{
		Title:         fmt.Sprintf("Weak cipher suite: %s", cipherName),
		Severity:      types.SeverityMedium,
		OWASPCategory: owasp.CryptographicFailure,
		Location:      addr,
		Description:   fmt.Sprintf("The server negotiated cipher suite %s, which is considered weak.", cipherName),
		Evidence:      fmt.Sprintf("Negotiated cipher suite: %s (0x%04x)", cipherName, cipherID),
		Snapshot:      types.RawEvidence("TLS handshake", fmt.Sprintf("%s negotiated %s", addr, cipherName)),
		Remediation:   "Configure the server to use strong cipher suites such as AES-GCM or ChaCha20-Poly1305.",
		Metadata:      map[string]string{"check": "tls", "cipher_suite": cipherName},
	}}
}

func checkCertExpiration(cert *x509.Certificate, addr string) []types.Finding {
	now := time.Now()

	if now.After(cert.NotAfter) {
		return []types.Finding{{
			Title:         "Certificate expired",
			Severity:      types.SeverityHigh,
			OWASPCategory: owasp.CryptographicFailure,
			Location:      addr,
			Description:   fmt.Sprintf("The certificate expired on %s.", cert.NotAfter.Format(time.RFC3339)),
			Evidence:      fmt.Sprintf("NotAfter: %s", cert.NotAfter.Format(time.RFC3339)),
			Snapshot:      types.RawEvidence("certificate", certSummary(cert)),
			Remediation:   "Renew the SSL/TLS certificate immediately.",
			Metadata: map[string]string{
				"check":     "tls",
				"not_after": cert.NotAfter.Format(time.RFC3339),
				"subject":   cert.Subject.CommonName,
			},
		}}
	}

	daysUntilExpiry := int(time.Until(cert.NotAfter).Hours() / 24)
	if daysUntilExpiry > 30 {
		return nil
	}
	return []types.Finding{{
		Title:         fmt.Sprintf("Certificate expires in %d days", daysUntilExpiry),
		Severity:      types.SeverityMedium,
		OWASPCategory: owasp.CryptographicFailure,
		Location:      addr,
		Description: fmt.Sprintf("The certificate will expire on %s (%d days remaining).",
			cert.NotAfter.Format(time.RFC3339), daysUntilExpiry),
		Evidence:    fmt.Sprintf("NotAfter: %s", cert.NotAfter.Format(time.RFC3339)),
		Snapshot:    types.RawEvidence("certificate", certSummary(cert)),
		Remediation: "Renew the SSL/TLS certificate before it expires.",
		Metadata: map[string]string{
			"check":             "tls",
			"not_after":         cert.NotAfter.Format(time.RFC3339),
			"days_until_expiry": strconv.Itoa(daysUntilExpiry),
			"subject":           cert.Subject.CommonName,
		},
	}}
}

func checkCertHostname(cert *x509.Certificate, hostname, addr string) []types.Finding {
	if err := cert.VerifyHostname(hostname); err == nil {
		return nil
	}
	return []types.Finding{{
		Title:         "Certificate hostname mismatch",
		Severity:      types.SeverityHigh,
		OWASPCategory: owasp.CryptographicFailure,
		Location:      addr,
		Description:   fmt.Sprintf("The certificate does not cover hostname %q.", hostname),
		Evidence: fmt.Sprintf("Expected: %s, Certificate CN: %s, SANs: %v",
			hostname, cert.Subject.CommonName, cert.DNSNames),
		Snapshot:    types.RawEvidence("certificate", certSummary(cert)),
		Remediation: "Obtain a certificate that covers the target hostname.",
		Metadata: map[string]string{
			"check":       "tls",
			"hostname":    hostname,
			"common_name": cert.Subject.CommonName,
			"san_names":   strings.Join(cert.DNSNames, ", "),
		},
	}}
}

func checkSelfSigned(cert *x509.Certificate, chain []*x509.Certificate, addr string) []types.Finding {
	// A self-signed certificate has the same subject and issuer,
	// and the chain has only one certificate.
	if cert.Issuer.CommonName != cert.Subject.CommonName || len(chain) != 1 {
		return nil
	}
	return []types.Finding{{
		Title:         "Self-signed certificate",
		Severity:      types.SeverityMedium,
		OWASPCategory: owasp.CryptographicFailure,
		Location:      addr,
		Description:   fmt.Sprintf("The certificate for %s is self-signed.", cert.Subject.CommonName),
		Evidence:      fmt.Sprintf("Issuer: %s, Subject: %s", cert.Issuer.CommonName, cert.Subject.CommonName),
		Snapshot:      types.RawEvidence("certificate", certSummary(cert)),
		Remediation:   "Use a certificate issued by a trusted Certificate Authority (CA).",
		Metadata: map[string]string{
			"check":   "tls",
			"issuer":  cert.Issuer.CommonName,
			"subject": cert.Subject.CommonName,
		},
	}}
}

func certSummary(cert *x509.Certificate) string {
	return fmt.Sprintf("Subject: %s, Issuer: %s, NotBefore: %s, NotAfter: %s",
		cert.Subject.CommonName, cert.Issuer.CommonName,
		cert.NotBefore.Format(time.RFC3339), cert.NotAfter.Format(time.RFC3339))
}

func tlsVersionName(version uint16) string {
	switch version {
	case tls.VersionTLS10:
		return "TLS 1.0"
	case tls.VersionTLS11:
		return "TLS 1.1"
	case tls.VersionTLS12:
		return "TLS 1.2"
	case tls.VersionTLS13:
		return "TLS 1.3"
	default:
		return fmt.Sprintf("unknown (0x%04x)", version)
	}
}

// isWeakCipher returns true for cipher suites considered weak.
func isWeakCipher(id uint16) bool {
	for _, suite := range tls.InsecureCipherSuites() {
		if suite.ID == id {
			return true
		}
	}
	return false
}
