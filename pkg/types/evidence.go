package types

// EvidenceKind discriminates the shape of an EvidenceSnapshot. The kind tag
// drives rendering; renderers switch on it rather than sniffing fields.
type EvidenceKind string

const (
	// EvidenceHTTPResponse captures a request line plus the response that
	// proved an injection finding.
	EvidenceHTTPResponse EvidenceKind = "http_response"
	// EvidenceExposedPath captures a probe against a sensitive path,
	// including filtered response headers and a body preview.
	EvidenceExposedPath EvidenceKind = "exposed_path"
	// EvidenceHTTPHeaders captures response headers only.
	EvidenceHTTPHeaders EvidenceKind = "http_headers"
	// EvidenceRaw is the opaque fallback for any other evidence shape.
	EvidenceRaw EvidenceKind = "raw"
)

// EvidenceSnapshot is the captured request/response artifact backing a
// finding. Which fields are meaningful depends on Kind.
type EvidenceSnapshot struct {
	Kind        EvidenceKind      `json:"kind"`
	Label       string            `json:"label,omitempty"`
	Request     string            `json:"request,omitempty"`
	Status      int               `json:"status,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	BodySnippet string            `json:"body_snippet,omitempty"`
	Raw         string            `json:"raw,omitempty"`
}

// HTTPResponseEvidence builds an http_response snapshot.
func HTTPResponseEvidence(label, request string, status int, bodySnippet string) *EvidenceSnapshot {
	return &EvidenceSnapshot{
		Kind:        EvidenceHTTPResponse,
		Label:       label,
		Request:     request,
		Status:      status,
		BodySnippet: bodySnippet,
	}
}

// ExposedPathEvidence builds an exposed_path snapshot.
func ExposedPathEvidence(label, request string, status int, headers map[string]string, bodyPreview string) *EvidenceSnapshot {
	return &EvidenceSnapshot{
		Kind:        EvidenceExposedPath,
		Label:       label,
		Request:     request,
		Status:      status,
		Headers:     headers,
		BodySnippet: bodyPreview,
	}
}

// HTTPHeadersEvidence builds an http_headers snapshot.
func HTTPHeadersEvidence(headers map[string]string) *EvidenceSnapshot {
	return &EvidenceSnapshot{
		Kind:    EvidenceHTTPHeaders,
		Headers: headers,
	}
}

// RawEvidence builds a raw snapshot around an opaque payload.
func RawEvidence(label, payload string) *EvidenceSnapshot {
	return &EvidenceSnapshot{
		Kind:  EvidenceRaw,
		Label: label,
		Raw:   payload,
	}
}
