package report

import (
	"strings"

	"github.com/buemura/webscan/internal/owasp"
	"github.com/buemura/webscan/pkg/types"
)

// findingMarker opens a new finding block in analyst free text.
const findingMarker = "### FINDING:"

// fieldMarkers maps the bolded field labels to accumulator slots.
var fieldMarkers = []string{
	"Severity",
	"OWASP",
	"Location",
	"Description",
	"Evidence",
	"Recommendation",
}

// accumulator collects one finding block while the parser walks the input.
type accumulator struct {
	title  string
	fields map[string]string
	// active is the last field marker seen; bare lines append to it.
	active string
}

// ParseFindings recovers findings from free-text analyst or LLM output. The
// expected shape is a "### FINDING: <title>" marker followed by
// "**Field:** value" lines; bare lines continue the most recent field,
// newline-joined, so multi-paragraph values survive. Text before the first
// marker is discarded.
func ParseFindings(text string) []types.Finding {
	var findings []types.Finding
	var acc *accumulator

	flush := func() {
		if acc == nil {
			return
		}
		findings = append(findings, acc.finding())
		acc = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, findingMarker) {
			flush()
			acc = &accumulator{
				title:  strings.TrimSpace(strings.TrimPrefix(trimmed, findingMarker)),
				fields: make(map[string]string),
			}
			continue
		}

		if acc == nil {
			continue
		}

		if field, value, ok := matchFieldMarker(trimmed); ok {
			acc.fields[field] = value
			acc.active = field
			continue
		}

		if acc.active != "" && trimmed != "" {
			existing := acc.fields[acc.active]
			if existing == "" {
				acc.fields[acc.active] = trimmed
			} else {
				acc.fields[acc.active] = existing + "\n" + trimmed
			}
		}
	}

	flush()
	return findings
}

// matchFieldMarker recognizes "**Field:** value" lines for the known fields.
func matchFieldMarker(line string) (field, value string, ok bool) {
	for _, f := range fieldMarkers {
		prefix := "**" + f + ":**"
		if strings.HasPrefix(line, prefix) {
			return f, strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return "", "", false
}

// finding converts the accumulator into a Finding. A missing OWASP field is
// filled by keyword lookup over the title and description.
func (a *accumulator) finding() types.Finding {
	category := strings.TrimSpace(a.fields["OWASP"])
	if category == "" {
		category = owasp.CategoryFor(a.title + " " + a.fields["Description"])
	}
	return types.Finding{
		Title:         a.title,
		Severity:      types.ParseSeverity(a.fields["Severity"]),
		OWASPCategory: category,
		Location:      a.fields["Location"],
		Description:   a.fields["Description"],
		Evidence:      a.fields["Evidence"],
		Remediation:   a.fields["Recommendation"],
		Metadata:      map[string]string{"source": "analyst"},
	}
}
