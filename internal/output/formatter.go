// Package output renders an assembled report in the supported formats.
package output

import (
	"fmt"
	"io"

	"github.com/buemura/webscan/internal/report"
)

// Formatter renders a report to a writer.
type Formatter interface {
	Format(w io.Writer, r *report.Report) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, json, markdown, html)", format)
	}
}
