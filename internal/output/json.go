package output

import (
	"encoding/json"
	"io"

	"github.com/buemura/webscan/internal/report"
)

// JSONFormatter renders the report as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, r *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
