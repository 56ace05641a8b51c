package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/actionsmith/internal/report"
)

// JSONRenderer emits structured result data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures the JSON output schema.
type Report struct {
	Results  []report.FileResult        `json:"results,omitempty"`
	Findings []report.ExpressionFinding `json:"findings,omitempty"`
	Summary  *report.Summary            `json:"summary,omitempty"`
	Warnings []string                   `json:"warnings,omitempty"`
}

// Render encodes the report as indented JSON.
func (j *JSONRenderer) Render(r Report) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
