package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bgricker/actionsmith/internal/report"
)

// PrettyRenderer renders results in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

// RenderResults shows per-file processing outcomes with a summary line.
func (p *PrettyRenderer) RenderResults(results []report.FileResult, summary report.Summary) error {
	for _, res := range results {
		glyph := statusGlyph(res.Status)
		if _, err := fmt.Fprintf(p.out, "%s %s [%s] (%s)\n", glyph, res.Path, res.Kind, formatDuration(res.Duration)); err != nil {
			return err
		}
		if res.Failed() {
			if _, err := fmt.Fprintf(p.out, "    %s: %s\n", res.Phase, indent(res.Error, "    ")); err != nil {
				return err
			}
		}
		for _, w := range res.Warnings {
			if _, err := fmt.Fprintf(p.out, "    warning: %s\n", w); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(p.out, "SUMMARY: %d passed, %d failed of %d files (%s)\n",
		summary.Passed, summary.Failed, summary.TotalFiles, formatDuration(summary.Duration))
	return err
}

// RenderKinds lists classification results for inspect mode.
func (p *PrettyRenderer) RenderKinds(results []report.FileResult) error {
	for _, res := range results {
		if _, err := fmt.Fprintf(p.out, "%-20s %s\n", res.Kind, res.Path); err != nil {
			return err
		}
	}
	return nil
}

// RenderFindings shows expression validation findings grouped by file.
func (p *PrettyRenderer) RenderFindings(findings []report.ExpressionFinding) error {
	var currentFile string
	clean := true
	for _, f := range findings {
		if f.Clean() {
			continue
		}
		clean = false
		if f.File != currentFile {
			currentFile = f.File
			if _, err := fmt.Fprintf(p.out, "%s\n", f.File); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(p.out, "  %s: %s\n", f.Field, f.Expression); err != nil {
			return err
		}
		for _, msg := range f.Errors {
			if _, err := fmt.Fprintf(p.out, "    error: %s\n", msg); err != nil {
				return err
			}
		}
		for _, msg := range f.Suggestions {
			if _, err := fmt.Fprintf(p.out, "    hint: %s\n", msg); err != nil {
				return err
			}
		}
	}
	if clean {
		_, err := fmt.Fprintln(p.out, "All expressions valid")
		return err
	}
	return nil
}

func statusGlyph(status string) string {
	switch status {
	case report.StatusPassed:
		return "✓"
	case report.StatusFailed:
		return "✗"
	default:
		return "?"
	}
}

func indent(s, pad string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Truncate(time.Millisecond).String()
}
