package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bgricker/actionsmith/internal/report"
)

func TestRenderResults(t *testing.T) {
	var buf bytes.Buffer
	r := NewPretty(&buf)

	results := []report.FileResult{
		{
			Path: "ci.yml", Kind: "gha-workflow", Status: report.StatusPassed,
			Warnings: []string{`build: Checkout: action reference "actions/checkout" is not pinned to a version`},
			Duration: 12 * time.Millisecond,
		},
		{Path: "bad.yml", Kind: "unknown", Status: report.StatusFailed, Phase: "parse", Error: "parse yaml: oops"},
	}
	summary := report.Summary{TotalFiles: 2, Passed: 1, Failed: 1, Duration: 30 * time.Millisecond}

	if err := r.RenderResults(results, summary); err != nil {
		t.Fatalf("RenderResults: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"✓ ci.yml [gha-workflow] (12ms)",
		`warning: build: Checkout: action reference "actions/checkout" is not pinned to a version`,
		"✗ bad.yml [unknown]",
		"parse: parse yaml: oops",
		"SUMMARY: 1 passed, 1 failed of 2 files (30ms)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderKinds(t *testing.T) {
	var buf bytes.Buffer
	r := NewPretty(&buf)

	err := r.RenderKinds([]report.FileResult{
		{Path: ".github/FUNDING.yml", Kind: "github-funding"},
		{Path: "action.yml", Kind: "gha-action"},
	})
	if err != nil {
		t.Fatalf("RenderKinds: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "github-funding") || !strings.Contains(out, ".github/FUNDING.yml") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRenderFindings(t *testing.T) {
	var buf bytes.Buffer
	r := NewPretty(&buf)

	findings := []report.ExpressionFinding{
		{File: "ci.yml", Field: "jobs.build.steps[0].run", Expression: "${{ github.sha }}"},
		{
			File:        "ci.yml",
			Field:       "jobs.build.if",
			Expression:  "${{ foo.bar }}",
			Errors:      []string{`unknown context "foo"`},
			Suggestions: []string{"valid contexts: env, github"},
		},
	}
	if err := r.RenderFindings(findings); err != nil {
		t.Fatalf("RenderFindings: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `error: unknown context "foo"`) {
		t.Errorf("missing error line:\n%s", out)
	}
	if !strings.Contains(out, "hint: valid contexts") {
		t.Errorf("missing hint line:\n%s", out)
	}
	// Clean findings are suppressed.
	if strings.Contains(out, "github.sha") {
		t.Errorf("clean finding rendered:\n%s", out)
	}
}

func TestRenderFindingsAllClean(t *testing.T) {
	var buf bytes.Buffer
	r := NewPretty(&buf)

	findings := []report.ExpressionFinding{
		{File: "ci.yml", Field: "jobs.build.if", Expression: "${{ github.sha }}"},
	}
	if err := r.RenderFindings(findings); err != nil {
		t.Fatalf("RenderFindings: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "All expressions valid" {
		t.Errorf("output = %q", got)
	}
}

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSON(&buf)

	err := r.Render(Report{
		Results: []report.FileResult{{Path: "ci.yml", Kind: "gha-workflow", Status: report.StatusPassed}},
		Summary: &report.Summary{TotalFiles: 1, Passed: 1},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["results"]; !ok {
		t.Error("missing results key")
	}
	summary, ok := decoded["summary"].(map[string]any)
	if !ok {
		t.Fatal("missing summary object")
	}
	if summary["total_files"] != float64(1) {
		t.Errorf("total_files = %v", summary["total_files"])
	}
}
