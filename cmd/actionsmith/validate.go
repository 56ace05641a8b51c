package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bgricker/actionsmith/internal/classify"
	"github.com/bgricker/actionsmith/internal/config"
	"github.com/bgricker/actionsmith/internal/expr"
	"github.com/bgricker/actionsmith/internal/filter"
	"github.com/bgricker/actionsmith/internal/model"
	"github.com/bgricker/actionsmith/internal/output"
	"github.com/bgricker/actionsmith/internal/report"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate template expressions inside workflow files",
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := resolvePaths(root, cfg, args)
	if err != nil {
		return err
	}

	jobPatterns, err := filter.Compile(cfg.Jobs)
	if err != nil {
		return err
	}

	var findings []report.ExpressionFinding
	var warnings []string
	for _, path := range paths {
		fileFindings, fileWarnings, err := validateWorkflowFile(root, path, jobPatterns)
		if err != nil {
			return err
		}
		findings = append(findings, fileFindings...)
		warnings = append(warnings, fileWarnings...)
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		if err := renderer.RenderFindings(findings); err != nil {
			return err
		}
		for _, msg := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
		}
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(output.Report{Findings: findings, Warnings: warnings}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	failed := 0
	for _, f := range findings {
		if len(f.Errors) > 0 || (cfg.Strict && len(f.Suggestions) > 0) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed validation", failed)
	}
	return nil
}

// validateWorkflowFile extracts every template expression from one workflow
// and validates it against the workflow's own job graph. Non-workflow files
// are skipped with a warning rather than an error, so a mixed discovery set
// stays usable.
func validateWorkflowFile(root, path string, jobPatterns []filter.Pattern) ([]report.ExpressionFinding, []string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(root, path)
	}
	raw, err := os.ReadFile(full)
	if err != nil {
		return nil, nil, fmt.Errorf("read %q: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse %q: %w", path, err)
	}
	if kind := classify.Classify(classify.NewFileContext(path, doc)); kind != classify.KindWorkflow {
		return nil, []string{fmt.Sprintf("%s: skipped (%s is not a workflow)", path, kind)}, nil
	}

	wf, decodeWarnings, err := model.DecodeWorkflow(bytes.NewReader(raw), path)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	for _, w := range decodeWarnings {
		warnings = append(warnings, fmt.Sprintf("%s:%s: %s", w.File, w.Job, w.Message))
	}

	selectedJobs := make(map[string]bool)
	for _, id := range filter.JobIDs(wf, jobPatterns) {
		selectedJobs[id] = true
	}

	var findings []report.ExpressionFinding
	for _, found := range expr.Extract(doc) {
		jobID := jobScope(found.Field)
		if jobID != "" && !selectedJobs[jobID] {
			continue
		}
		res := expr.ValidateInWorkflow(found.Raw, workflowContext(wf, jobID))
		findings = append(findings, report.ExpressionFinding{
			File:        path,
			Job:         jobID,
			Field:       found.Field,
			Expression:  found.Raw,
			Errors:      res.Errors,
			Suggestions: res.Suggestions,
		})
	}
	return findings, warnings, nil
}

// workflowContext assembles the validation context for an expression found
// at workflow scope (empty jobID) or inside a specific job.
func workflowContext(wf model.Workflow, jobID string) expr.EnhancedContext {
	ctx := expr.EnhancedContext{
		Context: expr.Context{
			EventType:     wf.Event(),
			AvailableJobs: wf.JobIDs(),
		},
		Permissions: wf.Permissions,
	}
	if jobID == "" {
		return ctx
	}
	job, ok := wf.Jobs[jobID]
	if !ok {
		return ctx
	}
	ctx.CurrentJob = jobID
	ctx.Environment = job.Environment
	ctx.AvailableSteps = job.StepIDs()
	if job.Strategy != nil {
		ctx.Matrix = job.Strategy.Matrix
	}
	return ctx
}

// jobScope extracts the job id from a dotted field path like
// jobs.build.steps[0].run; workflow-scope fields return "".
func jobScope(field string) string {
	if !strings.HasPrefix(field, "jobs.") {
		return ""
	}
	rest := strings.TrimPrefix(field, "jobs.")
	if i := strings.IndexAny(rest, ".["); i >= 0 {
		return rest[:i]
	}
	return rest
}
