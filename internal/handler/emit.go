package handler

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bgricker/actionsmith/internal/classify"
	"github.com/bgricker/actionsmith/internal/model"
)

// emitWorkflow reverse-engineers a workflow document into Go source that
// rebuilds it through the builder API.
func emitWorkflow(content any, fc classify.FileContext) (string, error) {
	wf, err := decodeAs[model.Workflow](content, fc.Path)
	if err != nil {
		return "", err
	}
	wf.Path = fc.Path

	var b strings.Builder
	fmt.Fprintf(&b, "// Reconstructed from %s.\n", fc.Path)
	fmt.Fprintf(&b, "wf := builder.NewWorkflow(%q)", wf.Name)

	events := wf.On.Names()
	if len(wf.On.Config) > 0 {
		for _, event := range events {
			cfg := wf.On.Config[event]
			if isEmptyEventConfig(cfg) {
				fmt.Fprintf(&b, ".\n\tOn(%q)", event)
			} else {
				fmt.Fprintf(&b, ".\n\tOnConfig(%q, %s)", event, goEventConfig(cfg))
			}
		}
	} else if len(events) > 0 {
		fmt.Fprintf(&b, ".\n\tOn(%s)", quoteList(events))
	}
	for _, scope := range sortedMapKeys(wf.Permissions) {
		fmt.Fprintf(&b, ".\n\tPermission(%q, %q)", scope, wf.Permissions[scope])
	}
	for _, k := range sortedMapKeys(wf.Env) {
		fmt.Fprintf(&b, ".\n\tEnv(%q, %q)", k, wf.Env[k])
	}
	if wf.Defaults.Run.Shell != "" {
		fmt.Fprintf(&b, ".\n\tDefaultShell(%q)", wf.Defaults.Run.Shell)
	}
	if wf.Defaults.Run.WorkingDirectory != "" {
		fmt.Fprintf(&b, ".\n\tDefaultWorkingDirectory(%q)", wf.Defaults.Run.WorkingDirectory)
	}
	if wf.Concurrency != nil {
		fmt.Fprintf(&b, ".\n\tConcurrency(%q, %v)", wf.Concurrency.Group, wf.Concurrency.CancelInProgress)
	}
	b.WriteString("\n")

	for _, jobID := range wf.JobIDs() {
		job := wf.Jobs[jobID]
		fmt.Fprintf(&b, "\n%s := builder.NewJob(%q)", goIdent(jobID), jobID)
		if job.Name != "" && job.Name != jobID {
			fmt.Fprintf(&b, ".\n\tName(%q)", job.Name)
		}
		if len(job.RunsOn) > 0 {
			fmt.Fprintf(&b, ".\n\tRunsOn(%s)", quoteList(job.RunsOn))
		}
		if len(job.Needs) > 0 {
			fmt.Fprintf(&b, ".\n\tNeeds(%s)", quoteList(job.Needs))
		}
		if job.If != "" {
			fmt.Fprintf(&b, ".\n\tIf(%q)", job.If)
		}
		if job.Environment != "" {
			fmt.Fprintf(&b, ".\n\tEnvironment(%q)", job.Environment)
		}
		for _, k := range sortedMapKeys(job.Env) {
			fmt.Fprintf(&b, ".\n\tEnv(%q, %q)", k, job.Env[k])
		}
		if job.Strategy != nil {
			for _, key := range sortedMapKeys(job.Strategy.Matrix) {
				fmt.Fprintf(&b, ".\n\tMatrix(%q, %s)", key, goValueList(job.Strategy.Matrix[key]))
			}
			if job.Strategy.FailFast != nil {
				fmt.Fprintf(&b, ".\n\tFailFast(%v)", *job.Strategy.FailFast)
			}
		}
		for _, step := range job.Steps {
			fmt.Fprintf(&b, ".\n\tStep(%s)", goStep(step))
		}
		b.WriteString("\n")
	}

	for _, jobID := range wf.JobIDs() {
		fmt.Fprintf(&b, "\nwf.Job(%s)", goIdent(jobID))
	}
	b.WriteString("\n")
	return b.String(), nil
}

// emitAction reverse-engineers action metadata into builder Go source.
func emitAction(content any, fc classify.FileContext) (string, error) {
	action, err := decodeAs[model.Action](content, fc.Path)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Reconstructed from %s.\n", fc.Path)
	fmt.Fprintf(&b, "action := builder.NewAction(%q)", action.Name)
	if action.Description != "" {
		fmt.Fprintf(&b, ".\n\tDescription(%q)", action.Description)
	}
	for _, name := range sortedMapKeys(action.Inputs) {
		in := action.Inputs[name]
		fmt.Fprintf(&b, ".\n\tInput(%q, %q, %v, %q)", name, in.Description, in.Required, in.Default)
	}
	for _, name := range sortedMapKeys(action.Outputs) {
		out := action.Outputs[name]
		fmt.Fprintf(&b, ".\n\tOutput(%q, %q, %q)", name, out.Description, out.Value)
	}
	switch {
	case action.Runs.Using == "composite":
		fmt.Fprint(&b, ".\n\tComposite()")
		for _, step := range action.Runs.Steps {
			fmt.Fprintf(&b, ".\n\tStep(%s)", goStep(step))
		}
	default:
		fmt.Fprintf(&b, ".\n\tRuns(%q, %q)", action.Runs.Using, action.Runs.Main)
	}
	b.WriteString("\n")
	return b.String(), nil
}

// emitNormalizedYAML re-marshals the document, producing canonical key
// ordering and quoting.
func emitNormalizedYAML(content any, fc classify.FileContext) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(content); err != nil {
		return "", fmt.Errorf("render %q: %w", fc.Path, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("render %q: %w", fc.Path, err)
	}
	return buf.String(), nil
}

// decodeAs converts an already-parsed document into a typed model value by
// round-tripping through YAML.
func decodeAs[T any](content any, path string) (T, error) {
	var out T
	raw, err := yaml.Marshal(content)
	if err != nil {
		return out, fmt.Errorf("re-encode %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %q: %w", path, err)
	}
	return out, nil
}

func goStep(step model.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "builder.NewStep(%q)", step.Name)
	if step.ID != "" {
		fmt.Fprintf(&b, ".ID(%q)", step.ID)
	}
	if step.If != "" {
		fmt.Fprintf(&b, ".If(%q)", step.If)
	}
	if step.Uses != "" {
		fmt.Fprintf(&b, ".Uses(%q)", step.Uses)
	}
	if step.Run != "" {
		fmt.Fprintf(&b, ".Run(%q)", step.Run)
	}
	for _, k := range sortedMapKeys(step.With) {
		fmt.Fprintf(&b, ".With(%q, %q)", k, step.With[k])
	}
	for _, k := range sortedMapKeys(step.Env) {
		fmt.Fprintf(&b, ".Env(%q, %q)", k, step.Env[k])
	}
	if step.Shell != "" {
		fmt.Fprintf(&b, ".Shell(%q)", step.Shell)
	}
	if step.WorkingDirectory != "" {
		fmt.Fprintf(&b, ".WorkingDirectory(%q)", step.WorkingDirectory)
	}
	return b.String()
}

func goEventConfig(cfg model.EventConfig) string {
	var parts []string
	if len(cfg.Types) > 0 {
		parts = append(parts, fmt.Sprintf("Types: []string{%s}", quoteList(cfg.Types)))
	}
	if len(cfg.Branches) > 0 {
		parts = append(parts, fmt.Sprintf("Branches: []string{%s}", quoteList(cfg.Branches)))
	}
	if len(cfg.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("Tags: []string{%s}", quoteList(cfg.Tags)))
	}
	if len(cfg.Paths) > 0 {
		parts = append(parts, fmt.Sprintf("Paths: []string{%s}", quoteList(cfg.Paths)))
	}
	return "model.EventConfig{" + strings.Join(parts, ", ") + "}"
}

func isEmptyEventConfig(cfg model.EventConfig) bool {
	return len(cfg.Types) == 0 && len(cfg.Branches) == 0 && len(cfg.BranchesIgnore) == 0 &&
		len(cfg.Tags) == 0 && len(cfg.Paths) == 0 && len(cfg.PathsIgnore) == 0
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}

func goValueList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case string:
			parts[i] = fmt.Sprintf("%q", val)
		default:
			parts[i] = fmt.Sprint(val)
		}
	}
	return strings.Join(parts, ", ")
}

// goIdent derives a usable Go identifier from a job id.
func goIdent(id string) string {
	var b strings.Builder
	for i, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "job"
	}
	return b.String()
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
