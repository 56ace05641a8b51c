// Package builder provides fluent construction of workflow and action
// documents, the inverse of the analysis pipeline: what the pipeline
// classifies and validates, the builder produces.
package builder

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bgricker/actionsmith/internal/expr"
	"github.com/bgricker/actionsmith/internal/model"
)

// Workflow accumulates a workflow document. Methods return the receiver so
// calls chain; Build produces the finished model value. Emitted YAML orders
// jobs lexicographically, not in declaration order.
type Workflow struct {
	doc  model.Workflow
	jobs []*Job
}

// NewWorkflow starts a workflow with the given display name.
func NewWorkflow(name string) *Workflow {
	return &Workflow{doc: model.Workflow{Name: name, Jobs: map[string]model.Job{}}}
}

// On appends plain trigger events.
func (w *Workflow) On(events ...string) *Workflow {
	if len(w.doc.On.Config) > 0 {
		for _, event := range events {
			w.doc.On.Config[event] = model.EventConfig{}
		}
		return w
	}
	all := append(w.doc.On.Names(), events...)
	if len(all) == 1 {
		w.doc.On = model.Triggers{Event: all[0]}
	} else {
		w.doc.On = model.Triggers{Events: all}
	}
	return w
}

// OnConfig adds a trigger event with filters, promoting the trigger section
// to its mapping form.
func (w *Workflow) OnConfig(event string, cfg model.EventConfig) *Workflow {
	if w.doc.On.Config == nil {
		config := make(map[string]model.EventConfig)
		for _, name := range w.doc.On.Names() {
			config[name] = model.EventConfig{}
		}
		w.doc.On = model.Triggers{Config: config}
	}
	w.doc.On.Config[event] = cfg
	return w
}

// RunName sets the dynamic run display name.
func (w *Workflow) RunName(name string) *Workflow {
	w.doc.RunName = name
	return w
}

// Permission grants one permission scope.
func (w *Workflow) Permission(scope, level string) *Workflow {
	if w.doc.Permissions == nil {
		w.doc.Permissions = make(map[string]string)
	}
	w.doc.Permissions[scope] = level
	return w
}

// Env sets a workflow-level environment variable.
func (w *Workflow) Env(key, value string) *Workflow {
	if w.doc.Env == nil {
		w.doc.Env = make(map[string]string)
	}
	w.doc.Env[key] = value
	return w
}

// DefaultShell sets the default shell for run steps.
func (w *Workflow) DefaultShell(shell string) *Workflow {
	w.doc.Defaults.Run.Shell = shell
	return w
}

// DefaultWorkingDirectory sets the default working directory for run steps.
func (w *Workflow) DefaultWorkingDirectory(dir string) *Workflow {
	w.doc.Defaults.Run.WorkingDirectory = dir
	return w
}

// Concurrency sets the workflow concurrency group.
func (w *Workflow) Concurrency(group string, cancelInProgress bool) *Workflow {
	w.doc.Concurrency = &model.Concurrency{Group: group, CancelInProgress: cancelInProgress}
	return w
}

// Job adds a job to the workflow. A duplicate id overwrites the earlier job.
func (w *Workflow) Job(job *Job) *Workflow {
	w.jobs = append(w.jobs, job)
	return w
}

// Build assembles the final document.
func (w *Workflow) Build() model.Workflow {
	doc := w.doc
	doc.Jobs = make(map[string]model.Job, len(w.jobs))
	for _, job := range w.jobs {
		doc.Jobs[job.id] = job.build()
	}
	return doc
}

// YAML renders the built workflow as YAML text. Writing it to disk is the
// caller's concern. The trigger key comes out as "on" with quotes: yaml.v3
// quotes strings a YAML 1.1 parser would read as booleans, and GitHub
// accepts both forms.
func (w *Workflow) YAML() (string, error) {
	return marshalYAML(w.Build())
}

// Context derives the workflow-level validation context for expressions
// outside any job.
func (w *Workflow) Context() expr.EnhancedContext {
	doc := w.Build()
	return expr.EnhancedContext{
		Context: expr.Context{
			EventType:     doc.Event(),
			AvailableJobs: doc.JobIDs(),
		},
		Permissions: doc.Permissions,
	}
}

// JobContext derives the validation context for expressions inside the
// given job, including its step ids and matrix.
func (w *Workflow) JobContext(jobID string) (expr.EnhancedContext, error) {
	doc := w.Build()
	job, ok := doc.Jobs[jobID]
	if !ok {
		return expr.EnhancedContext{}, fmt.Errorf("job %q is not defined", jobID)
	}
	ctx := expr.EnhancedContext{
		Context: expr.Context{
			EventType:     doc.Event(),
			AvailableJobs: doc.JobIDs(),
			CurrentJob:    jobID,
			Environment:   job.Environment,
		},
		AvailableSteps: job.StepIDs(),
		Permissions:    doc.Permissions,
	}
	if job.Strategy != nil {
		ctx.Matrix = job.Strategy.Matrix
	}
	return ctx, nil
}

func marshalYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return buf.String(), nil
}
