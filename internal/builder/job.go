package builder

import "github.com/bgricker/actionsmith/internal/model"

// Job accumulates one workflow job.
type Job struct {
	id    string
	doc   model.Job
	steps []*Step
}

// NewJob starts a job with the given identifier.
func NewJob(id string) *Job {
	return &Job{id: id}
}

// ID returns the job identifier.
func (j *Job) ID() string { return j.id }

// Name sets the display name; the id is used when unset.
func (j *Job) Name(name string) *Job {
	j.doc.Name = name
	return j
}

// RunsOn sets the runner labels.
func (j *Job) RunsOn(labels ...string) *Job {
	j.doc.RunsOn = append(j.doc.RunsOn, labels...)
	return j
}

// Needs declares upstream job dependencies.
func (j *Job) Needs(jobIDs ...string) *Job {
	j.doc.Needs = append(j.doc.Needs, jobIDs...)
	return j
}

// If sets the job-level condition expression.
func (j *Job) If(condition string) *Job {
	j.doc.If = condition
	return j
}

// Environment sets the deployment environment.
func (j *Job) Environment(name string) *Job {
	j.doc.Environment = name
	return j
}

// Permission grants one permission scope on the job.
func (j *Job) Permission(scope, level string) *Job {
	if j.doc.Permissions == nil {
		j.doc.Permissions = make(map[string]string)
	}
	j.doc.Permissions[scope] = level
	return j
}

// Env sets a job-level environment variable.
func (j *Job) Env(key, value string) *Job {
	if j.doc.Env == nil {
		j.doc.Env = make(map[string]string)
	}
	j.doc.Env[key] = value
	return j
}

// Matrix adds one matrix dimension.
func (j *Job) Matrix(key string, values ...any) *Job {
	if j.doc.Strategy == nil {
		j.doc.Strategy = &model.Strategy{}
	}
	if j.doc.Strategy.Matrix == nil {
		j.doc.Strategy.Matrix = make(map[string][]any)
	}
	j.doc.Strategy.Matrix[key] = append(j.doc.Strategy.Matrix[key], values...)
	return j
}

// FailFast sets the matrix fail-fast flag explicitly.
func (j *Job) FailFast(failFast bool) *Job {
	if j.doc.Strategy == nil {
		j.doc.Strategy = &model.Strategy{}
	}
	j.doc.Strategy.FailFast = &failFast
	return j
}

// Step appends a step.
func (j *Job) Step(step *Step) *Job {
	j.steps = append(j.steps, step)
	return j
}

func (j *Job) build() model.Job {
	doc := j.doc
	if doc.Name == "" {
		doc.Name = j.id
	}
	doc.Steps = make([]model.Step, 0, len(j.steps))
	for _, step := range j.steps {
		doc.Steps = append(doc.Steps, step.doc)
	}
	return doc
}
