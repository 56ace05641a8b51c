package builder

import "github.com/bgricker/actionsmith/internal/model"

// Step accumulates one workflow or composite-action step.
type Step struct {
	doc model.Step
}

// NewStep starts a step with the given display name.
func NewStep(name string) *Step {
	return &Step{doc: model.Step{Name: name}}
}

// ID sets the step id other steps reference through the steps context.
func (s *Step) ID(id string) *Step {
	s.doc.ID = id
	return s
}

// If sets the step condition expression.
func (s *Step) If(condition string) *Step {
	s.doc.If = condition
	return s
}

// Uses makes this an action-reference step.
func (s *Step) Uses(ref string) *Step {
	s.doc.Uses = ref
	return s
}

// Run makes this a shell step.
func (s *Step) Run(command string) *Step {
	s.doc.Run = command
	return s
}

// With passes one input to the referenced action.
func (s *Step) With(key, value string) *Step {
	if s.doc.With == nil {
		s.doc.With = make(map[string]string)
	}
	s.doc.With[key] = value
	return s
}

// Env sets a step-level environment variable.
func (s *Step) Env(key, value string) *Step {
	if s.doc.Env == nil {
		s.doc.Env = make(map[string]string)
	}
	s.doc.Env[key] = value
	return s
}

// Shell overrides the shell for this step.
func (s *Step) Shell(shell string) *Step {
	s.doc.Shell = shell
	return s
}

// WorkingDirectory overrides the working directory for this step.
func (s *Step) WorkingDirectory(dir string) *Step {
	s.doc.WorkingDirectory = dir
	return s
}
