package builder

import "github.com/bgricker/actionsmith/internal/model"

// Action accumulates an action.yml metadata document.
type Action struct {
	doc   model.Action
	steps []*Step
}

// NewAction starts an action with the given name.
func NewAction(name string) *Action {
	return &Action{doc: model.Action{Name: name}}
}

// Description sets the action description.
func (a *Action) Description(description string) *Action {
	a.doc.Description = description
	return a
}

// Input declares one action input.
func (a *Action) Input(name, description string, required bool, defaultValue string) *Action {
	if a.doc.Inputs == nil {
		a.doc.Inputs = make(map[string]model.ActionInput)
	}
	a.doc.Inputs[name] = model.ActionInput{
		Description: description,
		Required:    required,
		Default:     defaultValue,
	}
	return a
}

// Output declares one action output.
func (a *Action) Output(name, description, value string) *Action {
	if a.doc.Outputs == nil {
		a.doc.Outputs = make(map[string]model.ActionOutput)
	}
	a.doc.Outputs[name] = model.ActionOutput{Description: description, Value: value}
	return a
}

// Runs configures a javascript action entry point.
func (a *Action) Runs(using, main string) *Action {
	a.doc.Runs = model.ActionRuns{Using: using, Main: main}
	return a
}

// Composite marks the action as composite; add its steps with Step.
func (a *Action) Composite() *Action {
	a.doc.Runs = model.ActionRuns{Using: "composite"}
	return a
}

// Step appends a composite step.
func (a *Action) Step(step *Step) *Action {
	a.steps = append(a.steps, step)
	return a
}

// Build assembles the final document.
func (a *Action) Build() model.Action {
	doc := a.doc
	if len(a.steps) > 0 {
		doc.Runs.Steps = make([]model.Step, 0, len(a.steps))
		for _, step := range a.steps {
			doc.Runs.Steps = append(doc.Runs.Steps, step.doc)
		}
	}
	return doc
}

// YAML renders the built action as YAML text.
func (a *Action) YAML() (string, error) {
	return marshalYAML(a.Build())
}
