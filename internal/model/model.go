package model

// Workflow mirrors a GitHub Actions workflow file.
type Workflow struct {
	Name        string            `yaml:"name,omitempty" json:"name,omitempty"`
	RunName     string            `yaml:"run-name,omitempty" json:"run_name,omitempty"`
	On          Triggers          `yaml:"on" json:"on"`
	Permissions map[string]string `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	Env         map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Defaults    Defaults          `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Concurrency *Concurrency      `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	Jobs        map[string]Job    `yaml:"jobs" json:"jobs"`

	// Path records where the document was loaded from; empty for built
	// documents that have not been written yet.
	Path string `yaml:"-" json:"path,omitempty"`
}

// Triggers models the workflow "on" section. Exactly one representation is
// populated: a single event name, a list of event names, or a mapping of
// event name to its filter configuration.
type Triggers struct {
	Event  string
	Events []string
	Config map[string]EventConfig
}

// EventConfig holds per-event trigger filters.
type EventConfig struct {
	Types          []string `yaml:"types,omitempty" json:"types,omitempty"`
	Branches       []string `yaml:"branches,omitempty" json:"branches,omitempty"`
	BranchesIgnore []string `yaml:"branches-ignore,omitempty" json:"branches_ignore,omitempty"`
	Tags           []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Paths          []string `yaml:"paths,omitempty" json:"paths,omitempty"`
	PathsIgnore    []string `yaml:"paths-ignore,omitempty" json:"paths_ignore,omitempty"`
}

// Concurrency models the workflow or job concurrency group.
type Concurrency struct {
	Group            string `yaml:"group" json:"group"`
	CancelInProgress bool   `yaml:"cancel-in-progress,omitempty" json:"cancel_in_progress,omitempty"`
}

// Defaults capture shared run configuration for jobs and steps.
type Defaults struct {
	Run RunDefaults `yaml:"run,omitempty" json:"run,omitempty"`
}

// RunDefaults holds the shell and working directory applied to run steps.
type RunDefaults struct {
	Shell            string `yaml:"shell,omitempty" json:"shell,omitempty"`
	WorkingDirectory string `yaml:"working-directory,omitempty" json:"working_directory,omitempty"`
}

// IsZero reports whether no defaults are set; yaml.v3 uses it to honour
// omitempty on the enclosing struct field.
func (d Defaults) IsZero() bool {
	return d.Run.Shell == "" && d.Run.WorkingDirectory == ""
}

// StringList is a []string that accepts both the scalar and sequence YAML
// forms GitHub allows for fields like needs and runs-on, and marshals a
// single element back to the scalar form.
type StringList []string

// UnmarshalYAML accepts a single string or a sequence of strings.
func (l *StringList) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

// MarshalYAML renders one element as a scalar, several as a sequence.
func (l StringList) MarshalYAML() (any, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []string(l), nil
}

// Job represents a GitHub Actions job.
type Job struct {
	Name        string            `yaml:"name,omitempty" json:"name,omitempty"`
	RunsOn      StringList        `yaml:"runs-on,omitempty" json:"runs_on,omitempty"`
	Needs       StringList        `yaml:"needs,omitempty" json:"needs,omitempty"`
	If          string            `yaml:"if,omitempty" json:"if,omitempty"`
	Permissions map[string]string `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	Env         map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Defaults    Defaults          `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Environment string            `yaml:"environment,omitempty" json:"environment,omitempty"`
	Strategy    *Strategy         `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Steps       []Step            `yaml:"steps,omitempty" json:"steps,omitempty"`
	Uses        string            `yaml:"uses,omitempty" json:"uses,omitempty"`
}

// Strategy models a job matrix strategy.
type Strategy struct {
	Matrix      map[string][]any `yaml:"matrix,omitempty" json:"matrix,omitempty"`
	FailFast    *bool            `yaml:"fail-fast,omitempty" json:"fail_fast,omitempty"`
	MaxParallel int              `yaml:"max-parallel,omitempty" json:"max_parallel,omitempty"`
}

// Step represents an individual workflow step.
type Step struct {
	ID               string            `yaml:"id,omitempty" json:"id,omitempty"`
	Name             string            `yaml:"name,omitempty" json:"name,omitempty"`
	If               string            `yaml:"if,omitempty" json:"if,omitempty"`
	Uses             string            `yaml:"uses,omitempty" json:"uses,omitempty"`
	Run              string            `yaml:"run,omitempty" json:"run,omitempty"`
	With             map[string]string `yaml:"with,omitempty" json:"with,omitempty"`
	Env              map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	Shell            string            `yaml:"shell,omitempty" json:"shell,omitempty"`
	WorkingDirectory string            `yaml:"working-directory,omitempty" json:"working_directory,omitempty"`
}

// Action mirrors an action.yml metadata file.
type Action struct {
	Name        string                  `yaml:"name" json:"name"`
	Description string                  `yaml:"description,omitempty" json:"description,omitempty"`
	Inputs      map[string]ActionInput  `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Outputs     map[string]ActionOutput `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	Runs        ActionRuns              `yaml:"runs" json:"runs"`
}

// ActionInput describes one declared action input.
type ActionInput struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}

// ActionOutput describes one declared action output.
type ActionOutput struct {
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Value       string `yaml:"value,omitempty" json:"value,omitempty"`
}

// ActionRuns describes how an action executes: a javascript entry point or a
// list of composite steps.
type ActionRuns struct {
	Using string `yaml:"using" json:"using"`
	Main  string `yaml:"main,omitempty" json:"main,omitempty"`
	Steps []Step `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// Warning captures non-fatal issues encountered while decoding documents.
type Warning struct {
	File    string `json:"file"`
	Job     string `json:"job,omitempty"`
	Message string `json:"message"`
}

// MarshalYAML renders the populated trigger representation.
func (t Triggers) MarshalYAML() (any, error) {
	switch {
	case len(t.Config) > 0:
		return t.Config, nil
	case len(t.Events) > 0:
		return t.Events, nil
	default:
		return t.Event, nil
	}
}

// UnmarshalYAML accepts the scalar, sequence and mapping trigger forms.
func (t *Triggers) UnmarshalYAML(unmarshal func(any) error) error {
	var event string
	if err := unmarshal(&event); err == nil {
		t.Event = event
		return nil
	}
	var events []string
	if err := unmarshal(&events); err == nil {
		t.Events = events
		return nil
	}
	var config map[string]EventConfig
	if err := unmarshal(&config); err != nil {
		return err
	}
	t.Config = config
	return nil
}

// Names returns the trigger event names in deterministic order: document
// order for scalar and sequence forms, lexicographic for the mapping form.
func (t Triggers) Names() []string {
	switch {
	case len(t.Config) > 0:
		return sortedKeys(t.Config)
	case len(t.Events) > 0:
		return append([]string{}, t.Events...)
	case t.Event != "":
		return []string{t.Event}
	default:
		return nil
	}
}

// Event returns the primary trigger event name, used as the validation
// event type: the single or first event, or the lexicographically first key
// of the mapping form. Empty when the workflow declares no triggers.
func (w Workflow) Event() string {
	names := w.On.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// JobIDs returns the workflow's job identifiers sorted lexicographically.
func (w Workflow) JobIDs() []string {
	return sortedKeys(w.Jobs)
}

// StepIDs returns the ids of steps that declare one, in document order.
func (j Job) StepIDs() []string {
	var ids []string
	for _, s := range j.Steps {
		if s.ID != "" {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
