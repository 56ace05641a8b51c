package model

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

var usesRefRegex = regexp.MustCompile(`^([^@]+)@(.+)$`)

// mutableRefs are branch names commonly used as floating action references.
var mutableRefs = map[string]bool{"main": true, "master": true}

// DecodeWorkflowFile reads and decodes a workflow document from disk.
func DecodeWorkflowFile(path string) (Workflow, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return Workflow{}, nil, fmt.Errorf("open workflow %q: %w", path, err)
	}
	defer f.Close()
	return DecodeWorkflow(f, path)
}

// DecodeWorkflow decodes a workflow document, recording non-fatal warnings
// for constructs the typed model cannot fully represent. The display path is
// only used in warnings and the returned Workflow.
func DecodeWorkflow(r io.Reader, displayPath string) (Workflow, []Warning, error) {
	var wf Workflow
	if err := yaml.NewDecoder(r).Decode(&wf); err != nil {
		return Workflow{}, nil, fmt.Errorf("parse workflow %q: %w", displayPath, err)
	}
	wf.Path = displayPath
	if wf.Name == "" {
		wf.Name = displayPath
	}

	warnings := make([]Warning, 0)

	jobIDs := make([]string, 0, len(wf.Jobs))
	for id := range wf.Jobs {
		jobIDs = append(jobIDs, id)
	}
	sort.Strings(jobIDs)

	for _, jobID := range jobIDs {
		job := wf.Jobs[jobID]
		if job.Name == "" {
			job.Name = jobID
			wf.Jobs[jobID] = job
		}

		if job.Uses != "" {
			warnings = append(warnings, Warning{
				File:    displayPath,
				Job:     jobID,
				Message: fmt.Sprintf("job calls reusable workflow %q; its steps are opaque to validation", job.Uses),
			})
		}
		for idx, step := range job.Steps {
			label := step.Name
			if label == "" {
				label = fmt.Sprintf("step %d", idx+1)
			}
			if step.Uses == "" && step.Run == "" {
				warnings = append(warnings, Warning{
					File:    displayPath,
					Job:     jobID,
					Message: fmt.Sprintf("%s declares neither run nor uses", label),
				})
				continue
			}
			if msg := checkUsesRef(step.Uses); msg != "" {
				warnings = append(warnings, Warning{
					File:    displayPath,
					Job:     jobID,
					Message: fmt.Sprintf("%s: %s", label, msg),
				})
			}
		}
	}

	return wf, warnings, nil
}

// checkUsesRef flags action references that can change underneath a
// workflow: missing version suffixes and floating branch refs. Local
// (./path) and docker:// references are left alone.
func checkUsesRef(uses string) string {
	if uses == "" || uses[0] == '.' || len(uses) > 9 && uses[:9] == "docker://" {
		return ""
	}
	m := usesRefRegex.FindStringSubmatch(uses)
	if m == nil {
		return fmt.Sprintf("action reference %q is not pinned to a version", uses)
	}
	if mutableRefs[m[2]] {
		return fmt.Sprintf("action reference %q uses mutable ref %q", uses, m[2])
	}
	return ""
}

// DecodeAction decodes an action metadata document.
func DecodeAction(r io.Reader, displayPath string) (Action, error) {
	var a Action
	if err := yaml.NewDecoder(r).Decode(&a); err != nil {
		return Action{}, fmt.Errorf("parse action %q: %w", displayPath, err)
	}
	return a, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
