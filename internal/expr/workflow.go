package expr

import (
	"fmt"
	"strings"
)

// EnhancedContext extends Context with the surrounding workflow graph.
type EnhancedContext struct {
	Context
	AvailableSteps []string
	Matrix         map[string][]any
	Permissions    map[string]string
}

// EnhancedResult is a base Result plus workflow-graph suggestions.
type EnhancedResult struct {
	Result
}

// ValidateInWorkflow runs the base validation and layers workflow-aware
// checks over the same parsed components. Job and step existence problems
// are reported as suggestions rather than errors: the caller may be
// validating a fragment whose job graph is incomplete, and a hard failure
// there would be a false positive.
func ValidateInWorkflow(expression string, ctx EnhancedContext) EnhancedResult {
	res := EnhancedResult{Result: Validate(expression, ctx.Context)}
	addSuggestion := suggestionAdder(&res.Result)

	matrixHinted := false
	for _, ref := range res.Components.Refs {
		switch ref.Name {
		case "needs":
			if len(ref.Path) > 0 && !containsString(ctx.AvailableJobs, ref.Path[0]) {
				addSuggestion(fmt.Sprintf("needs.%s references a job not defined in this workflow", ref.Path[0]))
			}
		case "steps":
			if ctx.CurrentJob != "" && len(ref.Path) > 0 && !containsString(ctx.AvailableSteps, ref.Path[0]) {
				addSuggestion(fmt.Sprintf("steps.%s does not match any step id in job %q", ref.Path[0], ctx.CurrentJob))
			}
		case "matrix":
			if !matrixHinted {
				addSuggestion("matrix expression found; set strategy.fail-fast explicitly to control cancellation behaviour")
				matrixHinted = true
			}
		}
	}

	// Structural counterpart of the substring-based injection scan: checks
	// the parsed path, so it also fires without an adjacent run: token.
	for _, ref := range res.Components.Refs {
		if strings.Contains(ref.FullPath, "github.event.issue.title") ||
			strings.Contains(ref.FullPath, "github.event.pull_request.title") {
			addSuggestion("issue and pull request titles are attacker-controlled; avoid using them in shell commands")
			break
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}
