package expr

import (
	"fmt"
	"regexp"
	"strings"
)

// KnownContexts is the fixed set of namespaces an expression may reference.
var KnownContexts = []string{
	"github", "env", "job", "runner", "steps", "needs",
	"strategy", "matrix", "secrets", "vars", "inputs",
}

// KnownFunctions is the fixed allow-list of callable function names.
var KnownFunctions = []string{
	"contains", "startsWith", "endsWith", "format", "fromJSON", "toJSON", "join",
}

// Context is the workflow snapshot an expression is validated against. The
// validator never mutates it.
type Context struct {
	EventType     string
	AvailableJobs []string
	CurrentJob    string
	Environment   string
}

// Result is the outcome of validating one expression. Errors and
// suggestions keep discovery order: context checks, event checks, function
// checks, security checks.
type Result struct {
	Valid       bool        `json:"valid"`
	Errors      []string    `json:"errors,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
	Components  *Components `json:"components,omitempty"`
}

// injectionPatterns pair untrusted event fields with a following run: token.
// The adjacency requirement is deliberate: text using these fields outside a
// run block is not flagged.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)github\.event\.issue\.title.*run:`),
	regexp.MustCompile(`(?s)github\.event\.issue\.body.*run:`),
	regexp.MustCompile(`(?s)github\.event\.comment\.body.*run:`),
}

// Validate checks a single expression against the known-namespace grammar,
// event scoping rules, the function allow-list and the injection heuristic.
// All checks run; a single call surfaces every problem. The result is valid
// iff no errors accumulated.
func Validate(expression string, ctx Context) Result {
	components := Parse(expression)
	res := Result{Components: &components}
	addSuggestion := suggestionAdder(&res)

	for _, ref := range components.Refs {
		if !containsString(KnownContexts, ref.Name) {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown context %q", ref.Name))
			addSuggestion("valid contexts: " + strings.Join(KnownContexts, ", "))
		}
	}

	// Literal substring on purpose: aliased or computed access to the
	// pull_request payload is not caught. See the validator tests.
	if strings.Contains(components.Cleaned, "github.event.pull_request") && ctx.EventType != "pull_request" {
		res.Errors = append(res.Errors,
			fmt.Sprintf("github.event.pull_request is only available on pull_request events, not %q", ctx.EventType))
		addSuggestion("trigger the workflow on pull_request, or guard the expression with github.event_name")
	}

	for _, call := range components.Calls {
		if !equalFoldAny(KnownFunctions, call.Name) {
			res.Errors = append(res.Errors, fmt.Sprintf("unknown function %q", call.Name))
			addSuggestion("supported functions: " + strings.Join(KnownFunctions, ", "))
		}
	}

	for _, pattern := range injectionPatterns {
		if pattern.MatchString(components.Cleaned) {
			res.Errors = append(res.Errors,
				"untrusted event text flows into a run command; this allows shell injection")
			addSuggestion("assign the value to an env var and reference the variable from run instead")
			break
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// suggestionAdder deduplicates suggestions while preserving first-seen
// order, so repeated unknown references produce one shared hint.
func suggestionAdder(res *Result) func(string) {
	seen := make(map[string]bool)
	return func(s string) {
		if seen[s] {
			return
		}
		seen[s] = true
		res.Suggestions = append(res.Suggestions, s)
	}
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func equalFoldAny(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
