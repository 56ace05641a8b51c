package report

import "time"

// Statuses for processed files.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// FileResult captures the outcome of processing a single file. A result is
// all-or-nothing: either Output is set and Error empty, or the reverse.
type FileResult struct {
	Path       string        `json:"path"`
	Kind       string        `json:"kind"`
	Status     string        `json:"status"`
	Phase      string        `json:"phase,omitempty"`
	Error      string        `json:"error,omitempty"`
	Output     string        `json:"output,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// Failed reports whether the file ended in an error.
func (r FileResult) Failed() bool {
	return r.Status == StatusFailed
}

// Summary aggregates a batch run.
type Summary struct {
	TotalFiles int            `json:"total_files"`
	Passed     int            `json:"passed"`
	Failed     int            `json:"failed"`
	ByKind     map[string]int `json:"by_kind,omitempty"`
	Duration   time.Duration  `json:"-"`
	DurationMS int64          `json:"duration_ms"`
	ExitCode   int            `json:"exit_code"`
}

// ExpressionFinding is one validated expression occurrence, used by the
// validate command.
type ExpressionFinding struct {
	File        string   `json:"file"`
	Job         string   `json:"job,omitempty"`
	Field       string   `json:"field"`
	Expression  string   `json:"expression"`
	Errors      []string `json:"errors,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Clean reports whether the finding carries no errors or suggestions.
func (f ExpressionFinding) Clean() bool {
	return len(f.Errors) == 0 && len(f.Suggestions) == 0
}
