package pipeline

import (
	"context"

	"github.com/bgricker/actionsmith/internal/report"
)

// ProcessAll runs every path through the pipeline in order. By default a
// failing file is recorded and processing continues; with FailFast set the
// batch stops after the first failure. Results preserve input order.
func (p *Pipeline) ProcessAll(ctx context.Context, paths []string) ([]report.FileResult, report.Summary) {
	start := p.opts.Now()
	summary := report.Summary{
		TotalFiles: len(paths),
		ByKind:     make(map[string]int),
	}
	results := make([]report.FileResult, 0, len(paths))

	for _, path := range paths {
		res := p.ProcessFile(ctx, path)
		results = append(results, res)
		summary.ByKind[res.Kind]++
		if res.Failed() {
			summary.Failed++
			if p.opts.FailFast {
				break
			}
			continue
		}
		summary.Passed++
	}

	if summary.Failed > 0 {
		summary.ExitCode = 1
	}
	summary.Duration = p.opts.Now().Sub(start)
	summary.DurationMS = summary.Duration.Milliseconds()
	return results, summary
}
