// Package pipeline orchestrates file processing: parse, classify, dispatch,
// schema-validate, emit. Every failure is tagged with the phase it happened
// in, and one file's failure never aborts a batch unless asked to.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bgricker/actionsmith/internal/classify"
	"github.com/bgricker/actionsmith/internal/ctxlog"
	"github.com/bgricker/actionsmith/internal/handler"
	"github.com/bgricker/actionsmith/internal/model"
	"github.com/bgricker/actionsmith/internal/report"
)

// Phase identifies where in the pipeline a file failed.
type Phase string

const (
	PhaseParse    Phase = "parse"
	PhaseClassify Phase = "classify"
	PhaseValidate Phase = "validate"
	PhaseEmit     Phase = "emit"
)

// Error is a phase-tagged, file-scoped processing failure.
type Error struct {
	File    string
	Kind    classify.Kind
	Phase   Phase
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.File, e.Phase, e.Message)
}

// Options configure a pipeline instance.
type Options struct {
	// SkipValidation disables the schema validation phase.
	SkipValidation bool
	// FailFast stops a batch at the first failing file.
	FailFast bool
	// Now is overridable for tests.
	Now func() time.Time
}

// Pipeline processes files against a handler set. It holds no mutable state
// beyond its options, so concurrent Process calls are safe.
type Pipeline struct {
	handlers *handler.Set
	opts     Options
}

// New creates a pipeline over the supplied handler set.
func New(handlers *handler.Set, opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{handlers: handlers, opts: opts}
}

// Process runs one file through every phase, returning the emitted output
// and its kind, or a phase-tagged error. Exactly one of output and error is
// meaningful; there is no partial success.
func (p *Pipeline) Process(ctx context.Context, path string) (string, classify.Kind, *Error) {
	log := ctxlog.FromContext(ctx)

	content, err := parseFile(path)
	if err != nil {
		return "", classify.KindUnknown, &Error{File: path, Kind: classify.KindUnknown, Phase: PhaseParse, Message: err.Error()}
	}
	log.Debug("parsed", "path", path)

	fc := classify.NewFileContext(path, content)
	kind := classify.Classify(fc)
	if kind == classify.KindUnknown {
		return "", kind, &Error{File: path, Kind: kind, Phase: PhaseClassify,
			Message: "file does not match any known configuration kind"}
	}
	log.Debug("classified", "path", path, "kind", string(kind))

	h, ok := p.handlers.For(kind)
	if !ok {
		// Handler registration is a deployment concern, so its absence is
		// reported against the emit phase rather than classification.
		return "", kind, &Error{File: path, Kind: kind, Phase: PhaseEmit,
			Message: fmt.Sprintf("no handler available for kind %q", kind)}
	}

	if !p.opts.SkipValidation {
		violations, verr := p.handlers.Violations(h, content)
		if verr != nil {
			return "", kind, &Error{File: path, Kind: kind, Phase: PhaseValidate, Message: verr.Error()}
		}
		if len(violations) > 0 {
			return "", kind, &Error{File: path, Kind: kind, Phase: PhaseValidate,
				Message: "schema validation failed: " + strings.Join(violations, "; ")}
		}
		log.Debug("validated", "path", path)
	}

	output, err := emit(h, content, fc)
	if err != nil {
		return "", kind, &Error{File: path, Kind: kind, Phase: PhaseEmit, Message: err.Error()}
	}
	log.Debug("emitted", "path", path, "bytes", len(output))

	return output, kind, nil
}

// Classify runs only the parse and classify phases, for inspection without
// validation or emission.
func (p *Pipeline) Classify(ctx context.Context, path string) report.FileResult {
	start := p.opts.Now()
	res := report.FileResult{Path: path, Kind: string(classify.KindUnknown)}

	content, err := parseFile(path)
	if err != nil {
		res.Status = report.StatusFailed
		res.Phase = string(PhaseParse)
		res.Error = err.Error()
	} else {
		kind := classify.Classify(classify.NewFileContext(path, content))
		res.Kind = string(kind)
		if kind == classify.KindUnknown {
			res.Status = report.StatusFailed
			res.Phase = string(PhaseClassify)
			res.Error = "file does not match any known configuration kind"
		} else {
			res.Status = report.StatusPassed
		}
	}
	res.Duration = p.opts.Now().Sub(start)
	res.DurationMS = res.Duration.Milliseconds()
	return res
}

// ProcessFile wraps Process into a report-shaped result.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) report.FileResult {
	start := p.opts.Now()
	output, kind, perr := p.Process(ctx, path)

	res := report.FileResult{Path: path, Kind: string(kind)}
	if perr != nil {
		res.Status = report.StatusFailed
		res.Phase = string(perr.Phase)
		res.Error = perr.Message
	} else {
		res.Status = report.StatusPassed
		res.Output = output
		if kind == classify.KindWorkflow {
			res.Warnings = decodeWarnings(path)
		}
	}
	res.Duration = p.opts.Now().Sub(start)
	res.DurationMS = res.Duration.Milliseconds()
	return res
}

// decodeWarnings collects the model decoder's non-fatal findings for a
// workflow that already passed every phase: reusable-workflow jobs, empty
// steps, unpinned action refs. A decode failure here is ignored; the file
// already parsed and validated.
func decodeWarnings(path string) []string {
	_, warnings, err := model.DecodeWorkflowFile(path)
	if err != nil || len(warnings) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if w.Job != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", w.Job, w.Message))
		} else {
			msgs = append(msgs, w.Message)
		}
	}
	return msgs
}

// emit invokes the handler's generator, converting panics into errors so a
// bad file cannot take down a batch.
func emit(h *handler.Handler, content any, fc classify.FileContext) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("emit panicked: %v", r)
		}
	}()
	return h.Emit(content, fc)
}

// parseFile reads and decodes a file based on its extension. Markdown is
// wrapped as opaque text so downstream phases stay total over it.
func parseFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var content any
		if err := json.Unmarshal(raw, &content); err != nil {
			return nil, fmt.Errorf("parse json %q: %w", path, err)
		}
		return content, nil
	case ".yml", ".yaml":
		var content any
		if err := yaml.Unmarshal(raw, &content); err != nil {
			return nil, fmt.Errorf("parse yaml %q: %w", path, err)
		}
		return content, nil
	case ".md":
		return map[string]any{"text": string(raw)}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}
