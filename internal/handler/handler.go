// Package handler maps each recognised file kind to its structural schema
// and its generated representation.
package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bgricker/actionsmith/internal/classify"
)

// EmitFunc produces the generated representation for a classified document.
type EmitFunc func(content any, fc classify.FileContext) (string, error)

// Handler validates and emits documents of one kind. Handlers are stateless
// once built and safe to share across concurrent pipeline calls.
type Handler struct {
	Kind   classify.Kind
	Schema *jsonschema.Schema // nil disables the validate phase for this kind
	Emit   EmitFunc
}

// Set holds one handler per recognised kind. Build it once with NewSet and
// pass it into each pipeline; there is no process-global validator state.
type Set struct {
	workflow   Handler
	action     Handler
	funding    Handler
	dependabot Handler

	printer *message.Printer
}

// NewSet compiles the embedded schemas and wires the per-kind emitters.
func NewSet() (*Set, error) {
	s := &Set{printer: message.NewPrinter(language.English)}

	var err error
	if s.workflow.Schema, err = compileSchema("gha-workflow.json", workflowSchema); err != nil {
		return nil, err
	}
	if s.action.Schema, err = compileSchema("gha-action.json", actionSchema); err != nil {
		return nil, err
	}
	if s.funding.Schema, err = compileSchema("github-funding.json", fundingSchema); err != nil {
		return nil, err
	}
	if s.dependabot.Schema, err = compileSchema("dependabot.json", dependabotSchema); err != nil {
		return nil, err
	}

	s.workflow.Kind = classify.KindWorkflow
	s.workflow.Emit = emitWorkflow
	s.action.Kind = classify.KindAction
	s.action.Emit = emitAction
	s.funding.Kind = classify.KindFunding
	s.funding.Emit = emitNormalizedYAML
	s.dependabot.Kind = classify.KindDependabot
	s.dependabot.Emit = emitNormalizedYAML

	return s, nil
}

// For resolves the handler for a kind. The switch is exhaustive over the
// closed Kind enumeration so a new kind cannot silently go unhandled.
func (s *Set) For(kind classify.Kind) (*Handler, bool) {
	switch kind {
	case classify.KindWorkflow:
		return &s.workflow, true
	case classify.KindAction:
		return &s.action, true
	case classify.KindFunding:
		return &s.funding, true
	case classify.KindDependabot:
		return &s.dependabot, true
	case classify.KindUnknown:
		return nil, false
	default:
		return nil, false
	}
}

// Violations runs structural validation and returns one "path: message"
// string per violated constraint, empty when the document conforms or the
// handler carries no schema.
func (s *Set) Violations(h *Handler, content any) ([]string, error) {
	if h.Schema == nil {
		return nil, nil
	}
	instance, err := normalize(content)
	if err != nil {
		return nil, err
	}
	err = h.Schema.Validate(instance)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var violations []string
	flattenViolations(ve, s.printer, &violations)
	return violations, nil
}

func flattenViolations(ve *jsonschema.ValidationError, p *message.Printer, out *[]string) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		*out = append(*out, fmt.Sprintf("%s: %s", path, ve.ErrorKind.LocalizedString(p)))
		return
	}
	for _, cause := range ve.Causes {
		flattenViolations(cause, p, out)
	}
}

// normalize round-trips a decoded YAML value through JSON so the schema
// engine sees the value kinds it expects (json.Number and friends).
func normalize(content any) (any, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

func compileSchema(name, source string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("register schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}
