// Package classify assigns GitHub configuration files to one of a closed
// set of kinds based on path conventions and content shape.
package classify

import (
	"path/filepath"
	"strings"
)

// Kind is the closed enumeration of recognised configuration kinds.
type Kind string

const (
	KindWorkflow   Kind = "gha-workflow"
	KindAction     Kind = "gha-action"
	KindFunding    Kind = "github-funding"
	KindDependabot Kind = "dependabot-config"
	KindUnknown    Kind = "unknown"
)

// Kinds lists every recognised kind in classification priority order,
// excluding the unknown catch-all.
func Kinds() []Kind {
	return []Kind{KindWorkflow, KindAction, KindFunding, KindDependabot}
}

// FileContext bundles a file's path, its parsed content and derived path
// parts. Created once per file and read-only afterwards.
type FileContext struct {
	Path     string
	Content  any
	Base     string
	Ext      string
	Segments []string
}

// NewFileContext derives the path parts used by classification.
func NewFileContext(path string, content any) FileContext {
	cleaned := filepath.ToSlash(filepath.Clean(path))
	return FileContext{
		Path:     path,
		Content:  content,
		Base:     filepath.Base(cleaned),
		Ext:      strings.ToLower(filepath.Ext(cleaned)),
		Segments: strings.Split(cleaned, "/"),
	}
}

// fundingPlatforms are the sponsor platform keys a FUNDING.yml may declare.
var fundingPlatforms = []string{
	"github", "patreon", "open_collective", "ko_fi", "tidelift",
	"community_bridge", "liberapay", "issuehunt", "lfx_crowdfunding",
	"polar", "buy_me_a_coffee", "thanks_dev", "custom",
}

// Classify assigns exactly one kind to the file. Candidate kinds are tried
// in a fixed priority order and the first whose path or content signal
// matches wins; files matching nothing classify as unknown. Classification
// is total and deterministic: it never fails, whatever the content shape.
func Classify(fc FileContext) Kind {
	for _, kind := range Kinds() {
		if matchesPath(fc, kind) || matchesContent(fc, kind) {
			return kind
		}
	}
	return KindUnknown
}

func matchesPath(fc FileContext, kind Kind) bool {
	yamlExt := fc.Ext == ".yml" || fc.Ext == ".yaml"
	switch kind {
	case KindWorkflow:
		if !yamlExt {
			return false
		}
		// Anything under a workflows directory, conventionally
		// .github/workflows.
		for _, seg := range fc.Segments[:max(len(fc.Segments)-1, 0)] {
			if seg == "workflows" {
				return true
			}
		}
		return false
	case KindAction:
		return fc.Base == "action.yml" || fc.Base == "action.yaml"
	case KindFunding:
		return fc.Base == "FUNDING.yml" || fc.Base == "FUNDING.yaml"
	case KindDependabot:
		return fc.Base == "dependabot.yml" || fc.Base == "dependabot.yaml"
	default:
		return false
	}
}

func matchesContent(fc FileContext, kind Kind) bool {
	doc, ok := fc.Content.(map[string]any)
	if !ok {
		return false
	}
	switch kind {
	case KindWorkflow:
		return hasKey(doc, "on") && hasKey(doc, "jobs")
	case KindAction:
		return hasKey(doc, "runs")
	case KindFunding:
		for _, platform := range fundingPlatforms {
			if hasKey(doc, platform) {
				return true
			}
		}
		return false
	case KindDependabot:
		return hasKey(doc, "version") && hasKey(doc, "updates")
	default:
		return false
	}
}

func hasKey(doc map[string]any, key string) bool {
	_, ok := doc[key]
	return ok
}
