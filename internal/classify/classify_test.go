package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWorkflowByPath(t *testing.T) {
	fc := NewFileContext(".github/workflows/ci.yml", nil)
	assert.Equal(t, KindWorkflow, Classify(fc))
}

func TestClassifyWorkflowByContent(t *testing.T) {
	content := map[string]any{"on": "push", "jobs": map[string]any{}}
	fc := NewFileContext("somewhere/pipeline.yaml", content)
	assert.Equal(t, KindWorkflow, Classify(fc))
}

func TestClassifyActionByPath(t *testing.T) {
	fc := NewFileContext("my-action/action.yml", nil)
	assert.Equal(t, KindAction, Classify(fc))
}

func TestClassifyActionByContent(t *testing.T) {
	content := map[string]any{"name": "x", "runs": map[string]any{"using": "node20"}}
	fc := NewFileContext("meta.yaml", content)
	assert.Equal(t, KindAction, Classify(fc))
}

func TestClassifyFunding(t *testing.T) {
	byPath := NewFileContext(".github/FUNDING.yml", nil)
	assert.Equal(t, KindFunding, Classify(byPath))

	byContent := NewFileContext("sponsors.yaml", map[string]any{"github": []any{"octocat"}})
	assert.Equal(t, KindFunding, Classify(byContent))
}

func TestClassifyDependabot(t *testing.T) {
	byPath := NewFileContext(".github/dependabot.yml", nil)
	assert.Equal(t, KindDependabot, Classify(byPath))

	byContent := NewFileContext("updates.yaml", map[string]any{"version": 2, "updates": []any{}})
	assert.Equal(t, KindDependabot, Classify(byContent))
}

func TestClassifyUnknown(t *testing.T) {
	fc := NewFileContext("README.md", map[string]any{"text": "hello"})
	assert.Equal(t, KindUnknown, Classify(fc))
}

func TestClassifyPriorityOrder(t *testing.T) {
	// A file in a workflows directory wins the workflow kind even when its
	// content looks like something else: path priority is fixed.
	content := map[string]any{"github": []any{"octocat"}}
	fc := NewFileContext(".github/workflows/FUNDING.yml", content)
	assert.Equal(t, KindWorkflow, Classify(fc))
}

func TestClassifyTotality(t *testing.T) {
	// Any content shape classifies without panicking.
	contents := []any{
		nil,
		"scalar",
		42,
		[]any{"list"},
		map[string]any{},
		map[string]any{"on": nil, "jobs": nil},
	}
	for _, content := range contents {
		fc := NewFileContext("odd.yml", content)
		kind := Classify(fc)
		assert.NotEmpty(t, string(kind))
	}
}

func TestClassifyDeterminism(t *testing.T) {
	fc := NewFileContext(".github/workflows/ci.yml", map[string]any{"on": "push", "jobs": map[string]any{}})
	first := Classify(fc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(fc))
	}
}
