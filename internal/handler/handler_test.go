package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgricker/actionsmith/internal/classify"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	set, err := NewSet()
	require.NoError(t, err)
	return set
}

func TestForCoversEveryKind(t *testing.T) {
	set := newTestSet(t)

	for _, kind := range classify.Kinds() {
		h, ok := set.For(kind)
		require.True(t, ok, "kind %s", kind)
		assert.Equal(t, kind, h.Kind)
		assert.NotNil(t, h.Schema)
		assert.NotNil(t, h.Emit)
	}

	_, ok := set.For(classify.KindUnknown)
	assert.False(t, ok)
}

func TestViolationsValidWorkflow(t *testing.T) {
	set := newTestSet(t)
	h, _ := set.For(classify.KindWorkflow)

	content := map[string]any{
		"name": "CI",
		"on":   "push",
		"jobs": map[string]any{
			"build": map[string]any{
				"runs-on": "ubuntu-latest",
				"steps":   []any{map[string]any{"run": "make"}},
			},
		},
	}
	violations, err := set.Violations(h, content)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestViolationsInvalidWorkflow(t *testing.T) {
	set := newTestSet(t)
	h, _ := set.For(classify.KindWorkflow)

	// Missing jobs entirely.
	violations, err := set.Violations(h, map[string]any{"on": "push"})
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Contains(t, strings.Join(violations, "; "), "jobs")
}

func TestViolationsInvalidDependabot(t *testing.T) {
	set := newTestSet(t)
	h, _ := set.For(classify.KindDependabot)

	content := map[string]any{
		"version": 2,
		"updates": []any{
			map[string]any{
				"package-ecosystem": "gomod",
				"directory":         "/",
				"schedule":          map[string]any{"interval": "hourly"},
			},
		},
	}
	violations, err := set.Violations(h, content)
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0], "/updates/0/schedule/interval")
}

func TestEmitWorkflowBuilderCode(t *testing.T) {
	content := map[string]any{
		"name": "CI",
		"on":   []any{"push", "pull_request"},
		"jobs": map[string]any{
			"build": map[string]any{
				"runs-on": "ubuntu-latest",
				"steps": []any{
					map[string]any{"name": "Checkout", "uses": "actions/checkout@v4"},
					map[string]any{"name": "Test", "run": "go test ./..."},
				},
			},
			"deploy": map[string]any{
				"runs-on": "ubuntu-latest",
				"needs":   []any{"build"},
				"steps":   []any{map[string]any{"run": "make deploy"}},
			},
		},
	}
	fc := classify.NewFileContext(".github/workflows/ci.yml", content)

	out, err := emitWorkflow(content, fc)
	require.NoError(t, err)

	assert.Contains(t, out, `builder.NewWorkflow("CI")`)
	assert.Contains(t, out, `On("push", "pull_request")`)
	assert.Contains(t, out, `build := builder.NewJob("build")`)
	assert.Contains(t, out, `deploy := builder.NewJob("deploy")`)
	assert.Contains(t, out, `Needs("build")`)
	assert.Contains(t, out, `Uses("actions/checkout@v4")`)
	assert.Contains(t, out, `Run("go test ./...")`)
	assert.Contains(t, out, "wf.Job(build)")
	// Jobs come out in lexicographic order.
	assert.Less(t, strings.Index(out, `NewJob("build")`), strings.Index(out, `NewJob("deploy")`))
}

func TestEmitActionBuilderCode(t *testing.T) {
	content := map[string]any{
		"name":        "Setup Tool",
		"description": "Installs the tool",
		"inputs": map[string]any{
			"version": map[string]any{"description": "Version to install", "required": true},
		},
		"runs": map[string]any{"using": "node20", "main": "dist/index.js"},
	}
	fc := classify.NewFileContext("action.yml", content)

	out, err := emitAction(content, fc)
	require.NoError(t, err)
	assert.Contains(t, out, `builder.NewAction("Setup Tool")`)
	assert.Contains(t, out, `Input("version", "Version to install", true, "")`)
	assert.Contains(t, out, `Runs("node20", "dist/index.js")`)
}

func TestEmitNormalizedYAML(t *testing.T) {
	content := map[string]any{"github": []any{"octocat"}, "patreon": "octo"}
	fc := classify.NewFileContext(".github/FUNDING.yml", content)

	out, err := emitNormalizedYAML(content, fc)
	require.NoError(t, err)
	assert.Contains(t, out, "github:")
	assert.Contains(t, out, "- octocat")
	assert.Contains(t, out, "patreon: octo")
}
