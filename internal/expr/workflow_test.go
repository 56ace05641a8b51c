package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInWorkflowMissingJob(t *testing.T) {
	res := ValidateInWorkflow("${{ needs.missingJob.outputs.sha }}", EnhancedContext{
		Context: Context{EventType: "push", AvailableJobs: []string{"build", "test"}},
	})

	// Existence problems downgrade to suggestions: the job graph may be
	// incomplete at validation time.
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Suggestions, 1)
	assert.Contains(t, res.Suggestions[0], "missingJob")
}

func TestValidateInWorkflowKnownJob(t *testing.T) {
	res := ValidateInWorkflow("${{ needs.build.outputs.sha }}", EnhancedContext{
		Context: Context{EventType: "push", AvailableJobs: []string{"build"}},
	})

	assert.True(t, res.Valid)
	assert.Empty(t, res.Suggestions)
}

func TestValidateInWorkflowStepCheckNeedsCurrentJob(t *testing.T) {
	ctx := EnhancedContext{
		Context:        Context{EventType: "push", AvailableJobs: []string{"build"}},
		AvailableSteps: []string{"checkout"},
	}

	// Without a current job the step check does not run at all.
	res := ValidateInWorkflow("${{ steps.compile.outputs.bin }}", ctx)
	assert.Empty(t, res.Suggestions)

	ctx.CurrentJob = "build"
	res = ValidateInWorkflow("${{ steps.compile.outputs.bin }}", ctx)
	require.Len(t, res.Suggestions, 1)
	assert.Contains(t, res.Suggestions[0], "compile")

	res = ValidateInWorkflow("${{ steps.checkout.outputs.ref }}", ctx)
	assert.Empty(t, res.Suggestions)
}

func TestValidateInWorkflowMatrixHint(t *testing.T) {
	res := ValidateInWorkflow("${{ matrix.os }}-${{ matrix.arch }}", EnhancedContext{
		Context: Context{EventType: "push", CurrentJob: "build"},
	})

	assert.True(t, res.Valid)
	hints := 0
	for _, s := range res.Suggestions {
		if s == "matrix expression found; set strategy.fail-fast explicitly to control cancellation behaviour" {
			hints++
		}
	}
	assert.Equal(t, 1, hints, "matrix hint should appear exactly once")
}

func TestValidateInWorkflowStructuralTitleCheck(t *testing.T) {
	// No run: token anywhere, so the substring heuristic stays quiet; the
	// structural pass still flags the parsed path.
	res := ValidateInWorkflow("${{ github.event.pull_request.title }}", EnhancedContext{
		Context: Context{EventType: "pull_request"},
	})

	assert.True(t, res.Valid)
	require.NotEmpty(t, res.Suggestions)
	assert.Contains(t, res.Suggestions[0], "attacker-controlled")
}

func TestValidateInWorkflowBaseErrorsSurvive(t *testing.T) {
	res := ValidateInWorkflow("${{ nonsense.path }}", EnhancedContext{
		Context: Context{EventType: "push"},
	})

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "nonsense")
}
