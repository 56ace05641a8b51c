package expr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateKnownContext(t *testing.T) {
	res := Validate("${{ github.sha }}", Context{EventType: "push"})

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Suggestions)
	require.NotNil(t, res.Components)
}

func TestValidateUnknownContext(t *testing.T) {
	res := Validate("${{ foo.bar }}", Context{EventType: "push"})

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "foo")

	require.Len(t, res.Suggestions, 1)
	for _, name := range KnownContexts {
		assert.Contains(t, res.Suggestions[0], name)
	}
	assert.Len(t, KnownContexts, 11)
}

func TestValidateEventScope(t *testing.T) {
	res := Validate("${{ github.event.pull_request.title }}", Context{EventType: "push"})

	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "pull_request")

	// Same expression on the right event is fine.
	ok := Validate("${{ github.event.pull_request.title }}", Context{EventType: "pull_request"})
	assert.True(t, ok.Valid)
}

func TestValidateUnknownFunction(t *testing.T) {
	res := Validate("${{ doSomething(1) }}", Context{EventType: "push"})

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "doSomething")

	require.Len(t, res.Suggestions, 1)
	for _, name := range KnownFunctions {
		assert.Contains(t, res.Suggestions[0], name)
	}
	assert.Len(t, KnownFunctions, 7)
}

func TestValidateKnownFunctions(t *testing.T) {
	res := Validate("${{ contains(github.ref, 'main') }}", Context{EventType: "push"})
	assert.True(t, res.Valid)

	res = Validate("${{ startsWith(github.ref, 'refs/tags/') }}", Context{EventType: "push"})
	assert.True(t, res.Valid)
}

func TestValidateInjectionHeuristic(t *testing.T) {
	// Untrusted field followed by a run: token in the same text.
	res := Validate("${{ github.event.issue.title }} run: echo hi", Context{EventType: "issues"})
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "untrusted")

	// Adjacency is required: the same field without run: is not flagged.
	res = Validate("${{ github.event.issue.title }}", Context{EventType: "issues"})
	assert.True(t, res.Valid)

	// Multiple matching patterns still add a single shared pair.
	combined := "${{ github.event.issue.title }} ${{ github.event.comment.body }} run: echo"
	res = Validate(combined, Context{EventType: "issues"})
	count := 0
	for _, e := range res.Errors {
		if strings.Contains(e, "untrusted") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	res := Validate("${{ bogus.value == doSomething(github.event.pull_request.title) }}",
		Context{EventType: "push"})

	assert.False(t, res.Valid)
	// Unknown context, event scoping and unknown function all reported in
	// one call, in discovery order.
	require.Len(t, res.Errors, 3)
	assert.Contains(t, res.Errors[0], "bogus")
	assert.Contains(t, res.Errors[1], "pull_request")
	assert.Contains(t, res.Errors[2], "doSomething")
}

func TestValidateRepeatedUnknownContextSharesSuggestion(t *testing.T) {
	res := Validate("${{ foo.a == bar.b }}", Context{EventType: "push"})

	assert.Len(t, res.Errors, 2)
	assert.Len(t, res.Suggestions, 1)
}
