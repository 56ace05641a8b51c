package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgricker/actionsmith/internal/classify"
	"github.com/bgricker/actionsmith/internal/handler"
	"github.com/bgricker/actionsmith/internal/report"
)

const validWorkflow = `name: CI
on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - name: Checkout
        uses: actions/checkout@v4
      - name: Test
        run: go test ./...
`

const validFunding = `github: [octocat]
`

func newTestPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	handlers, err := handler.NewSet()
	require.NoError(t, err)
	return New(handlers, opts)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFileWorkflow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".github/workflows/ci.yml", validWorkflow)

	pipe := newTestPipeline(t, Options{})
	res := pipe.ProcessFile(context.Background(), path)

	assert.Equal(t, report.StatusPassed, res.Status)
	assert.Equal(t, string(classify.KindWorkflow), res.Kind)
	assert.Empty(t, res.Error)
	assert.Contains(t, res.Output, `builder.NewWorkflow("CI")`)
}

func TestProcessFileParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".github/workflows/broken.yml", "on: [push\njobs:")

	pipe := newTestPipeline(t, Options{})
	res := pipe.ProcessFile(context.Background(), path)

	assert.Equal(t, report.StatusFailed, res.Status)
	assert.Equal(t, string(PhaseParse), res.Phase)
	// No partial classification or emission happened.
	assert.Equal(t, string(classify.KindUnknown), res.Kind)
	assert.Empty(t, res.Output)
}

func TestProcessFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "key = 1")

	pipe := newTestPipeline(t, Options{})
	res := pipe.ProcessFile(context.Background(), path)

	assert.Equal(t, string(PhaseParse), res.Phase)
	assert.Contains(t, res.Error, "unsupported file extension")
}

func TestProcessFileClassifyError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", "# just a readme")

	pipe := newTestPipeline(t, Options{})
	res := pipe.ProcessFile(context.Background(), path)

	assert.Equal(t, report.StatusFailed, res.Status)
	assert.Equal(t, string(PhaseClassify), res.Phase)
}

func TestProcessFileValidatePhase(t *testing.T) {
	dir := t.TempDir()
	// Classifies as dependabot config but violates the schema.
	path := writeFile(t, dir, ".github/dependabot.yml", `version: 2
updates:
  - package-ecosystem: gomod
    directory: /
    schedule:
      interval: hourly
`)

	pipe := newTestPipeline(t, Options{})
	res := pipe.ProcessFile(context.Background(), path)
	assert.Equal(t, report.StatusFailed, res.Status)
	assert.Equal(t, string(PhaseValidate), res.Phase)
	assert.Contains(t, res.Error, "schema validation failed")

	// Skipping validation lets the same file through to emission.
	skip := newTestPipeline(t, Options{SkipValidation: true})
	res = skip.ProcessFile(context.Background(), path)
	assert.Equal(t, report.StatusPassed, res.Status)
	assert.Contains(t, res.Output, "package-ecosystem: gomod")
}

func TestProcessFileJSONInput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "workflow.json", `{"name":"CI","on":"push","jobs":{"build":{"runs-on":"ubuntu-latest","steps":[{"run":"make"}]}}}`)

	pipe := newTestPipeline(t, Options{})
	res := pipe.ProcessFile(context.Background(), path)
	assert.Equal(t, report.StatusPassed, res.Status)
	assert.Equal(t, string(classify.KindWorkflow), res.Kind)
}

func TestProcessFileCollectsDecodeWarnings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".github/workflows/ci.yml", `name: CI
on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - name: Checkout
        uses: actions/checkout
      - name: Test
        run: go test ./...
`)

	pipe := newTestPipeline(t, Options{})
	res := pipe.ProcessFile(context.Background(), path)

	assert.Equal(t, report.StatusPassed, res.Status)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "build")
	assert.Contains(t, res.Warnings[0], "not pinned to a version")
}

func TestProcessAllContinuesPastFailures(t *testing.T) {
	dir := t.TempDir()
	one := writeFile(t, dir, ".github/workflows/one.yml", validWorkflow)
	two := writeFile(t, dir, ".github/workflows/two.yml", "on: [push\n")
	three := writeFile(t, dir, "FUNDING.yml", validFunding)

	pipe := newTestPipeline(t, Options{})
	results, summary := pipe.ProcessAll(context.Background(), []string{one, two, three})

	require.Len(t, results, 3)
	assert.Equal(t, report.StatusPassed, results[0].Status)
	assert.Equal(t, report.StatusFailed, results[1].Status)
	assert.Equal(t, report.StatusPassed, results[2].Status)
	// Original order preserved.
	assert.Equal(t, one, results[0].Path)
	assert.Equal(t, two, results[1].Path)
	assert.Equal(t, three, results[2].Path)

	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.ExitCode)
}

func TestProcessAllFailFast(t *testing.T) {
	dir := t.TempDir()
	one := writeFile(t, dir, ".github/workflows/one.yml", "on: [push\n")
	two := writeFile(t, dir, ".github/workflows/two.yml", validWorkflow)

	pipe := newTestPipeline(t, Options{FailFast: true})
	results, summary := pipe.ProcessAll(context.Background(), []string{one, two})

	require.Len(t, results, 1)
	assert.Equal(t, report.StatusFailed, results[0].Status)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Passed)
}

func TestClassifyOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".github/FUNDING.yml", validFunding)

	pipe := newTestPipeline(t, Options{})
	res := pipe.Classify(context.Background(), path)

	assert.Equal(t, report.StatusPassed, res.Status)
	assert.Equal(t, string(classify.KindFunding), res.Kind)
	assert.Empty(t, res.Output)
}

func TestErrorFormatting(t *testing.T) {
	err := &Error{File: "ci.yml", Kind: classify.KindWorkflow, Phase: PhaseValidate, Message: "boom"}
	assert.Equal(t, "ci.yml: validate: boom", err.Error())
}
