package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuite(t *testing.T) {
	suite, err := New().RunSuite(filepath.Join("testdata", "scenarios"), SuiteOptions{})
	require.NoError(t, err)

	assert.Equal(t, 5, suite.Total)
	assert.Equal(t, 5, suite.Passed)
	assert.Zero(t, suite.Failed)
	for _, sr := range suite.Scenarios {
		assert.True(t, sr.Pass, "%s: %v", sr.Name, sr.Errors)
	}
}

func TestRunSuiteFilter(t *testing.T) {
	suite, err := New().RunSuite(filepath.Join("testdata", "scenarios"), SuiteOptions{Filter: "*_counters"})
	require.NoError(t, err)

	require.Equal(t, 1, suite.Total)
	assert.Equal(t, "missing_counters", suite.Scenarios[0].Name)
}

func TestRunSuiteBadFilter(t *testing.T) {
	_, err := New().RunSuite(filepath.Join("testdata", "scenarios"), SuiteOptions{Filter: "["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestRunSuiteMissingDir(t *testing.T) {
	_, err := New().RunSuite(filepath.Join(t.TempDir(), "nope"), SuiteOptions{})
	assert.Error(t, err)
}

func TestRunSuiteReportsLoadFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [\n"), 0o644))

	suite, err := New().RunSuite(dir, SuiteOptions{})
	require.NoError(t, err)

	require.Equal(t, 1, suite.Failed)
	assert.Equal(t, "broken.yaml", suite.Scenarios[0].Name)
	assert.Contains(t, suite.Scenarios[0].Errors[0], "failed to load scenario")
}

func TestRunSuiteUpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	scenario := "name: s\ndescription: d\ngolden: true\ndocument: {instructions: [{type: XIC, args: go}], timers: {}, counters: {}, math_operations: {}, comparators: {}, set_reset_latches: {}, jump_instructions: {}, function_blocks: {}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.yaml"), []byte(scenario), 0o644))

	h := New()

	missing, err := h.RunSuite(dir, SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, missing.Failed)
	assert.Contains(t, missing.Scenarios[0].Errors[0], "golden file missing")

	updated, err := h.RunSuite(dir, SuiteOptions{Update: true})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Passed)
	assert.True(t, updated.Scenarios[0].Updated)

	again, err := h.RunSuite(dir, SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Passed)
	assert.Len(t, again.Scenarios, 1, "golden/ is not scanned for scenarios")
}
