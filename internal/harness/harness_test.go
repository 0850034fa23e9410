package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/basc/internal/timeline"
)

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Equal(t, "build-001", result.BuildID)
			assert.NotEmpty(t, result.Hash)
		})
	}
}

func TestLoadScenarioResolvesScenePath(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/reveal.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "scenes", "reveal.yaml"), scenario.Scene)
	assert.Len(t, scenario.Assertions, 7)
}

func TestLoadScenarioErrors(t *testing.T) {
	scene, err := filepath.Abs("testdata/scenes/parallel.yaml")
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "unknown field", body: "name: x\ndescription: d\nscene: " + scene + "\nassertion: []\n", want: "failed to parse YAML"},
		{name: "missing name", body: "description: d\nscene: " + scene + "\n", want: "name is required"},
		{name: "missing description", body: "name: x\nscene: " + scene + "\n", want: "description is required"},
		{name: "missing scene", body: "name: x\ndescription: d\n", want: "scene is required"},
		{name: "scene not found", body: "name: x\ndescription: d\nscene: nope.yaml\n", want: "scene file not found"},
		{name: "unknown assertion", body: "name: x\ndescription: d\nscene: " + scene + "\nassertions:\n  - type: vibes\n", want: `unknown assertion type "vibes"`},
		{name: "untyped assertion", body: "name: x\ndescription: d\nscene: " + scene + "\nassertions:\n  - item: a\n", want: "type is required"},
		{name: "elapsed without ms", body: "name: x\ndescription: d\nscene: " + scene + "\nassertions:\n  - type: elapsed\n    item: a\n", want: "item and ms are required"},
		{name: "sample without expect", body: "name: x\ndescription: d\nscene: " + scene + "\nassertions:\n  - type: sample\n    item: a\n    at: 1s\n", want: "expect is required"},
		{name: "line missing", body: "name: x\ndescription: d\nscene: " + scene + "\nassertions:\n  - type: program_contains\n", want: "line is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/missing.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunReportsFailedAssertions(t *testing.T) {
	ms := 1.0
	scenario := &Scenario{
		Name:        "failing",
		Description: "every assertion is wrong",
		Scene:       "testdata/scenes/parallel.yaml",
		Assertions: []Assertion{
			{Type: AssertItemCount, Count: 2},
			{Type: AssertElapsed, Item: "a", MS: &ms},
			{Type: AssertProgramContains, Line: "set a {} 0s"},
			{Type: AssertDefinition, Item: "a", Contains: []string{"x=2"}},
			{Type: AssertSample, Item: "a", At: "3s", Expect: map[string]any{"x": 2}},
			{Type: AssertSample, Item: "zz", At: "0s", Expect: map[string]any{"x": 1}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 6)
	assert.Contains(t, result.Errors[0], "item_count: expected 2, got 1")
	assert.Contains(t, result.Errors[1], "elapsed: expected 1ms, got 3000ms")
	assert.Contains(t, result.Errors[2], "no such line")
	assert.Contains(t, result.Errors[3], `def text a{content="p" x=1}`)
	assert.Contains(t, result.Errors[4], "x=2 at 3s")
	assert.Contains(t, result.Errors[5], "unknown item")
}

func TestRunInvalidScene(t *testing.T) {
	scenario := &Scenario{
		Name:        "invalid",
		Description: "scene fails validation",
		Scene:       "../scene/testdata/invalid.yaml",
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load scene")
}

func TestAssertDefinitionUnknownItem(t *testing.T) {
	reg := timeline.NewRegistry()
	prog := reg.Compile()

	err := evaluate(Assertion{Type: AssertDefinition, Item: "a", Contains: []string{"x"}}, prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `item "a" is not defined`)
}

func TestResultAddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)
	assert.Empty(t, r.Errors)

	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
