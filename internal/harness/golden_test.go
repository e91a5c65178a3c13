package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario under testdata/scenarios and compares
// its snapshot against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -run TestScenarios -update
func TestScenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name must match its file")

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "scenario failed:\n%s", strings.Join(result.Errors, "\n"))

			AssertGolden(t, scenario.Name, result)
		})
	}
}

func TestSnapshot_Format(t *testing.T) {
	result := NewResult()
	result.Grid = []string{"A", "", "B"}

	got := string(Snapshot("empty", result))
	assert.Equal(t, "scenario: empty\ntrace:\ngrid: A . B\ndock: -\n", got)

	result.Dock = []string{"C", "D"}
	assert.Contains(t, string(Snapshot("empty", result)), "dock: C D\n")
}

func TestRunWithGolden_ExistingScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/rollback_grid.yaml")
	require.NoError(t, err)

	require.NoError(t, RunWithGolden(t, scenario))
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/drawer_to_cell.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, Snapshot(scenario.Name, first), Snapshot(scenario.Name, second))
}
