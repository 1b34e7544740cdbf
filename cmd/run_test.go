package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim/script"
	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim/trace"
)

func TestParseSteps_OperandsAndDefaults(t *testing.T) {
	steps, err := ParseSteps("allocate:128, access:0,Deallocate, access")
	require.NoError(t, err)
	require.Len(t, steps, 4)

	assert.Equal(t, "allocate", steps[0].Op)
	require.NotNil(t, steps[0].Size)
	assert.Equal(t, 128, *steps[0].Size)
	assert.Nil(t, steps[0].Address)

	assert.Equal(t, "access", steps[1].Op)
	require.NotNil(t, steps[1].Address)
	assert.Equal(t, 0, *steps[1].Address)

	assert.Equal(t, "deallocate", steps[2].Op)
	assert.Nil(t, steps[2].Address)
	assert.Nil(t, steps[3].Address)
}

func TestParseSteps_Errors(t *testing.T) {
	_, err := ParseSteps("allocate:abc")
	assert.ErrorContains(t, err, "invalid operand")

	_, err = ParseSteps("swap:0")
	assert.ErrorIs(t, err, script.ErrUnknownOperation)
}

func TestParseSteps_EmptyParts_Skipped(t *testing.T) {
	steps, err := ParseSteps(" , access:64,,")
	require.NoError(t, err)
	assert.Len(t, steps, 1)
}

func TestWriteReport_WritesJSON(t *testing.T) {
	// GIVEN a replayed scenario
	steps, err := ParseSteps("allocate:64,access:0")
	require.NoError(t, err)
	engine, results, err := script.Replay(&script.Scenario{Config: sim.DefaultConfig(), Steps: steps})
	require.NoError(t, err)

	// WHEN the report is written
	path := filepath.Join(t.TempDir(), "results.json")
	report := RunReport{
		Config:  engine.Config(),
		Steps:   results,
		Results: engine.Results(),
		Summary: trace.Summarize(engine.Log()),
		State:   engine.State(),
	}
	require.NoError(t, writeReport(path, report))

	// THEN it decodes back with the analytics intact
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	res := decoded["results"].(map[string]any)
	assert.Equal(t, float64(1), res["page_hits"])
	assert.Equal(t, float64(1), res["hit_ratio"])
	summary := decoded["summary"].(map[string]any)
	assert.Equal(t, float64(2), summary["total_operations"])
}

func TestBuildScenario_UnknownNames_RejectedBeforeReplay(t *testing.T) {
	prevAlg, prevTech := algorithm, technique
	t.Cleanup(func() { algorithm, technique = prevAlg, prevTech })

	algorithm = "mru"
	_, err := buildScenario(runCmd)
	assert.ErrorContains(t, err, `unknown algorithm "MRU"`)

	algorithm, technique = "lru", "buddy"
	_, err = buildScenario(runCmd)
	assert.ErrorContains(t, err, `unknown technique "buddy"`)

	technique = "Segmentation"
	scenario, err := buildScenario(runCmd)
	require.NoError(t, err)
	assert.Equal(t, sim.TechniqueSegmentation, scenario.Config.Technique)
	assert.Equal(t, sim.AlgorithmLRU, scenario.Config.Algorithm)
}

func TestParseSteps_MaxIntSize_FailsAsCapacityOnReplay(t *testing.T) {
	steps, err := ParseSteps("allocate:9223372036854775807")
	require.NoError(t, err)

	_, results, err := script.Replay(&script.Scenario{Config: sim.DefaultConfig(), Steps: steps})

	require.ErrorIs(t, err, sim.ErrCapacity)
	require.Len(t, results, 1)
	assert.Equal(t, "capacity", results[0].Kind)
}
