package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
)

func TestLoadScenario_ValidYAML_LoadsCorrectly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	yaml := `
version: "1"
config:
  technique: segmentation
  memory_size: 256
  page_size: 64
  algorithm: lru
steps:
  - op: allocate
    size: 100
  - op: access
    address: 64
  - op: deallocate
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, sim.Config{
		Technique:  sim.TechniqueSegmentation,
		MemorySize: 256,
		PageSize:   64,
		Algorithm:  sim.AlgorithmLRU,
	}, s.Config)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, "allocate", s.Steps[0].Op)
	require.NotNil(t, s.Steps[0].Size)
	assert.Equal(t, 100, *s.Steps[0].Size)
	require.NotNil(t, s.Steps[1].Address)
	assert.Equal(t, 64, *s.Steps[1].Address)
	assert.Nil(t, s.Steps[2].Address)
}

func TestParseScenario_MissingConfigFields_UseDefaults(t *testing.T) {
	s, err := ParseScenario([]byte("config:\n  algorithm: LRU\n"))
	require.NoError(t, err)

	want := sim.DefaultConfig()
	want.Algorithm = sim.AlgorithmLRU
	assert.Equal(t, want, s.Config)
}

func TestParseScenario_UnknownKey_ReturnsError(t *testing.T) {
	_, err := ParseScenario([]byte("config:\n  memory_sise: 256\n"))
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading scenario")
}

func TestScenario_Validate(t *testing.T) {
	size := 10
	tests := []struct {
		name string
		s    Scenario
		want error
	}{
		{"valid", Scenario{Config: sim.DefaultConfig(), Steps: []Step{{Op: "allocate", Size: &size}}}, nil},
		{"bad config", Scenario{Config: sim.Config{Technique: "paging", MemorySize: 100, PageSize: 64, Algorithm: "FIFO"}}, sim.ErrConfiguration},
		{"bad step", Scenario{Config: sim.DefaultConfig(), Steps: []Step{{Op: "free"}}}, ErrUnknownOperation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestScenario_Validate_UnsupportedVersion(t *testing.T) {
	s := Scenario{Version: "2", Config: sim.DefaultConfig()}
	assert.ErrorContains(t, s.Validate(), "unsupported scenario version")
}

func TestBundledScenarios_AreValid(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			assert.NoError(t, s.Validate())
		})
	}
}

func TestStep_Validate_UsesOpRegistry(t *testing.T) {
	for _, op := range []string{"allocate", "deallocate", "access"} {
		assert.True(t, IsValidOp(op))
		assert.NoError(t, Step{Op: op}.Validate())
	}
	assert.False(t, IsValidOp("Allocate"))
	assert.ErrorIs(t, Step{Op: "compact"}.Validate(), ErrUnknownOperation)
}
