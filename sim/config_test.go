package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 16, cfg.TotalFrames())
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"segmentation label", func(c *Config) { c.Technique = TechniqueSegmentation }, false},
		{"lru", func(c *Config) { c.Algorithm = AlgorithmLRU }, false},
		{"max sizes", func(c *Config) { c.MemorySize, c.PageSize = 4096, 512 }, false},
		{"single byte frames", func(c *Config) { c.MemorySize, c.PageSize = 7, 1 }, false},
		{"unknown technique", func(c *Config) { c.Technique = "swapping" }, true},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "CLOCK" }, true},
		{"lowercase algorithm not normalized", func(c *Config) { c.Algorithm = "lru" }, true},
		{"zero memory", func(c *Config) { c.MemorySize = 0 }, true},
		{"memory too large", func(c *Config) { c.MemorySize = 8192 }, true},
		{"zero page", func(c *Config) { c.PageSize = 0 }, true},
		{"page too large", func(c *Config) { c.MemorySize, c.PageSize = 2048, 1024 }, true},
		{"not a multiple", func(c *Config) { c.MemorySize, c.PageSize = 1000, 64 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Normalize_CanonicalizesNames(t *testing.T) {
	got := Config{Technique: " Paging", MemorySize: 256, PageSize: 64, Algorithm: "lru "}.Normalize()
	assert.Equal(t, Config{Technique: TechniquePaging, MemorySize: 256, PageSize: 64, Algorithm: AlgorithmLRU}, got)
}

func TestIsValidAlgorithmAndTechnique(t *testing.T) {
	assert.True(t, IsValidAlgorithm("FIFO"))
	assert.True(t, IsValidAlgorithm("LRU"))
	assert.False(t, IsValidAlgorithm("OPT"))
	assert.True(t, IsValidTechnique("segmentation"))
	assert.False(t, IsValidTechnique(""))
}
