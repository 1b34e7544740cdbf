package sim

import (
	"fmt"
	"strings"
)

// Technique labels the memory management technique being visualized.
// Segmentation is accepted as a label only; it runs the same frame-based algorithm as paging.
type Technique string

const (
	TechniquePaging       Technique = "paging"
	TechniqueSegmentation Technique = "segmentation"
)

// Algorithm names a page replacement algorithm.
type Algorithm string

const (
	AlgorithmFIFO Algorithm = "FIFO"
	AlgorithmLRU  Algorithm = "LRU"
)

// Configuration bounds, in bytes.
const (
	MaxMemorySize = 4096
	MaxPageSize   = 512
)

// Valid value registries.
var (
	validTechniques = map[Technique]bool{
		TechniquePaging: true, TechniqueSegmentation: true,
	}
	validAlgorithms = map[Algorithm]bool{
		AlgorithmFIFO: true, AlgorithmLRU: true,
	}
)

// IsValidTechnique reports whether name is a recognized technique.
func IsValidTechnique(name string) bool {
	return validTechniques[Technique(name)]
}

// IsValidAlgorithm reports whether name is a recognized replacement algorithm.
func IsValidAlgorithm(name string) bool {
	return validAlgorithms[Algorithm(name)]
}

// Config is fixed when an Engine is constructed and never changes afterwards.
type Config struct {
	Technique  Technique `yaml:"technique" json:"technique"`
	MemorySize int       `yaml:"memory_size" json:"memory_size"` // bytes, 1..MaxMemorySize
	PageSize   int       `yaml:"page_size" json:"page_size"`     // bytes, 1..MaxPageSize
	Algorithm  Algorithm `yaml:"algorithm" json:"algorithm"`
}

// DefaultConfig returns the configuration used when a caller supplies none:
// paging over 1024 bytes in 64-byte frames with FIFO replacement.
func DefaultConfig() Config {
	return Config{
		Technique:  TechniquePaging,
		MemorySize: 1024,
		PageSize:   64,
		Algorithm:  AlgorithmFIFO,
	}
}

// Normalize canonicalizes the casing of the technique and algorithm names
// ("lru" -> "LRU", "Paging" -> "paging"). Sizes are left untouched.
func (c Config) Normalize() Config {
	c.Technique = Technique(strings.ToLower(strings.TrimSpace(string(c.Technique))))
	c.Algorithm = Algorithm(strings.ToUpper(strings.TrimSpace(string(c.Algorithm))))
	return c
}

// Validate checks every configuration constraint. Errors wrap ErrConfiguration.
func (c Config) Validate() error {
	if !IsValidTechnique(string(c.Technique)) {
		return fmt.Errorf("unknown technique %q; valid: paging, segmentation: %w", c.Technique, ErrConfiguration)
	}
	if !IsValidAlgorithm(string(c.Algorithm)) {
		return fmt.Errorf("unknown algorithm %q; valid: FIFO, LRU: %w", c.Algorithm, ErrConfiguration)
	}
	if c.MemorySize < 1 || c.MemorySize > MaxMemorySize {
		return fmt.Errorf("memory_size must be in [1, %d], got %d: %w", MaxMemorySize, c.MemorySize, ErrConfiguration)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be in [1, %d], got %d: %w", MaxPageSize, c.PageSize, ErrConfiguration)
	}
	if c.MemorySize%c.PageSize != 0 {
		return fmt.Errorf("memory_size %d is not a multiple of page_size %d: %w", c.MemorySize, c.PageSize, ErrConfiguration)
	}
	return nil
}

// TotalFrames returns memory_size / page_size. Only meaningful on a valid Config.
func (c Config) TotalFrames() int {
	if c.PageSize <= 0 {
		return 0
	}
	return c.MemorySize / c.PageSize
}
