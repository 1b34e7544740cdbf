// Package script loads and replays YAML scenarios: one engine configuration
// followed by an ordered list of allocate/deallocate/access steps.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
)

// Defaults applied when a step omits its operand.
const (
	DefaultAllocationSize = 64
	DefaultAddress        = 0
)

// Scenario is the top-level scenario file.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	Version         string     `yaml:"version"`
	Config          sim.Config `yaml:"config"`
	ContinueOnError bool       `yaml:"continue_on_error"` // keep replaying after a failed step
	Steps           []Step     `yaml:"steps"`
}

// Step is one engine operation. Size applies to allocate, Address to
// deallocate and access; a nil operand takes its default.
// The JSON form is the body of POST /api/next_step.
type Step struct {
	Op      string `yaml:"op" json:"operation"`
	Size    *int   `yaml:"size,omitempty" json:"size,omitempty"`
	Address *int   `yaml:"address,omitempty" json:"address,omitempty"`
}

// ErrUnknownOperation rejects a step whose op is not allocate, deallocate or access.
var ErrUnknownOperation = errors.New("unknown operation")

var validOps = map[string]bool{
	"allocate": true, "deallocate": true, "access": true,
}

// IsValidOp reports whether name is a recognized step operation.
func IsValidOp(name string) bool {
	return validOps[name]
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
// Missing config fields are filled from sim.DefaultConfig.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory with the same rules as LoadScenario.
func ParseScenario(data []byte) (*Scenario, error) {
	s := Scenario{Config: sim.DefaultConfig()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	s.Config = s.Config.Normalize()
	return &s, nil
}

// Validate checks the configuration and every step.
func (s *Scenario) Validate() error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unsupported scenario version %q; valid: 1", s.Version)
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("step[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks that the operation is known. Operands that do not apply
// to the operation are ignored.
func (st Step) Validate() error {
	if !IsValidOp(st.Op) {
		return fmt.Errorf("%w %q; valid: allocate, deallocate, access", ErrUnknownOperation, st.Op)
	}
	return nil
}
