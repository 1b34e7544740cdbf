package script

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim/trace"
)

// StepResult describes what one applied step did.
type StepResult struct {
	Index   int           `json:"index"`
	Op      string        `json:"operation"`
	Address int           `json:"address"`          // returned (allocate) or targeted address
	Outcome trace.Outcome `json:"result,omitempty"` // access only
	Error   string        `json:"error,omitempty"`
	Kind    string        `json:"kind,omitempty"` // sim.Kind of Error
}

// Apply runs one step against the engine, filling in default operands.
func Apply(e *sim.Engine, st Step) (StepResult, error) {
	if err := st.Validate(); err != nil {
		return StepResult{Op: st.Op}, err
	}
	res := StepResult{Op: st.Op}
	var err error
	switch st.Op {
	case "allocate":
		size := DefaultAllocationSize
		if st.Size != nil {
			size = *st.Size
		}
		res.Address, err = e.Allocate(size)
	case "deallocate":
		res.Address = operand(st.Address, DefaultAddress)
		err = e.Deallocate(res.Address)
	case "access":
		res.Address = operand(st.Address, DefaultAddress)
		res.Outcome, err = e.Access(res.Address)
	}
	if err != nil {
		res.Error = err.Error()
		res.Kind = sim.Kind(err)
	}
	return res, err
}

func operand(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Replay builds a fresh engine from the scenario and applies every step in
// order. A failed step stops the replay unless ContinueOnError is set; the
// failure is still reported in the returned results.
func Replay(s *Scenario) (*sim.Engine, []StepResult, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	e, err := sim.NewEngine(s.Config)
	if err != nil {
		return nil, nil, err
	}
	results := make([]StepResult, 0, len(s.Steps))
	for i, st := range s.Steps {
		res, err := Apply(e, st)
		res.Index = i
		results = append(results, res)
		if err != nil {
			if !s.ContinueOnError {
				return e, results, fmt.Errorf("step[%d] %s: %w", i, st.Op, err)
			}
			logrus.Warnf("step[%d] %s failed: %v", i, st.Op, err)
		}
	}
	return e, results, nil
}
