// Package trace provides operation-log recording for the memory simulation engine.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// OperationType names an engine operation.
type OperationType string

const (
	OpAllocate   OperationType = "allocate"
	OpDeallocate OperationType = "deallocate"
	OpAccess     OperationType = "access"
)

// Outcome is the result of an access.
type Outcome string

const (
	OutcomeHit   Outcome = "hit"
	OutcomeFault Outcome = "fault"
)

// OperationRecord captures one completed engine operation.
// Address is the byte address the operation returned (allocate) or targeted
// (deallocate, access). Frames lists the frames claimed or released.
type OperationRecord struct {
	Seq          int           `json:"seq" yaml:"seq"`
	Type         OperationType `json:"type" yaml:"type"`
	AllocationID int           `json:"process_id" yaml:"process_id"`
	Size         int           `json:"size,omitempty" yaml:"size,omitempty"`
	Address      int           `json:"address" yaml:"address"`
	Frames       []int         `json:"frames,omitempty" yaml:"frames,omitempty"`
	Evicted      []int         `json:"evicted,omitempty" yaml:"evicted,omitempty"` // frames freed by replacement first
	Result       Outcome       `json:"result,omitempty" yaml:"result,omitempty"`   // access only
}
