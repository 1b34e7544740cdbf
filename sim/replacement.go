package sim

import "fmt"

// FrameRef identifies one frame owned by one allocation.
type FrameRef struct {
	AllocationID int
	Frame        int
}

// ReplacementPolicy picks which allocated frames to give up when an
// allocation needs more frames than are free. The engine registers every
// frame it hands out and unregisters whole allocations on deallocation, so
// Tracked() always equals the number of allocated frames.
type ReplacementPolicy interface {
	// Algorithm returns the algorithm this policy implements.
	Algorithm() Algorithm
	// Register starts tracking a newly claimed frame. tick is the engine's
	// access counter at claim time.
	Register(ref FrameRef, tick int)
	// Touch records a hit on a tracked frame.
	Touch(ref FrameRef, tick int)
	// Evict removes exactly count frames from tracking and returns them in
	// eviction order. It returns ErrExhausted without changing anything if
	// fewer than count frames are tracked.
	Evict(count int) ([]FrameRef, error)
	// Unregister drops every tracked frame owned by allocationID.
	Unregister(allocationID int)
	// Tracked returns the number of frames currently tracked.
	Tracked() int
}

// NewReplacementPolicy creates a replacement policy by algorithm name.
// Panics on unrecognized names; Config.Validate rejects them earlier.
func NewReplacementPolicy(algorithm Algorithm) ReplacementPolicy {
	if !validAlgorithms[algorithm] {
		panic(fmt.Sprintf("unknown replacement algorithm %q", algorithm))
	}
	switch algorithm {
	case AlgorithmFIFO:
		return NewFIFOPolicy()
	case AlgorithmLRU:
		return NewLRUPolicy()
	default:
		panic(fmt.Sprintf("unhandled replacement algorithm %q", algorithm))
	}
}

func exhausted(policy Algorithm, count, tracked int) error {
	return fmt.Errorf("%s: asked to evict %d frames, tracking %d: %w", policy, count, tracked, ErrExhausted)
}
