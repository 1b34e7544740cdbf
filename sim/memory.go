package sim

// FrameStatus is the occupancy of one frame.
type FrameStatus string

const (
	FrameFree      FrameStatus = "free"
	FrameAllocated FrameStatus = "allocated"
)

// Frame is one fixed-size slot of simulated physical memory.
type Frame struct {
	Status FrameStatus
	Owner  int // allocation id; 0 when free (ids start at 1)
}

// freeFrames returns the indices of all free frames in ascending order.
func (e *Engine) freeFrames() []int {
	free := make([]int, 0, len(e.frames))
	for i, f := range e.frames {
		if f.Status == FrameFree {
			free = append(free, i)
		}
	}
	return free
}

// allocatedFrames counts frames currently owned by some allocation.
func (e *Engine) allocatedFrames() int {
	n := 0
	for _, f := range e.frames {
		if f.Status == FrameAllocated {
			n++
		}
	}
	return n
}

// claim hands a free frame to an allocation and registers it with the policy.
func (e *Engine) claim(id, frame int) {
	e.frames[frame] = Frame{Status: FrameAllocated, Owner: id}
	e.allocations[id] = append(e.allocations[id], frame)
	e.policy.Register(FrameRef{AllocationID: id, Frame: frame}, e.memoryAccesses)
}

// evictFrame frees one frame chosen by the policy and unlinks it from its
// allocation, dropping the allocation once it owns nothing.
func (e *Engine) evictFrame(ref FrameRef) {
	e.frames[ref.Frame] = Frame{Status: FrameFree}
	owned := e.allocations[ref.AllocationID]
	kept := owned[:0]
	for _, f := range owned {
		if f != ref.Frame {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		delete(e.allocations, ref.AllocationID)
	} else {
		e.allocations[ref.AllocationID] = kept
	}
}

// frameIndex maps a byte address to a frame index, rejecting addresses
// outside [0, memory_size).
func (e *Engine) frameIndex(address int) (int, error) {
	if address < 0 {
		return 0, ErrInvalidAddress
	}
	frame := address / e.config.PageSize
	if frame >= e.totalFrames {
		return 0, ErrInvalidAddress
	}
	return frame, nil
}
