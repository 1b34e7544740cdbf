package sim

// FIFOPolicy evicts frames in the order they were claimed.
type FIFOPolicy struct {
	queue []FrameRef // arrival order; front is the next victim
}

// NewFIFOPolicy creates an empty FIFO policy.
func NewFIFOPolicy() *FIFOPolicy {
	return &FIFOPolicy{}
}

func (p *FIFOPolicy) Algorithm() Algorithm { return AlgorithmFIFO }

func (p *FIFOPolicy) Register(ref FrameRef, _ int) {
	p.queue = append(p.queue, ref)
}

// Touch is a no-op: arrival order does not change on a hit.
func (p *FIFOPolicy) Touch(FrameRef, int) {}

func (p *FIFOPolicy) Evict(count int) ([]FrameRef, error) {
	if count > len(p.queue) {
		return nil, exhausted(AlgorithmFIFO, count, len(p.queue))
	}
	victims := make([]FrameRef, count)
	copy(victims, p.queue[:count])
	p.queue = p.queue[count:]
	return victims, nil
}

func (p *FIFOPolicy) Unregister(allocationID int) {
	kept := p.queue[:0]
	for _, ref := range p.queue {
		if ref.AllocationID != allocationID {
			kept = append(kept, ref)
		}
	}
	p.queue = kept
}

func (p *FIFOPolicy) Tracked() int { return len(p.queue) }
