package sim

// LRUPolicy evicts the frame with the oldest last-touch tick.
// Frames sharing a tick are evicted in ascending frame order, so frames
// claimed together by one allocation leave lowest index first.
type LRUPolicy struct {
	lastTouch map[FrameRef]int
}

// NewLRUPolicy creates an empty LRU policy.
func NewLRUPolicy() *LRUPolicy {
	return &LRUPolicy{lastTouch: make(map[FrameRef]int)}
}

func (p *LRUPolicy) Algorithm() Algorithm { return AlgorithmLRU }

func (p *LRUPolicy) Register(ref FrameRef, tick int) {
	p.lastTouch[ref] = tick
}

// Touch refreshes a tracked frame. Untracked frames are ignored.
func (p *LRUPolicy) Touch(ref FrameRef, tick int) {
	if _, ok := p.lastTouch[ref]; ok {
		p.lastTouch[ref] = tick
	}
}

func (p *LRUPolicy) Evict(count int) ([]FrameRef, error) {
	if count > len(p.lastTouch) {
		return nil, exhausted(AlgorithmLRU, count, len(p.lastTouch))
	}
	victims := make([]FrameRef, 0, count)
	for i := 0; i < count; i++ {
		victim := p.leastRecent()
		delete(p.lastTouch, victim)
		victims = append(victims, victim)
	}
	return victims, nil
}

// leastRecent scans for the minimum (tick, frame). Callers guarantee the map is non-empty.
func (p *LRUPolicy) leastRecent() FrameRef {
	var victim FrameRef
	bestTick, first := 0, true
	for ref, tick := range p.lastTouch {
		if first || tick < bestTick || (tick == bestTick && ref.Frame < victim.Frame) {
			victim, bestTick, first = ref, tick, false
		}
	}
	return victim
}

func (p *LRUPolicy) Unregister(allocationID int) {
	for ref := range p.lastTouch {
		if ref.AllocationID == allocationID {
			delete(p.lastTouch, ref)
		}
	}
}

func (p *LRUPolicy) Tracked() int { return len(p.lastTouch) }
