package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim/trace"
)

// Engine is a frame-based memory simulator. It owns the frame table, the
// allocation table, the replacement policy, the counters and the operation log.
//
// Invariants after every operation:
//   - a frame is allocated iff exactly one allocation lists it
//   - policy.Tracked() equals the number of allocated frames
//   - pageHits + demand faults == memoryAccesses
//
// Every operation validates before mutating, so a returned error leaves the
// engine exactly as it was.
type Engine struct {
	config      Config
	totalFrames int
	frames      []Frame
	allocations map[int][]int // allocation id -> owned frames, ascending claim order
	policy      ReplacementPolicy
	log         *trace.OperationLog

	nextID         int
	memoryAccesses int
	pageHits       int
	pageFaults     int // demand faults plus evictions
	evictions      int
}

// NewEngine validates cfg and returns a fresh engine with every frame free
// and all counters at zero.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	total := cfg.TotalFrames()
	e := &Engine{
		config:      cfg,
		totalFrames: total,
		frames:      make([]Frame, total),
		allocations: make(map[int][]int),
		policy:      NewReplacementPolicy(cfg.Algorithm),
		log:         trace.NewOperationLog(),
		nextID:      1,
	}
	for i := range e.frames {
		e.frames[i] = Frame{Status: FrameFree}
	}
	logrus.Debugf("Memory engine initialized with %s, size: %d, page size: %d, frames: %d, algorithm: %s",
		cfg.Technique, cfg.MemorySize, cfg.PageSize, total, cfg.Algorithm)
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.config }

// TotalFrames returns the number of frames in the frame table.
func (e *Engine) TotalFrames() int { return e.totalFrames }

// Log returns the full operation log. Callers must not modify it.
func (e *Engine) Log() *trace.OperationLog { return e.log }

// Allocate reserves ceil(size/page_size) frames for a new allocation and
// returns the byte address of its first frame. When too few frames are
// free, the replacement policy evicts exactly the shortfall first; each
// eviction counts as a page fault.
func (e *Engine) Allocate(size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("allocate %d bytes: %w", size, ErrInvalidSize)
	}
	pages := (size-1)/e.config.PageSize + 1
	if pages > e.totalFrames {
		return 0, fmt.Errorf("requested size %d (%d pages) exceeds total memory size %d (%d frames): %w",
			size, pages, e.config.MemorySize, e.totalFrames, ErrCapacity)
	}

	free := e.freeFrames()
	var evicted []int
	if shortfall := pages - len(free); shortfall > 0 {
		victims, err := e.policy.Evict(shortfall)
		if err != nil {
			logrus.Errorf("replacement bookkeeping out of sync: %v", err)
			return 0, err
		}
		for _, v := range victims {
			e.evictFrame(v)
			e.pageFaults++
			e.evictions++
			evicted = append(evicted, v.Frame)
			logrus.Debugf("Replaced page in frame %d for allocation %d using %s", v.Frame, v.AllocationID, e.config.Algorithm)
		}
		free = e.freeFrames()
	}

	id := e.mintID()
	claimed := append([]int(nil), free[:pages]...)
	for _, f := range claimed {
		e.claim(id, f)
	}
	address := claimed[0] * e.config.PageSize

	e.log.Record(trace.OperationRecord{
		Type:         trace.OpAllocate,
		AllocationID: id,
		Size:         size,
		Address:      address,
		Frames:       claimed,
		Evicted:      evicted,
	})
	logrus.Debugf("Allocated %d bytes (%d pages) for allocation %d in frames %v", size, pages, id, claimed)
	return address, nil
}

// Deallocate frees every frame of the allocation owning address, not just
// the frame the address falls in.
func (e *Engine) Deallocate(address int) error {
	frame, err := e.frameIndex(address)
	if err != nil {
		return fmt.Errorf("deallocate address %d: %w", address, err)
	}
	if e.frames[frame].Status != FrameAllocated {
		return fmt.Errorf("deallocate address %d (frame %d): %w", address, frame, ErrNotAllocated)
	}

	id := e.frames[frame].Owner
	released := e.allocations[id]
	for _, f := range released {
		e.frames[f] = Frame{Status: FrameFree}
	}
	e.policy.Unregister(id)
	delete(e.allocations, id)

	e.log.Record(trace.OperationRecord{
		Type:         trace.OpDeallocate,
		AllocationID: id,
		Address:      address,
		Frames:       released,
	})
	logrus.Debugf("Deallocated memory for allocation %d from frames %v", id, released)
	return nil
}

// Access simulates a memory reference. An allocated frame is a hit (and,
// under LRU, becomes most recently used). A free frame is a page fault: the
// engine mints a new single-frame allocation for it, so the next access to
// the same address hits. Faults are outcomes, not errors.
func (e *Engine) Access(address int) (trace.Outcome, error) {
	frame, err := e.frameIndex(address)
	if err != nil {
		return "", fmt.Errorf("access address %d: %w", address, err)
	}

	e.memoryAccesses++
	record := trace.OperationRecord{Type: trace.OpAccess, Address: address}

	if f := e.frames[frame]; f.Status == FrameAllocated {
		e.pageHits++
		e.policy.Touch(FrameRef{AllocationID: f.Owner, Frame: frame}, e.memoryAccesses)
		record.AllocationID = f.Owner
		record.Result = trace.OutcomeHit
		logrus.Debugf("Page hit on address %d (frame %d)", address, frame)
	} else {
		e.pageFaults++
		id := e.mintID()
		e.claim(id, frame)
		record.AllocationID = id
		record.Frames = []int{frame}
		record.Result = trace.OutcomeFault
		logrus.Debugf("Page fault on address %d (frame %d), mapped to allocation %d", address, frame, id)
	}

	e.log.Record(record)
	return record.Result, nil
}

func (e *Engine) mintID() int {
	id := e.nextID
	e.nextID++
	return id
}
