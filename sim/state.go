package sim

import "github.com/Narayana0804/dynamic-memory-management-visualizer/sim/trace"

// FrameView is the JSON shape of one frame in a State snapshot.
// ID is null for free frames.
type FrameView struct {
	Status FrameStatus `json:"status"`
	ID     *int        `json:"id"`
}

// State is a point-in-time snapshot of the engine. It shares no memory with
// the engine, so later operations do not change it.
type State struct {
	Technique        Technique               `json:"technique"`
	MemorySize       int                     `json:"memory_size"`
	PageSize         int                     `json:"page_size"`
	Algorithm        Algorithm               `json:"algorithm"`
	TotalFrames      int                     `json:"total_frames"`
	Memory           []FrameView             `json:"memory"`
	AllocationTable  map[int][]int           `json:"allocation_table"`
	PageFaults       int                     `json:"page_faults"`
	MemoryAccesses   int                     `json:"memory_accesses"`
	PageHits         int                     `json:"page_hits"`
	RecentOperations []trace.OperationRecord `json:"recent_operations"`
}

// State returns a snapshot including the last trace.RecentLimit operations.
func (e *Engine) State() State {
	memory := make([]FrameView, len(e.frames))
	for i, f := range e.frames {
		memory[i] = FrameView{Status: f.Status}
		if f.Status == FrameAllocated {
			owner := f.Owner
			memory[i].ID = &owner
		}
	}
	table := make(map[int][]int, len(e.allocations))
	for id, frames := range e.allocations {
		table[id] = append([]int(nil), frames...)
	}
	return State{
		Technique:        e.config.Technique,
		MemorySize:       e.config.MemorySize,
		PageSize:         e.config.PageSize,
		Algorithm:        e.config.Algorithm,
		TotalFrames:      e.totalFrames,
		Memory:           memory,
		AllocationTable:  table,
		PageFaults:       e.pageFaults,
		MemoryAccesses:   e.memoryAccesses,
		PageHits:         e.pageHits,
		RecentOperations: e.log.Recent(trace.RecentLimit),
	}
}
