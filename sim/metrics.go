// Aggregate analytics over the lifetime of one engine.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
)

// Results aggregates the engine counters for reporting.
// PageFaults includes evictions; DemandFaults excludes them, so
// PageHits + DemandFaults == MemoryAccesses always holds.
type Results struct {
	PageFaults        int     `json:"page_faults"`
	MemoryAccesses    int     `json:"memory_accesses"`
	PageHits          int     `json:"page_hits"`
	HitRatio          float64 `json:"hit_ratio"`          // page_hits / max(1, memory_accesses)
	MissRatio         float64 `json:"miss_ratio"`         // page_faults / max(1, memory_accesses)
	MemoryUtilization float64 `json:"memory_utilization"` // allocated_frames / total_frames
	AllocatedFrames   int     `json:"allocated_frames"`
	TotalFrames       int     `json:"total_frames"`

	DemandFaults int `json:"demand_faults"`
	Evictions    int `json:"evictions"`
	Allocations  int `json:"allocations"` // live allocation records
}

// Results computes aggregate analytics from the current counters.
func (e *Engine) Results() Results {
	accesses := max(1, e.memoryAccesses)
	allocated := e.allocatedFrames()
	return Results{
		PageFaults:        e.pageFaults,
		MemoryAccesses:    e.memoryAccesses,
		PageHits:          e.pageHits,
		HitRatio:          float64(e.pageHits) / float64(accesses),
		MissRatio:         float64(e.pageFaults) / float64(accesses),
		MemoryUtilization: float64(allocated) / float64(e.totalFrames),
		AllocatedFrames:   allocated,
		TotalFrames:       e.totalFrames,
		DemandFaults:      e.pageFaults - e.evictions,
		Evictions:         e.evictions,
		Allocations:       len(e.allocations),
	}
}

// Print writes a human-readable report followed by the results as JSON.
func (r Results) Print(w io.Writer) error {
	fmt.Fprintln(w, "=== Simulation Results ===")
	fmt.Fprintf(w, "Memory Accesses      : %d\n", r.MemoryAccesses)
	fmt.Fprintf(w, "Page Hits            : %d\n", r.PageHits)
	fmt.Fprintf(w, "Page Faults          : %d (%d evictions)\n", r.PageFaults, r.Evictions)
	fmt.Fprintf(w, "Hit Ratio            : %.2f\n", r.HitRatio)
	fmt.Fprintf(w, "Miss Ratio           : %.2f\n", r.MissRatio)
	fmt.Fprintf(w, "Memory Utilization   : %.2f (%d/%d frames)\n", r.MemoryUtilization, r.AllocatedFrames, r.TotalFrames)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
