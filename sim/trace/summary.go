package trace

// LogSummary aggregates statistics from an OperationLog.
type LogSummary struct {
	TotalOperations int                   `json:"total_operations"`
	ByType          map[OperationType]int `json:"by_type"`
	Hits            int                   `json:"hits"`
	Faults          int                   `json:"faults"`
	EvictedFrames   int                   `json:"evicted_frames"`
	Allocations     int                   `json:"allocations"` // ids minted, including fault-driven ones
}

// Summarize computes aggregate statistics from an OperationLog.
// Safe for nil or empty logs (returns zero-value fields).
func Summarize(l *OperationLog) *LogSummary {
	summary := &LogSummary{
		ByType: make(map[OperationType]int),
	}
	if l == nil {
		return summary
	}

	summary.TotalOperations = len(l.Records)
	for _, r := range l.Records {
		summary.ByType[r.Type]++
		summary.EvictedFrames += len(r.Evicted)
		switch {
		case r.Type == OpAllocate:
			summary.Allocations++
		case r.Type == OpAccess && r.Result == OutcomeHit:
			summary.Hits++
		case r.Type == OpAccess && r.Result == OutcomeFault:
			summary.Faults++
			summary.Allocations++
		}
	}
	return summary
}
