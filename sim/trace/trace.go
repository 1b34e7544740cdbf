package trace

// RecentLimit is how many records Recent exposes by default.
const RecentLimit = 10

// OperationLog is an append-only log of engine operations.
// Retention is unbounded; exposure goes through Recent.
type OperationLog struct {
	Records []OperationRecord
}

// NewOperationLog creates an empty OperationLog ready for recording.
func NewOperationLog() *OperationLog {
	return &OperationLog{
		Records: make([]OperationRecord, 0),
	}
}

// Record appends a record, assigning it the next sequence number (1-based).
func (l *OperationLog) Record(record OperationRecord) OperationRecord {
	record.Seq = len(l.Records) + 1
	l.Records = append(l.Records, record)
	return record
}

// Len returns the number of records retained.
func (l *OperationLog) Len() int {
	return len(l.Records)
}

// Recent returns a copy of the last n records in chronological order.
// Returns an empty (non-nil) slice when the log is empty or n <= 0.
func (l *OperationLog) Recent(n int) []OperationRecord {
	if n <= 0 || len(l.Records) == 0 {
		return []OperationRecord{}
	}
	start := len(l.Records) - n
	if start < 0 {
		start = 0
	}
	out := make([]OperationRecord, len(l.Records)-start)
	copy(out, l.Records[start:])
	return out
}
