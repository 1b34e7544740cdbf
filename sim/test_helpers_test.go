package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestEngine builds an engine or fails the test.
func newTestEngine(t *testing.T, memorySize, pageSize int, algorithm Algorithm) *Engine {
	t.Helper()
	e, err := NewEngine(Config{
		Technique:  TechniquePaging,
		MemorySize: memorySize,
		PageSize:   pageSize,
		Algorithm:  algorithm,
	})
	require.NoError(t, err)
	return e
}

// assertInvariants checks frame/allocation consistency and counter accounting.
func assertInvariants(t *testing.T, e *Engine) {
	t.Helper()
	state := e.State()

	owner := make(map[int]int)
	for id, frames := range state.AllocationTable {
		require.NotEmpty(t, frames, "allocation %d owns no frames but is still listed", id)
		for _, f := range frames {
			prev, dup := owner[f]
			require.False(t, dup, "frame %d listed by allocations %d and %d", f, prev, id)
			owner[f] = id
		}
	}

	allocated, free := 0, 0
	for i, f := range state.Memory {
		switch f.Status {
		case FrameAllocated:
			allocated++
			require.NotNil(t, f.ID, "allocated frame %d has no owner", i)
			require.Equal(t, owner[i], *f.ID, "frame %d owner mismatch", i)
		case FrameFree:
			free++
			require.Nil(t, f.ID, "free frame %d has an owner", i)
			_, listed := owner[i]
			require.False(t, listed, "free frame %d is listed by an allocation", i)
		}
	}
	require.Equal(t, len(owner), allocated)
	require.Equal(t, state.TotalFrames, allocated+free)
	require.Equal(t, allocated, e.policy.Tracked(), "policy tracking out of sync with frame table")

	results := e.Results()
	require.Equal(t, results.MemoryAccesses, results.PageHits+results.DemandFaults)
	require.Equal(t, results.PageFaults, results.DemandFaults+results.Evictions)
}
