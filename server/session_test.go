package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
)

func TestSessionStore_GetOrCreate_GeneratesID(t *testing.T) {
	st := NewSessionStore()

	a := st.GetOrCreate("")
	b := st.GetOrCreate("")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Same(t, a, st.Get(a.ID))
	assert.Equal(t, 2, st.Len())
}

func TestSessionStore_GetOrCreate_ReusesExisting(t *testing.T) {
	st := NewSessionStore()
	a := st.GetOrCreate("abc")
	assert.Same(t, a, st.GetOrCreate("abc"))
	assert.Nil(t, st.Get("missing"))
	assert.Nil(t, st.Get(""))

	st.Delete("abc")
	assert.Nil(t, st.Get("abc"))
}

func TestSession_Start_BadConfigKeepsPreviousEngine(t *testing.T) {
	// GIVEN a session with a running engine
	s := &Session{ID: "s"}
	first, err := s.Start(sim.DefaultConfig())
	require.NoError(t, err)

	// WHEN a restart with an invalid configuration is attempted
	_, err = s.Start(sim.Config{Technique: "paging", MemorySize: 100, PageSize: 64, Algorithm: "FIFO"})

	// THEN the error is reported and the previous engine is still live
	assert.ErrorIs(t, err, sim.ErrConfiguration)
	_ = s.Do(func(engine *sim.Engine) error {
		assert.Same(t, first, engine)
		return nil
	})
}

func TestSession_Reset_DropsEngine(t *testing.T) {
	s := &Session{ID: "s"}
	_, err := s.Start(sim.DefaultConfig())
	require.NoError(t, err)

	s.Reset()

	_ = s.Do(func(engine *sim.Engine) error {
		assert.Nil(t, engine)
		return nil
	})
}

func TestSession_Do_SerializesConcurrentCallers(t *testing.T) {
	// GIVEN one session shared by many goroutines
	s := &Session{ID: "s"}
	_, err := s.Start(sim.Config{Technique: "paging", MemorySize: 4096, PageSize: 64, Algorithm: "LRU"})
	require.NoError(t, err)

	// WHEN each goroutine accesses memory through the session
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(addr int) {
			defer wg.Done()
			_ = s.Do(func(engine *sim.Engine) error {
				_, err := engine.Access(addr)
				return err
			})
		}(i * 64)
	}
	wg.Wait()

	// THEN every access was counted exactly once
	_ = s.Do(func(engine *sim.Engine) error {
		r := engine.Results()
		assert.Equal(t, 50, r.MemoryAccesses)
		assert.Equal(t, 50, r.PageFaults)
		return nil
	})
}
