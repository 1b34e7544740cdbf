package server

import (
	"sync"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
)

// Session owns at most one live engine. Operations on a session are
// serialized by its mutex; the engine itself does no locking.
type Session struct {
	ID string

	mu     sync.Mutex
	engine *sim.Engine
}

// Do runs fn with the session's engine while holding the session lock.
// engine is nil when no simulation has been started.
func (s *Session) Do(fn func(engine *sim.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// Start replaces the session's engine with a fresh one built from cfg.
// On a configuration error the previous engine is kept.
func (s *Session) Start(cfg sim.Config) (*sim.Engine, error) {
	engine, err := sim.NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	return engine, nil
}

// Reset discards the session's engine.
func (s *Session) Reset() {
	s.mu.Lock()
	s.engine = nil
	s.mu.Unlock()
}

// SessionStore maps session ids to sessions.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session with the given id, or nil.
func (st *SessionStore) Get(id string) *Session {
	if id == "" {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// GetOrCreate returns the session with the given id, creating it if needed.
// An empty id gets a freshly generated one.
func (st *SessionStore) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok && id != "" {
		return s
	}
	if id == "" {
		id = xid.New().String()
	}
	s := &Session{ID: id}
	st.sessions[id] = s
	logrus.Infof("Created session %s", id)
	return s
}

// Delete drops a session and its engine.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
