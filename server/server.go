// Package server exposes the memory simulation engine over a JSON HTTP API
// and serves the dashboard. Each browser (or API client) gets its own
// session and engine; nothing is shared through process-wide state.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Narayana0804/dynamic-memory-management-visualizer/server/web"
	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim"
	"github.com/Narayana0804/dynamic-memory-management-visualizer/sim/script"
)

const (
	// SessionCookie carries the session id between browser requests.
	SessionCookie = "mmv_session"
	// SessionHeader lets non-browser clients pick a session explicitly.
	SessionHeader = "X-Session-ID"
)

var errNoSimulation = errors.New("no active simulation; start a simulation first")

// Server routes API requests to per-session engines.
type Server struct {
	sessions   *SessionStore
	router     *mux.Router
	portNumber int
}

// NewServer creates a server with an empty session store.
func NewServer() *Server {
	s := &Server{sessions: NewSessionStore()}
	s.router = s.routes()
	return s
}

// WithPortNumber sets the listening port. 0 picks a free port.
func (s *Server) WithPortNumber(portNumber int) *Server {
	s.portNumber = portNumber
	return s
}

// Sessions returns the server's session store.
func (s *Server) Sessions() *SessionStore { return s.sessions }

// Handler returns the HTTP handler serving the API and dashboard.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/start_simulation", s.startSimulation).Methods(http.MethodPost)
	api.HandleFunc("/next_step", s.nextStep).Methods(http.MethodPost)
	api.HandleFunc("/get_results", s.getResults).Methods(http.MethodGet)
	api.HandleFunc("/state", s.getState).Methods(http.MethodGet)
	api.HandleFunc("/log", s.getLog).Methods(http.MethodGet)
	api.HandleFunc("/reset_simulation", s.resetSimulation).Methods(http.MethodPost)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))
	return r
}

// Listen binds the configured port and returns the listener together with
// the dashboard URL.
func (s *Server) Listen() (net.Listener, string, error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(s.portNumber))
	if err != nil {
		return nil, "", fmt.Errorf("listen on port %d: %w", s.portNumber, err)
	}
	url := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	return listener, url, nil
}

// Serve serves on listener until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(listener) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// sessionID reads the session id from the header, then the cookie.
func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) startSimulation(w http.ResponseWriter, r *http.Request) {
	cfg := sim.DefaultConfig()
	if err := decodeBody(r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		logrus.Warnf("rejected configuration: %v", err)
		writeError(w, http.StatusBadRequest, sim.Kind(err), err)
		return
	}

	session := s.sessions.GetOrCreate(sessionID(r))
	engine, err := session.Start(cfg)
	if err != nil {
		logrus.Warnf("session %s: rejected configuration: %v", session.ID, err)
		writeError(w, http.StatusBadRequest, sim.Kind(err), err)
		return
	}
	logrus.Infof("session %s: started %s simulation, %d bytes in %d-byte frames, %s",
		session.ID, cfg.Technique, cfg.MemorySize, cfg.PageSize, cfg.Algorithm)

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: session.ID, Path: "/", HttpOnly: true})
	w.Header().Set(SessionHeader, session.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"message":       "Simulation started successfully",
		"session_id":    session.ID,
		"initial_state": engine.State(),
		"analytics":     engine.Results(),
	})
}

func (s *Server) nextStep(w http.ResponseWriter, r *http.Request) {
	var step script.Step
	if err := decodeBody(r, &step); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if step.Op == "" {
		step.Op = "allocate"
	}

	var resp map[string]any
	err := s.withEngine(r, func(engine *sim.Engine) error {
		res, err := script.Apply(engine, step)
		if err != nil {
			return err
		}
		resp = map[string]any{
			"status":    "success",
			"step":      res,
			"state":     engine.State(),
			"analytics": engine.Results(),
		}
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getResults(w http.ResponseWriter, r *http.Request) {
	var results sim.Results
	err := s.withEngine(r, func(engine *sim.Engine) error {
		results = engine.Results()
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "results": results})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	var state sim.State
	err := s.withEngine(r, func(engine *sim.Engine) error {
		state = engine.State()
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "state": state})
}

// getLog returns the full operation log, or the last ?limit= records.
func (s *Server) getLog(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}
	var resp map[string]any
	err := s.withEngine(r, func(engine *sim.Engine) error {
		log := engine.Log()
		n := log.Len()
		if limit >= 0 {
			n = limit
		}
		resp = map[string]any{"status": "success", "total": log.Len(), "operations": log.Recent(n)}
		return nil
	})
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) resetSimulation(w http.ResponseWriter, r *http.Request) {
	if session := s.sessions.Get(sessionID(r)); session != nil {
		session.Reset()
		s.sessions.Delete(session.ID)
		logrus.Infof("session %s: simulation reset", session.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Simulation reset successfully",
	})
}

// withEngine runs fn under the caller's session lock, failing with
// errNoSimulation when the session has no engine.
func (s *Server) withEngine(r *http.Request, fn func(engine *sim.Engine) error) error {
	session := s.sessions.Get(sessionID(r))
	if session == nil {
		return errNoSimulation
	}
	return session.Do(func(engine *sim.Engine) error {
		if engine == nil {
			return errNoSimulation
		}
		return fn(engine)
	})
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNoSimulation):
		writeError(w, http.StatusBadRequest, "no_simulation", err)
	case errors.Is(err, script.ErrUnknownOperation):
		writeError(w, http.StatusBadRequest, "unknown_operation", err)
	case errors.Is(err, sim.ErrExhausted):
		logrus.Errorf("engine invariant violated: %v", err)
		writeError(w, http.StatusInternalServerError, sim.Kind(err), err)
	default:
		writeError(w, http.StatusBadRequest, sim.Kind(err), err)
	}
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind string, err error) {
	writeJSON(w, status, map[string]any{
		"status":  "error",
		"kind":    kind,
		"message": err.Error(),
	})
}
