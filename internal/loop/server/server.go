package server

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tomz197/target/internal/loop/config"
)

// SessionServer is the interface clients use to talk to the session
// registry. Every session owns its own target; the server only tracks who
// is connected and broadcasts lifecycle events.
type SessionServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(id string)
	ActiveCount() int
}

// Tracker is told about sessions coming and going.
type Tracker interface {
	SessionOpened()
	SessionClosed()
}

type nopTracker struct{}

func (nopTracker) SessionOpened() {}
func (nopTracker) SessionClosed() {}

// ClientHandle represents a client's registration.
type ClientHandle struct {
	ID       string // Random session id, used in logs
	Number   int    // 1-based connection counter
	Username string
	Started  time.Time
	EventsCh chan ClientEvent // Events sent to the client
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Option configures a Server.
type Option func(*Server)

// WithTracker reports session counts, e.g. to metrics.
func WithTracker(t Tracker) Option {
	return func(s *Server) {
		if t != nil {
			s.tracker = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// Server is the registry of connected sessions.
type Server struct {
	mu           sync.RWMutex
	clients      map[string]*ClientHandle
	nextClientID int
	shuttingDown bool
	tracker      Tracker
	log          *log.Logger
}

// Compile-time check that Server implements SessionServer.
var _ SessionServer = (*Server)(nil)

// NewServer creates an empty registry.
func NewServer(opts ...Option) *Server {
	s := &Server{
		clients:      make(map[string]*ClientHandle),
		nextClientID: 1,
		tracker:      nopTracker{},
		log:          log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterClient registers a new client and returns its handle. Clients
// joining during shutdown are told right away.
func (s *Server) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		ID:       uuid.NewString(),
		Username: username,
		Started:  time.Now(),
		EventsCh: make(chan ClientEvent, 4),
	}

	s.mu.Lock()
	handle.Number = s.nextClientID
	s.nextClientID++
	s.clients[handle.ID] = handle
	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	active := len(s.clients)
	s.mu.Unlock()

	s.tracker.SessionOpened()
	s.log.Info("session registered", "session", handle.ID, "user", username, "number", handle.Number, "active", active)
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown ids are ignored.
func (s *Server) UnregisterClient(id string) {
	s.mu.Lock()
	handle, ok := s.clients[id]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, id)
	}
	active := len(s.clients)
	s.mu.Unlock()

	if !ok {
		return
	}
	s.tracker.SessionClosed()
	s.log.Info("session unregistered", "session", id, "duration", time.Since(handle.Started).Round(time.Second), "active", active)
}

// ActiveCount returns the number of connected clients.
func (s *Server) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to
// disconnect, up to the given timeout. It reports whether everyone left in
// time.
func (s *Server) Shutdown(timeout time.Duration) bool {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(config.ShutdownPollInterval)
	defer ticker.Stop()

	for {
		if s.ActiveCount() == 0 {
			return true
		}
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "remaining", s.ActiveCount())
			return false
		case <-ticker.C:
		}
	}
}
