package client

import (
	"time"
)

// SessionState represents the current phase of a session.
type SessionState int

const (
	SessionStateShooting SessionState = iota // Target on screen, accepting shots
	SessionStateShutdown                     // Server is shutting down
)

// ClientState holds per-session loop state.
type ClientState struct {
	State         SessionState
	prevState     SessionState
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the inactivity warning is showing
	wasInactive   bool
	dirty         bool // Something visible changed since the last frame
	lastCountdown int  // Last countdown value drawn, to redraw once per second
	lastOnline    int  // Last online count drawn
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		State:   SessionStateShooting,
		Running: true,
		dirty:   true,
	}
}
