package server

import "sync/atomic"

// nextSessionID is the monotonic, atomic session-id counter spec.md §5
// calls out as one of the only two pieces of state shared across
// sessions (the other being the accept listener itself).
var nextSessionID atomic.Uint64

// Session tracks the per-connection state the session driver needs
// across requests: its identity (for logging/metrics) and how many
// requests it has served (for the max_reuse condition).
type Session struct {
	ID         uint64
	ReuseCount int
}

// newSession allocates a Session with the next id.
func newSession() *Session {
	return &Session{ID: nextSessionID.Add(1)}
}
