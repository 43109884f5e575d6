package booking

import (
	"context"
	"fmt"
	"sync"
)

// Registry tracks the live booking session per user and showtime.
// Exactly one session may exist for a (user, showtime) pair; entering
// the booking screen again returns the existing session so an
// in-flight lease keeps its countdown.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func sessionKey(userID, showtimeID uint64) string {
	return fmt.Sprintf("%d:%d", userID, showtimeID)
}

// Get returns the session for the pair, or nil when none exists.
func (r *Registry) Get(userID, showtimeID uint64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionKey(userID, showtimeID)]
}

// GetOrCreate returns the existing session for the pair or stores and
// returns the one produced by create.
func (r *Registry) GetOrCreate(userID, showtimeID uint64, create func() *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey(userID, showtimeID)
	if s, ok := r.sessions[key]; ok {
		return s
	}
	s := create()
	r.sessions[key] = s
	return s
}

// Remove tears the session down through Cleanup and drops it from the
// registry.  Removing an absent session is a no-op.
func (r *Registry) Remove(ctx context.Context, userID, showtimeID uint64) {
	r.mu.Lock()
	key := sessionKey(userID, showtimeID)
	s := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()
	if s != nil {
		s.Cleanup(ctx)
	}
}
