// Package session keeps the identity of the signed-in user for the lifetime
// of one client process.
package session

import "sync"

// Session identifies the signed-in user.
type Session struct {
	UserID   string
	Username string
}

// Store holds at most one Session. Only the auth controller writes to it.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

func NewStore() *Store {
	return &Store{}
}

// Load returns the current session and whether there is one.
func (s *Store) Load() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Set replaces the current session.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &sess
}

// Clear forgets the current session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	_, ok := s.Load()
	return ok
}
