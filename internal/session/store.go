// Package session keeps per-client seen-set state keyed by a session ID.
package session

import (
	"sync"

	"github.com/google/uuid"

	"newschomp/internal/seen"
)

// Stored sessions are capped; the oldest session is dropped when a new one
// would exceed the cap, since nothing expires them otherwise.
const maxSessions = 4096

// Session holds one client's per-category seen-sets. The seen-lists are
// not safe for concurrent use on their own, so all access goes through
// WithSeen, which serializes requests sharing one session.
type Session struct {
	ID string

	mu   sync.Mutex
	seen map[string]*seen.List
}

// WithSeen runs fn holding the session lock, handing it the category's
// seen-list (created on first use). The lock spans the whole callback so a
// caller can check, fetch, and mark in one atomic window.
func (s *Session) WithSeen(category string, fn func(*seen.List)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.seen[category]
	if !ok {
		l = seen.NewList()
		s.seen[category] = l
	}
	fn(l)
}

// Store is an in-memory session registry. Sessions live until evicted or
// the process exits; there is no persistence layer behind them.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{sessions: map[string]*Session{}}
}

// Get returns the session for an ID, creating a fresh one when the ID is
// unknown or empty. A generated ID is returned on the session itself.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}

	if id == "" {
		id = uuid.NewString()
	}
	sess := &Session{ID: id, seen: map[string]*seen.List{}}
	s.sessions[id] = sess
	s.order = append(s.order, id)

	if len(s.order) > maxSessions {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
	}
	return sess
}
