package quiz

import (
	"sync"
	"time"

	"github.com/example/hsktutor/pkg/models"
)

// SessionStore holds active quiz sessions in memory. Sessions are
// ephemeral: they are created by the Builder, consumed exactly once by
// the Coordinator, and never survive a restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
}

type sessionEntry struct {
	session   *models.QuizSession
	claimed   bool
	createdAt time.Time
}

// NewSessionStore creates a session store. Sessions older than ttl are
// eligible for eviction by Sweep; a ttl of 0 disables eviction.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
	}
}

// Put registers a session under its identifier
func (s *SessionStore) Put(session *models.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = &sessionEntry{
		session:   session,
		createdAt: time.Now(),
	}
}

// Get returns a registered session without claiming it
func (s *SessionStore) Get(quizID string) (*models.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[quizID]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

// Claim atomically takes a session for submission. A second concurrent
// claim on the same identifier fails with SessionNotFoundError, so two
// submissions of the same quiz can never both proceed.
func (s *SessionStore) Claim(quizID string) (*models.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[quizID]
	if !ok || entry.claimed {
		return nil, &SessionNotFoundError{QuizID: quizID}
	}
	entry.claimed = true
	return entry.session, nil
}

// Release returns a claimed session to the store so submission can be
// retried after a store-level failure
func (s *SessionStore) Release(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.sessions[quizID]; ok {
		entry.claimed = false
	}
}

// Remove deletes a session; its identifier is no longer resolvable
func (s *SessionStore) Remove(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, quizID)
}

// Len returns the number of registered sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts unclaimed sessions older than the store TTL and returns
// how many were removed. Abandoned quizzes would otherwise hold their
// memory forever.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	removed := 0
	for id, entry := range s.sessions {
		if !entry.claimed && entry.createdAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
