package session

import (
	"sync"
	"time"

	"github.com/avirtanen/noshcart-backend/internal/app/cart"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/google/uuid"
)

// Store keeps every live cart session in memory, keyed by session id.
// Sessions are created on demand and reaped by the idle-purge scheduler.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*cart.Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*cart.Session),
	}
}

// Create makes a fresh session with a generated id
func (s *Store) Create() *cart.Session {
	id := uuid.NewString()
	sess := cart.NewSession(id)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	logger.Debug("Session created", map[string]interface{}{
		"session_id": id,
	})
	return sess
}

// Get returns the session for an id, if it exists
func (s *Store) Get(id string) (*cart.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if ok {
		sess.Touch()
	}
	return sess, ok
}

// GetOrCreate returns the session for an id, creating a new one when
// the id is empty or unknown (expired sessions fall in the same bucket).
func (s *Store) GetOrCreate(id string) *cart.Session {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess
		}
	}
	return s.Create()
}

// Delete removes a session
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PurgeIdle drops sessions whose last activity is older than the TTL
// and returns how many were removed.
func (s *Store) PurgeIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, sess := range s.sessions {
		if sess.LastAccess().Before(cutoff) {
			delete(s.sessions, id)
			purged++
		}
	}

	if purged > 0 {
		logger.Info("Purged idle sessions", map[string]interface{}{
			"purged":    purged,
			"remaining": len(s.sessions),
		})
	}
	return purged
}
