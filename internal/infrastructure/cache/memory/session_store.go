// Package memory provides an in-process session store for development
// and single-instance deployments where Redis is not available.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	apperrors "github.com/inf25dw2g02/MindPool/pkg/errors"
)

const sweepInterval = 5 * time.Minute

// SessionStore keeps sessions in a map guarded by a mutex. Expired entries
// are dropped lazily on read and swept periodically by a background janitor.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	done     chan struct{}
	closed   sync.Once
}

func NewSessionStore() *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]*session.Session),
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *SessionStore) Create(_ context.Context, sess *session.Session) error {
	if !sess.IsValid() {
		return apperrors.ErrSessionExpired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrSessionAbsent
	}

	if !sess.IsValid() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, apperrors.ErrSessionAbsent
	}

	cp := *sess
	return &cp, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Close stops the background janitor.
func (s *SessionStore) Close() {
	s.closed.Do(func() { close(s.done) })
}

func (s *SessionStore) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now().UTC()
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
