package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/photoshare-backend/internal/domain"
)

// SessionStore holds live sessions. Implementations are safe for concurrent use.
type SessionStore interface {
	Put(ctx context.Context, session *types.Session) error
	// Get returns nil, nil for unknown or expired sessions.
	Get(ctx context.Context, sessionID uuid.UUID) (*types.Session, error)
	// Delete reports whether a live session was removed.
	Delete(ctx context.Context, sessionID uuid.UUID) (bool, error)
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]types.Session
	now      func() time.Time
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[uuid.UUID]types.Session),
		now:      time.Now,
	}
}

func (s *memorySessionStore) Put(_ context.Context, session *types.Session) error {
	if session == nil {
		return nil
	}
	s.mu.Lock()
	s.sessions[session.ID] = *session
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, sessionID uuid.UUID) (*types.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if session.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	return &session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sessionID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return false, nil
	}
	delete(s.sessions, sessionID)
	return !session.Expired(s.now()), nil
}
