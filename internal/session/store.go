package session

import (
	"context"
	"errors"
	"sync"
)

// ErrSessionNotFound indicates the session id is unknown or expired.
// Callers must start a new session.
var ErrSessionNotFound = errors.New("session: not found")

// Store abstracts session persistence so the lifecycle and single-writer
// discipline are testable independent of a storage backend.
type Store interface {
	Get(ctx context.Context, sessionID string) (*ConversationSession, error)
	Put(ctx context.Context, sess *ConversationSession) error
	Delete(ctx context.Context, sessionID string) error
	// ListIDs returns every stored session id; order is unspecified.
	ListIDs(ctx context.Context) ([]string, error)
}

// MemoryStore keeps sessions in a process-local map. Reads and writes are
// deep-copied so callers never alias store-held state.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*ConversationSession
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*ConversationSession)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*ConversationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, sess *ConversationSession) error {
	if sess == nil || sess.SessionID == "" {
		return errors.New("session: cannot store session without id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SessionID] = sess.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) ListIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}
