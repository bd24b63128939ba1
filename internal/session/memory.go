package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore is the process-local session store for tests and DSN-less
// local runs. Sessions vanish on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(_ context.Context, userID int64, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sid := uuid.New().String()
	s.sessions[sid] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return sid, nil
}

func (s *MemoryStore) GetUserID(_ context.Context, sid string) (int64, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sid]
	s.mu.RUnlock()

	if !ok {
		return 0, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
		return 0, ErrNotFound
	}
	return entry.userID, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sid)
	return nil
}
