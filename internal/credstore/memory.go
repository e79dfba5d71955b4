package credstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *MemoryStore) SetSession(ctx context.Context, token, role string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[KeyAuthToken] = token
	s.data[KeyUserRole] = role
	s.data[KeyTokenExpiry] = expiry.Format(time.RFC3339)
	return nil
}

func (s *MemoryStore) ClearSession(ctx context.Context) error {
	return s.Delete(ctx, KeyAuthToken, KeyUserRole, KeyTokenExpiry)
}

func (s *MemoryStore) Close() error {
	return nil
}
