package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process fallback used when no Redis URL is
// configured. Sessions do not survive a restart, which matches the
// single-admin deployment this server is built for.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, tokenHash string, sess Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenHash] = memoryEntry{
		sess:      sess,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, tokenHash string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[tokenHash]
	if !ok {
		return Session{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, tokenHash)
		return Session{}, ErrNotFound
	}
	return entry.sess, nil
}

func (s *MemoryStore) Revoke(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenHash)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
