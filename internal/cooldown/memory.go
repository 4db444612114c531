package cooldown

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local fallback used when Redis is not
// configured. Entries are reaped lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStore) Acquire(ctx context.Context, key string, window time.Duration) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, ok := s.expires[key]; ok && until.After(now) {
		return false, until.Sub(now), nil
	}

	s.expires[key] = now.Add(window)

	// Reap anything already expired while we hold the lock.
	for k, until := range s.expires {
		if !until.After(now) {
			delete(s.expires, k)
		}
	}

	return true, 0, nil
}

func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expires, key)
	return nil
}
