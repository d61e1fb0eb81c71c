package session

import (
	"context"
	"sync"
	"time"
)

// Compile-time interface guard.
var _ Store[struct{}] = (*MemoryStore[struct{}])(nil)

type memoryEntry[T any] struct {
	value   T
	expires time.Time
}

// MemoryStore is an in-process Store with idle expiry.
type MemoryStore[T any] struct {
	mu      sync.Mutex
	entries map[string]memoryEntry[T]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore. A non-positive ttl uses DefaultTTL;
// a nil now uses time.Now.
func NewMemoryStore[T any](ttl time.Duration, now func() time.Time) *MemoryStore[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore[T]{
		entries: make(map[string]memoryEntry[T]),
		ttl:     ttl,
		now:     now,
	}
}

// Get implements Store.
func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, ok := s.entries[id]
	if !ok {
		return zero, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, id)
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Save implements Store.
func (s *MemoryStore[T]) Save(_ context.Context, id string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry[T]{value: value, expires: s.now().Add(s.ttl)}
	return nil
}

// Delete implements Store.
func (s *MemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore[T]) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
