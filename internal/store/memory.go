package store

import (
	"context"
	"sync"
	"time"

	"wrapper.one/internal/models"
)

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)

// MemoryStore is the in-process backend for development and tests. The
// mutex serializes Takes, so expiry check and deletion happen as one step.
type MemoryStore struct {
	records       map[string]*models.Record
	mu            sync.Mutex
	cleanupCancel context.CancelFunc
}

func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	ctx, cancel := context.WithCancel(context.Background())
	store := &MemoryStore{
		records:       make(map[string]*models.Record),
		cleanupCancel: cancel,
	}
	go store.cleanupLoop(ctx, cleanupInterval)
	return store
}

func (s *MemoryStore) Put(ctx context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, id string) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}

	delete(s.records, id)

	// Expired records not yet reaped look identical to missing ones.
	if time.Now().Unix() >= rec.ExpireAt {
		return nil, ErrNotFound
	}

	return rec, nil
}

func (s *MemoryStore) Close() error {
	if s.cleanupCancel != nil {
		s.cleanupCancel()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

func (s *MemoryStore) cleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	for id, rec := range s.records {
		if now >= rec.ExpireAt {
			delete(s.records, id)
		}
	}
}
