package memory

import (
	"context"
	"sync"
	"time"

	"travel-assistant-core/internal/model"
	"travel-assistant-core/internal/usercontext/repository"
)

// Store is an in-memory context store. Used in tests and as the fallback
// when no durable store is configured.
type Store struct {
	mu       sync.RWMutex
	contexts map[string]model.UserContext
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{contexts: make(map[string]model.UserContext)}
}

// Load returns a deep copy so callers cannot mutate the stored record.
func (s *Store) Load(ctx context.Context, userID string) (model.UserContext, error) {
	if userID == "" {
		return model.UserContext{}, repository.ErrEmptyUserID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	uc, ok := s.contexts[userID]
	if !ok {
		return model.UserContext{}, repository.ErrNotFound
	}
	return uc.Clone(), nil
}

// Save upserts a deep copy of the context.
func (s *Store) Save(ctx context.Context, uc model.UserContext) error {
	if uc.UserID == "" {
		return repository.ErrEmptyUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[uc.UserID] = uc.Clone()
	return nil
}

// Count returns the number of stored contexts.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts), nil
}

// Prune removes contexts not updated within the retention window.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, uc := range s.contexts {
		if uc.UpdatedAt.Before(cutoff) {
			delete(s.contexts, id)
			removed++
		}
	}
	return removed, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
