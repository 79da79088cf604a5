package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// LaunchStore is an in-memory implementation of storage.LaunchStore.
type LaunchStore struct {
	mu   sync.RWMutex
	data map[string]*domain.LaunchEvent // keyed by mint
}

// NewLaunchStore creates a new in-memory launch store.
func NewLaunchStore() *LaunchStore {
	return &LaunchStore{
		data: make(map[string]*domain.LaunchEvent),
	}
}

var _ storage.LaunchStore = (*LaunchStore)(nil)

// Upsert stores a launch keyed by mint; an existing mint is a no-op.
func (s *LaunchStore) Upsert(_ context.Context, e *domain.LaunchEvent) (bool, error) {
	if !e.HasIdentity() {
		return false, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[e.Mint]; exists {
		return false, nil
	}
	s.data[e.Mint] = cloneLaunch(e)
	return true, nil
}

// GetByMint retrieves a launch by mint. Returns ErrNotFound if not exists.
func (s *LaunchStore) GetByMint(_ context.Context, mint string) (*domain.LaunchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.data[mint]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return cloneLaunch(e), nil
}

// GetByCreator retrieves all launches of a wallet, ordered by launch_time ASC.
func (s *LaunchStore) GetByCreator(_ context.Context, creator string) ([]*domain.LaunchEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.LaunchEvent
	for _, e := range s.data {
		if e.Creator == creator {
			result = append(result, cloneLaunch(e))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].LaunchTime != result[j].LaunchTime {
			return result[i].LaunchTime < result[j].LaunchTime
		}
		return result[i].Mint < result[j].Mint
	})
	return result, nil
}

// Count returns the number of stored launches.
func (s *LaunchStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
