package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// WalletProfileStore is an in-memory implementation of storage.WalletProfileStore.
type WalletProfileStore struct {
	mu   sync.RWMutex
	data map[string]*domain.WalletProfile // keyed by wallet
}

// NewWalletProfileStore creates a new in-memory wallet profile store.
func NewWalletProfileStore() *WalletProfileStore {
	return &WalletProfileStore{
		data: make(map[string]*domain.WalletProfile),
	}
}

var _ storage.WalletProfileStore = (*WalletProfileStore)(nil)

// Upsert stores or replaces a profile.
func (s *WalletProfileStore) Upsert(_ context.Context, p *domain.WalletProfile) error {
	if p == nil || p.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[p.Wallet] = cloneProfile(p)
	return nil
}

// Get retrieves a profile by wallet. Returns ErrNotFound if not exists.
func (s *WalletProfileStore) Get(_ context.Context, wallet string) (*domain.WalletProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.data[wallet]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return cloneProfile(p), nil
}

// List returns profiles ordered by score DESC, wallet ASC.
func (s *WalletProfileStore) List(_ context.Context, limit int) ([]*domain.WalletProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.WalletProfile, 0, len(s.data))
	for _, p := range s.data {
		result = append(result, cloneProfile(p))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score.Score != result[j].Score.Score {
			return result[i].Score.Score > result[j].Score.Score
		}
		return result[i].Wallet < result[j].Wallet
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
