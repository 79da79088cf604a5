package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// SuccessfulTokenStore is an in-memory implementation of storage.SuccessfulTokenStore.
type SuccessfulTokenStore struct {
	mu   sync.RWMutex
	data map[string]*domain.SuccessfulToken // keyed by mint
}

// NewSuccessfulTokenStore creates a new in-memory successful token store.
func NewSuccessfulTokenStore() *SuccessfulTokenStore {
	return &SuccessfulTokenStore{
		data: make(map[string]*domain.SuccessfulToken),
	}
}

var _ storage.SuccessfulTokenStore = (*SuccessfulTokenStore)(nil)

// Upsert archives a token, keeping the higher peak market cap.
func (s *SuccessfulTokenStore) Upsert(_ context.Context, t *domain.SuccessfulToken) error {
	if t == nil || t.Mint == "" || t.Creator == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneToken(t)
	if existing, ok := s.data[t.Mint]; ok && existing.PeakMarketCap > c.PeakMarketCap {
		c.PeakMarketCap = existing.PeakMarketCap
	}
	s.data[t.Mint] = c
	return nil
}

// GetByCreator retrieves archived tokens of a wallet, ordered by peak market cap DESC.
func (s *SuccessfulTokenStore) GetByCreator(_ context.Context, creator string) ([]*domain.SuccessfulToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SuccessfulToken
	for _, t := range s.data {
		if t.Creator == creator {
			result = append(result, cloneToken(t))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].PeakMarketCap != result[j].PeakMarketCap {
			return result[i].PeakMarketCap > result[j].PeakMarketCap
		}
		return result[i].Mint < result[j].Mint
	})
	return result, nil
}
