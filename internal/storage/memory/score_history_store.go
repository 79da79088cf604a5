package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// ScoreHistoryStore is an in-memory implementation of storage.ScoreHistoryStore.
type ScoreHistoryStore struct {
	mu   sync.RWMutex
	data []*domain.ScoreSnapshot
}

// NewScoreHistoryStore creates a new in-memory score history store.
func NewScoreHistoryStore() *ScoreHistoryStore {
	return &ScoreHistoryStore{}
}

var _ storage.ScoreHistoryStore = (*ScoreHistoryStore)(nil)

// Append records one snapshot per profile.
func (s *ScoreHistoryStore) Append(_ context.Context, profiles []*domain.WalletProfile, scanID string) error {
	if scanID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range profiles {
		s.data = append(s.data, domain.NewScoreSnapshot(scanID, p))
	}
	return nil
}

// GetByWallet retrieves a wallet's snapshots ordered by scored_at ASC.
func (s *ScoreHistoryStore) GetByWallet(_ context.Context, wallet string) ([]*domain.ScoreSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ScoreSnapshot
	for _, snap := range s.data {
		if snap.Wallet == wallet {
			c := *snap
			result = append(result, &c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScoredAt < result[j].ScoredAt
	})
	return result, nil
}
