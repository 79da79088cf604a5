package memory

import (
	"context"
	"sync"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/storage"
)

// ScanRunStore is an in-memory implementation of storage.ScanRunStore.
type ScanRunStore struct {
	mu    sync.RWMutex
	data  map[string]*domain.ScanRun
	order []string // scan IDs in start order
}

// NewScanRunStore creates a new in-memory scan run store.
func NewScanRunStore() *ScanRunStore {
	return &ScanRunStore{
		data: make(map[string]*domain.ScanRun),
	}
}

var _ storage.ScanRunStore = (*ScanRunStore)(nil)

// Start records a new run. Returns ErrDuplicateKey if scan_id exists.
func (s *ScanRunStore) Start(_ context.Context, run *domain.ScanRun) error {
	if run == nil || run.ScanID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[run.ScanID]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[run.ScanID] = cloneRun(run)
	s.order = append(s.order, run.ScanID)
	return nil
}

// Finish replaces the stored run. Returns ErrNotFound if it was never started.
func (s *ScanRunStore) Finish(_ context.Context, run *domain.ScanRun) error {
	if run == nil || run.ScanID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[run.ScanID]; !exists {
		return storage.ErrNotFound
	}
	s.data[run.ScanID] = cloneRun(run)
	return nil
}

// Get retrieves a run by ID. Returns ErrNotFound if not exists.
func (s *ScanRunStore) Get(_ context.Context, scanID string) (*domain.ScanRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, exists := s.data[scanID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return cloneRun(run), nil
}

// Latest returns the most recently started run.
func (s *ScanRunStore) Latest(_ context.Context) (*domain.ScanRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, storage.ErrNotFound
	}
	return cloneRun(s.data[s.order[len(s.order)-1]]), nil
}
