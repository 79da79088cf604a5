package pipeline

import (
	"github.com/TraderofBozz/Anubis-Bot/internal/aggregation"
	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// WorkingSet is the in-memory state of one run. Run owns it and hands it
// to each phase in turn.
type WorkingSet struct {
	// Aggregator holds every kept launch event, grouped by creator.
	Aggregator *aggregation.WalletAggregator
	// Histories is filled by the aggregate phase, sorted by wallet.
	Histories []*domain.WalletLaunchHistory
	// Metrics and Scores are keyed by wallet address.
	Metrics map[string]*domain.WalletMetrics
	Scores  map[string]domain.AnubisScore
	// Profiles is filled by the score phase in wallet order.
	Profiles []*domain.WalletProfile
}

// NewWorkingSet creates an empty working set.
func NewWorkingSet() *WorkingSet {
	return &WorkingSet{
		Aggregator: aggregation.NewWalletAggregator(),
		Metrics:    make(map[string]*domain.WalletMetrics),
		Scores:     make(map[string]domain.AnubisScore),
	}
}

// Events returns every kept launch event, ordered by creator then time.
func (ws *WorkingSet) Events() []*domain.LaunchEvent {
	var out []*domain.LaunchEvent
	for _, h := range ws.Histories {
		out = append(out, h.Launches...)
	}
	return out
}
