// Package memory provides in-memory implementations of the storage interfaces.
package memory

import "github.com/TraderofBozz/Anubis-Bot/internal/storage"

// NewStores returns a storage.Stores backed entirely by memory.
func NewStores() storage.Stores {
	return storage.Stores{
		Launches:     NewLaunchStore(),
		Profiles:     NewWalletProfileStore(),
		Successful:   NewSuccessfulTokenStore(),
		ScoreHistory: NewScoreHistoryStore(),
		ScanRuns:     NewScanRunStore(),
	}
}
