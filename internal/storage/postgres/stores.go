package postgres

import "github.com/TraderofBozz/Anubis-Bot/internal/storage"

// NewStores returns the PostgreSQL-backed stores sharing one pool.
// ScoreHistory is left nil; it lives in ClickHouse.
func NewStores(pool *Pool) storage.Stores {
	return storage.Stores{
		Launches:   NewLaunchStore(pool),
		Profiles:   NewWalletProfileStore(pool),
		Successful: NewSuccessfulTokenStore(pool),
		ScanRuns:   NewScanRunStore(pool),
	}
}
