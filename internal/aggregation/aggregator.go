// Package aggregation groups launch events by creator wallet.
package aggregation

import (
	"sort"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// WalletAggregator collects launch events into per-wallet histories.
// It is not safe for concurrent use; the pipeline feeds it from one goroutine.
type WalletAggregator struct {
	byWallet  map[string][]*domain.LaunchEvent
	seen      map[string]struct{}
	discarded int
}

// NewWalletAggregator creates an empty aggregator.
func NewWalletAggregator() *WalletAggregator {
	return &WalletAggregator{
		byWallet: make(map[string][]*domain.LaunchEvent),
		seen:     make(map[string]struct{}),
	}
}

// Add records an event under its creator.
// Events without mint or creator are discarded, as are repeated signatures.
// Returns true if the event was kept.
func (a *WalletAggregator) Add(event *domain.LaunchEvent) bool {
	if !event.HasIdentity() {
		a.discarded++
		return false
	}
	if _, dup := a.seen[event.Signature]; dup {
		a.discarded++
		return false
	}
	a.seen[event.Signature] = struct{}{}
	a.byWallet[event.Creator] = append(a.byWallet[event.Creator], event)
	return true
}

// Discarded returns how many events Add rejected.
func (a *WalletAggregator) Discarded() int {
	return a.discarded
}

// WalletCount returns the number of distinct creators seen.
func (a *WalletAggregator) WalletCount() int {
	return len(a.byWallet)
}

// Events returns every kept event, ordered by creator then launch time.
func (a *WalletAggregator) Events() []*domain.LaunchEvent {
	var out []*domain.LaunchEvent
	for _, h := range a.Histories() {
		out = append(out, h.Launches...)
	}
	return out
}

// Histories returns one history per wallet, sorted by wallet address.
// Launches within a history are ordered by launch time ASC, signature ASC.
func (a *WalletAggregator) Histories() []*domain.WalletLaunchHistory {
	wallets := make([]string, 0, len(a.byWallet))
	for w := range a.byWallet {
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)

	out := make([]*domain.WalletLaunchHistory, 0, len(wallets))
	for _, w := range wallets {
		launches := make([]*domain.LaunchEvent, len(a.byWallet[w]))
		copy(launches, a.byWallet[w])
		SortLaunches(launches)
		out = append(out, &domain.WalletLaunchHistory{Wallet: w, Launches: launches})
	}
	return out
}

// SortLaunches orders launches by launch time ASC, signature ASC.
func SortLaunches(launches []*domain.LaunchEvent) {
	sort.SliceStable(launches, func(i, j int) bool {
		if launches[i].LaunchTime != launches[j].LaunchTime {
			return launches[i].LaunchTime < launches[j].LaunchTime
		}
		return launches[i].Signature < launches[j].Signature
	})
}
