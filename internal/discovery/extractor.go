// Package discovery recognises token-creation transactions and turns them
// into launch events.
package discovery

import (
	"strings"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
)

// LaunchMarkers are log substrings that identify a token-creation instruction.
var LaunchMarkers = []string{
	"Program log: Instruction: Create",
	"Program log: Instruction: InitializeMint",
	"Program log: Instruction: InitializeMint2",
	"Program log: Instruction: CreatePool",
	"Program log: Instruction: Initialize2",
	"Program log: Instruction: CreateToken",
	"create_pump",
	"init_pump_token",
	"Program log: initialize2: InitializeInstruction2",
}

// ignoredMintPrefixes are prefixes of system, sysvar and burn accounts that
// can sit in the mint window without being a mint.
var ignoredMintPrefixes = []string{
	"11111111",
	"So1111111",
	"Sysvar",
	"ComputeBudget",
	"Token",
	"1nc1nerator",
}

const (
	mintWindowStart = 1
	mintWindowEnd   = 5 // inclusive
	mintAddressLen  = 44
)

// Extractor turns raw transactions into launch events.
type Extractor struct {
	markers []string
}

// NewExtractor creates an Extractor using LaunchMarkers.
func NewExtractor() *Extractor {
	return &Extractor{markers: LaunchMarkers}
}

// IsLaunch reports whether the transaction's log contains a launch marker.
// Failed transactions are never launches.
func (e *Extractor) IsLaunch(tx *solana.Transaction) bool {
	if tx == nil || tx.Failed() {
		return false
	}
	for _, line := range tx.LogMessages() {
		for _, m := range e.markers {
			if strings.Contains(line, m) {
				return true
			}
		}
	}
	return false
}

// Extract returns the launch event for tx, or false if tx is not a launch.
// Mint or Creator may be empty when the account heuristics find nothing;
// callers drop such events before aggregation.
func (e *Extractor) Extract(tx *solana.Transaction, platform Platform) (*domain.LaunchEvent, bool) {
	if !e.IsLaunch(tx) {
		return nil, false
	}

	timing := TimingFromBlockTime(tx.BlockTime)
	event := &domain.LaunchEvent{
		Signature:  tx.Signature,
		Slot:       tx.Slot,
		Platform:   platform.Name,
		LaunchHour: timing.Hour,
		LaunchDay:  timing.Day,
		IsWeekend:  timing.IsWeekend,
		TimeSlot:   timing.Slot,
	}
	if tx.BlockTime != nil {
		event.LaunchTime = *tx.BlockTime
	}

	if tx.Message != nil && len(tx.Message.AccountKeys) > 0 {
		event.Creator = tx.Message.AccountKeys[0].Pubkey
		event.Mint = findMint(tx.Message.AccountKeys, platform.ProgramID)
	}
	event.SeedAmount = creatorSpend(tx.Meta)

	return event, true
}

// findMint returns the first account in the mint window that is writable,
// has the length of a base58 mint, and is neither the program nor a system account.
func findMint(keys []solana.AccountKey, programID string) string {
	for i := mintWindowStart; i <= mintWindowEnd && i < len(keys); i++ {
		k := keys[i]
		if !k.Writable || len(k.Pubkey) != mintAddressLen || k.Pubkey == programID {
			continue
		}
		if hasIgnoredPrefix(k.Pubkey) {
			continue
		}
		return k.Pubkey
	}
	return ""
}

func hasIgnoredPrefix(addr string) bool {
	for _, p := range ignoredMintPrefixes {
		if strings.HasPrefix(addr, p) {
			return true
		}
	}
	return false
}

// creatorSpend is the SOL the fee payer lost in the transaction, floored at 0.
func creatorSpend(meta *solana.TransactionMeta) float64 {
	if meta == nil || len(meta.PreBalances) == 0 || len(meta.PostBalances) == 0 {
		return 0
	}
	pre, post := meta.PreBalances[0], meta.PostBalances[0]
	if post >= pre {
		return 0
	}
	return solana.LamportsToSOL(pre - post)
}
