// Package publish emits scored wallets to downstream consumers.
package publish

import (
	"encoding/json"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// EventWalletScored is the envelope type for an auto-alert profile.
const EventWalletScored = "wallet_scored"

// Envelope wraps every published payload.
type Envelope struct {
	Type string          `json:"type"`
	TS   int64           `json:"ts"` // unix millis
	Data json.RawMessage `json:"data"`
}

// WalletScored is the payload of a wallet_scored event.
type WalletScored struct {
	ScanID             string   `json:"scan_id"`
	Wallet             string   `json:"wallet"`
	Score              float64  `json:"anubis_score"`
	DeveloperTier      string   `json:"developer_tier"`
	RiskRating         string   `json:"risk_rating"`
	AlertPriority      int      `json:"alert_priority"`
	TotalLaunches      int      `json:"total_launches"`
	SuccessfulLaunches int      `json:"successful_launches"`
	SuccessRate        float64  `json:"success_rate"`
	BestMarketCap      float64  `json:"best_market_cap"`
	Velocity           string   `json:"velocity"`
	Reasons            []string `json:"reasons"`
	ScoredAt           int64    `json:"scored_at"`
}

// NewWalletScored builds the event payload for a profile.
func NewWalletScored(scanID string, p *domain.WalletProfile) WalletScored {
	reasons := p.AlertReasons
	if reasons == nil {
		reasons = []string{}
	}
	return WalletScored{
		ScanID:             scanID,
		Wallet:             p.Wallet,
		Score:              p.Score.Score,
		DeveloperTier:      string(p.Score.DeveloperTier),
		RiskRating:         string(p.Score.RiskRating),
		AlertPriority:      p.Score.AlertPriority,
		TotalLaunches:      p.Metrics.TotalLaunches,
		SuccessfulLaunches: p.Metrics.SuccessfulLaunches,
		SuccessRate:        p.Metrics.SuccessRate,
		BestMarketCap:      p.Metrics.BestMarketCap,
		Velocity:           string(p.Metrics.Velocity),
		Reasons:            reasons,
		ScoredAt:           p.ScoredAt,
	}
}
