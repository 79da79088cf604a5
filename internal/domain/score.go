package domain

// RiskRating classifies scam likelihood.
type RiskRating string

const (
	RiskLow     RiskRating = "LOW"
	RiskMedium  RiskRating = "MEDIUM"
	RiskHigh    RiskRating = "HIGH"
	RiskExtreme RiskRating = "EXTREME"
)

// String returns the string representation of RiskRating.
func (r RiskRating) String() string {
	return string(r)
}

// IsValid checks if the risk rating is a valid value.
func (r RiskRating) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskExtreme:
		return true
	}
	return false
}

// DeveloperTier classifies developer quality.
type DeveloperTier string

const (
	TierElite   DeveloperTier = "ELITE"
	TierPro     DeveloperTier = "PRO"
	TierAmateur DeveloperTier = "AMATEUR"
	TierScammer DeveloperTier = "SCAMMER"
)

// String returns the string representation of DeveloperTier.
func (t DeveloperTier) String() string {
	return string(t)
}

// IsValid checks if the tier is a valid value.
func (t DeveloperTier) IsValid() bool {
	switch t {
	case TierElite, TierPro, TierAmateur, TierScammer:
		return true
	}
	return false
}

// AnubisScore is the scoring engine output for one wallet.
type AnubisScore struct {
	SuccessScore         float64 // [0,100]
	EarningsScore        float64 // [0,100]
	ScamScore            float64 // [0,100]
	TimeConsistencyScore float64 // [0,100]
	Score                float64 // weighted composite

	RiskRating    RiskRating
	DeveloperTier DeveloperTier
	AlertPriority int // 1-5, lower is more urgent
	AutoAlert     bool
}

// WalletProfile is a scored wallet as persisted.
// Corresponds to wallet_profiles table in PostgreSQL.
type WalletProfile struct {
	Wallet       string
	Metrics      WalletMetrics
	Score        AnubisScore
	AlertReasons []string
	ScoredAt     int64 // unix seconds
}
