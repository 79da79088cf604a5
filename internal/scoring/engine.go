// Package scoring turns wallet metrics into an Anubis score, risk rating
// and developer tier.
package scoring

import (
	"math"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// Scam score penalties.
const (
	SerialSpammerPenalty = 40.0
	LowSuccessPenalty    = 30.0
	RapidLaunchPenalty   = 30.0

	LowSuccessRate        = 5.0  // percent
	LowSuccessMinLaunches = 10   // launches
	RapidIntervalMinutes  = 60.0 // minutes
)

// DefaultHourVariance is used for time consistency when a wallet has a single launch.
const DefaultHourVariance = 12.0

// Engine scores wallets with a fixed set of weights.
type Engine struct {
	weights Weights
}

// NewEngine creates a scoring engine.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Weights returns the engine's weights.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score computes the Anubis score for one wallet.
// Metrics must already carry earnings (see ApplyEarnings).
func (e *Engine) Score(m *domain.WalletMetrics) domain.AnubisScore {
	s := domain.AnubisScore{
		SuccessScore:         math.Min(m.SuccessRate*2, 100),
		EarningsScore:        math.Max(0, math.Min(m.ROIPercentage/10, 100)),
		ScamScore:            ScamScore(m),
		TimeConsistencyScore: TimeConsistencyScore(m.HourVariance),
	}

	w := e.weights
	s.Score = (s.SuccessScore*w.Historical.SuccessRate +
		s.EarningsScore*w.Historical.TotalEarnings +
		(100-s.ScamScore)*w.Historical.RugRate +
		s.TimeConsistencyScore*w.LaunchPatterns.TimeConsistency) / w.compositeSum()

	s.RiskRating = ClassifyRisk(s.ScamScore)
	s.DeveloperTier = ClassifyTier(s.Score, m.SuccessfulLaunches)
	s.AlertPriority = AlertPriority(s.DeveloperTier, s.RiskRating)
	s.AutoAlert = s.DeveloperTier == domain.TierElite ||
		s.DeveloperTier == domain.TierPro ||
		s.RiskRating == domain.RiskExtreme

	return s
}

// ScamScore adds the scam penalties a wallet earns, clamped to [0,100].
func ScamScore(m *domain.WalletMetrics) float64 {
	score := 0.0
	if m.Velocity == domain.VelocitySerialSpammer {
		score += SerialSpammerPenalty
	}
	if m.SuccessRate < LowSuccessRate && m.TotalLaunches > LowSuccessMinLaunches {
		score += LowSuccessPenalty
	}
	if m.MinIntervalMinutes != nil && *m.MinIntervalMinutes < RapidIntervalMinutes {
		score += RapidLaunchPenalty
	}
	return math.Max(0, math.Min(score, 100))
}

// TimeConsistencyScore rewards launching at the same hour of day.
// A nil variance (single launch) uses DefaultHourVariance.
func TimeConsistencyScore(hourVariance *float64) float64 {
	v := DefaultHourVariance
	if hourVariance != nil {
		v = *hourVariance
	}
	return math.Max(0, 100-v*4)
}

// ClassifyRisk maps a scam score to a risk rating.
func ClassifyRisk(scam float64) domain.RiskRating {
	switch {
	case scam > 80:
		return domain.RiskExtreme
	case scam > 60:
		return domain.RiskHigh
	case scam > 40:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// ClassifyTier maps a composite score and success count to a developer tier.
func ClassifyTier(score float64, successful int) domain.DeveloperTier {
	switch {
	case score > 80 && successful > 5:
		return domain.TierElite
	case score > 60 && successful > 2:
		return domain.TierPro
	case score > 40:
		return domain.TierAmateur
	default:
		return domain.TierScammer
	}
}

// AlertPriority returns 1 (most urgent) to 5.
func AlertPriority(tier domain.DeveloperTier, risk domain.RiskRating) int {
	switch {
	case tier == domain.TierElite:
		return 1
	case tier == domain.TierPro:
		return 3
	case risk == domain.RiskExtreme:
		return 2
	default:
		return 5
	}
}
