package scoring

import "github.com/TraderofBozz/Anubis-Bot/internal/domain"

// Earnings multiples applied to the seed amount by market cap tier.
const (
	HighTierMarketCap = 1_000_000.0
	MidTierMarketCap  = 100_000.0

	HighTierMultiple = 50.0
	MidTierMultiple  = 10.0
)

// EarningsMultiple returns the multiple of its seed a launch is assumed to
// have returned, given its market cap.
func EarningsMultiple(marketCap float64) float64 {
	switch {
	case marketCap > HighTierMarketCap:
		return HighTierMultiple
	case marketCap > MidTierMarketCap:
		return MidTierMultiple
	default:
		return 0
	}
}

// EstimateEarnings is the heuristic SOL return of one launch.
func EstimateEarnings(seed, marketCap float64) float64 {
	return seed * EarningsMultiple(marketCap)
}

// ApplyEarnings fills the earnings fields of m from the wallet's launches.
func ApplyEarnings(m *domain.WalletMetrics, launches []*domain.LaunchEvent) {
	var invested, earnings float64
	for _, l := range launches {
		invested += l.SeedAmount
		earnings += EstimateEarnings(l.SeedAmount, l.MarketCapOrZero())
	}

	m.TotalInvested = invested
	m.EstimatedEarnings = earnings
	m.EstimatedProfit = earnings - invested
	m.ROIPercentage = 0
	if invested > 0 {
		m.ROIPercentage = m.EstimatedProfit / invested * 100
	}
}
