package scoring

import (
	"fmt"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

// AlertReasons lists why a profile triggers an auto-alert.
// Returns nil when the profile does not alert.
func AlertReasons(p *domain.WalletProfile) []string {
	if !p.Score.AutoAlert {
		return nil
	}

	var reasons []string
	switch p.Score.DeveloperTier {
	case domain.TierElite:
		reasons = append(reasons, fmt.Sprintf("elite developer: score %.1f with %d successful launches",
			p.Score.Score, p.Metrics.SuccessfulLaunches))
	case domain.TierPro:
		reasons = append(reasons, fmt.Sprintf("pro developer: score %.1f with %d successful launches",
			p.Score.Score, p.Metrics.SuccessfulLaunches))
	}
	if p.Score.RiskRating == domain.RiskExtreme {
		reasons = append(reasons, fmt.Sprintf("extreme scam risk: scam score %.0f", p.Score.ScamScore))
	}
	if p.Metrics.Velocity == domain.VelocitySerialSpammer {
		reasons = append(reasons, fmt.Sprintf("serial spammer: %.1f launches per day", p.Metrics.AvgDailyLaunches))
	}
	if p.Metrics.BestMarketCap > HighTierMarketCap {
		reasons = append(reasons, fmt.Sprintf("best launch reached $%.0f market cap", p.Metrics.BestMarketCap))
	}
	return reasons
}
