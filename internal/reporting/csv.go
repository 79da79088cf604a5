package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TraderofBozz/Anubis-Bot/internal/domain"
)

var profileHeader = []string{
	"wallet_address", "anubis_score", "developer_tier", "risk_rating", "alert_priority", "auto_alert",
	"total_launches", "successful_launches", "success_rate",
	"success_score", "earnings_score", "scam_score", "time_consistency_score",
	"launch_velocity_type", "avg_daily_launches", "avg_interval_minutes", "min_interval_minutes",
	"weekend_ratio", "asia_session_ratio", "eu_session_ratio", "us_session_ratio", "peak_degen_ratio",
	"peak_launch_hour", "avg_seed_amount", "best_market_cap", "avg_market_cap",
	"total_invested", "estimated_earnings", "estimated_profit", "roi_percentage",
	"primary_platform", "first_seen", "last_active", "alert_reasons",
}

// WriteProfilesCSV writes one row per profile in the given order.
// Missing interval values are written as empty cells.
func WriteProfilesCSV(w io.Writer, profiles []*domain.WalletProfile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(profileHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, p := range profiles {
		m, s := p.Metrics, p.Score
		row := []string{
			p.Wallet, ff(s.Score), string(s.DeveloperTier), string(s.RiskRating),
			strconv.Itoa(s.AlertPriority), strconv.FormatBool(s.AutoAlert),
			strconv.Itoa(m.TotalLaunches), strconv.Itoa(m.SuccessfulLaunches), ff(m.SuccessRate),
			ff(s.SuccessScore), ff(s.EarningsScore), ff(s.ScamScore), ff(s.TimeConsistencyScore),
			string(m.Velocity), ff(m.AvgDailyLaunches), fp(m.AvgIntervalMinutes), fp(m.MinIntervalMinutes),
			ff(m.WeekendRatio), ff(m.AsiaRatio), ff(m.EURatio), ff(m.USRatio), ff(m.PeakDegenRatio),
			strconv.Itoa(m.PeakLaunchHour), ff(m.AvgSeed), ff(m.BestMarketCap), ff(m.AvgMarketCap),
			ff(m.TotalInvested), ff(m.EstimatedEarnings), ff(m.EstimatedProfit), ff(m.ROIPercentage),
			m.PrimaryPlatform, strconv.FormatInt(m.FirstSeen, 10), strconv.FormatInt(m.LastActive, 10),
			strings.Join(p.AlertReasons, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", p.Wallet, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func fp(v *float64) string {
	if v == nil {
		return ""
	}
	return ff(*v)
}
